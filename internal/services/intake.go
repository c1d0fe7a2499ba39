package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/repos"
	"github.com/allinhq/allin-backend/internal/types"
)

type IntakeService interface {
	Create(ctx context.Context, profile *types.IntakeProfile) (*types.IntakeProfile, error)
	ByUserID(ctx context.Context, userID uuid.UUID) (*types.IntakeProfile, error)
	Update(ctx context.Context, userID uuid.UUID, updated *types.IntakeProfile) (*types.IntakeProfile, error)
}

type intakeService struct {
	db         *gorm.DB
	log        *logger.Logger
	intakeRepo repos.IntakeProfileRepo
	userRepo   repos.UserRepo
}

func NewIntakeService(db *gorm.DB, log *logger.Logger, intakeRepo repos.IntakeProfileRepo, userRepo repos.UserRepo) IntakeService {
	return &intakeService{
		db:         db,
		log:        log.With("service", "IntakeService"),
		intakeRepo: intakeRepo,
		userRepo:   userRepo,
	}
}

func (is *intakeService) Create(ctx context.Context, profile *types.IntakeProfile) (*types.IntakeProfile, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	users, err := is.userRepo.GetByIDs(ctx, nil, []uuid.UUID{profile.UserID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}

	var created *types.IntakeProfile
	err = is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := is.intakeRepo.ExistsByUserID(ctx, tx, profile.UserID)
		if err != nil {
			return fmt.Errorf("check intake profile: %w", err)
		}
		if exists {
			return ErrIntakeProfileExists
		}
		profile.ID = uuid.New()
		created, err = is.intakeRepo.Create(ctx, tx, profile)
		return err
	})
	if err != nil {
		return nil, err
	}
	is.log.Info("Intake profile created", "user_id", profile.UserID)
	return created, nil
}

func (is *intakeService) ByUserID(ctx context.Context, userID uuid.UUID) (*types.IntakeProfile, error) {
	profile, err := is.intakeRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load intake profile: %w", err)
	}
	if profile == nil {
		return nil, ErrIntakeProfileMissing
	}
	return profile, nil
}

func (is *intakeService) Update(ctx context.Context, userID uuid.UUID, updated *types.IntakeProfile) (*types.IntakeProfile, error) {
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	existing, err := is.intakeRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load intake profile: %w", err)
	}
	if existing == nil {
		return nil, ErrIntakeProfileMissing
	}
	existing.Pronouns = updated.Pronouns
	existing.FavoriteColor = updated.FavoriteColor
	existing.Hobby = updated.Hobby
	existing.AgeRange = updated.AgeRange
	existing.ClosePersonPresence = updated.ClosePersonPresence
	existing.FamilyRelationshipQuality = updated.FamilyRelationshipQuality
	existing.CloseRelationshipsQuality = updated.CloseRelationshipsQuality
	return is.intakeRepo.Update(ctx, nil, existing)
}
