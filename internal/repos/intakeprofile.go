package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/types"
)

type IntakeProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.IntakeProfile) (*types.IntakeProfile, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.IntakeProfile, error)
	ExistsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, profile *types.IntakeProfile) (*types.IntakeProfile, error)
}

type intakeProfileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIntakeProfileRepo(db *gorm.DB, baseLog *logger.Logger) IntakeProfileRepo {
	return &intakeProfileRepo{db: db, log: baseLog.With("repo", "IntakeProfileRepo")}
}

func (pr *intakeProfileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.IntakeProfile) (*types.IntakeProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// GetByUserID returns (nil, nil) when the user has no profile yet.
func (pr *intakeProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.IntakeProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.IntakeProfile
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *intakeProfileRepo) ExistsByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.IntakeProfile{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (pr *intakeProfileRepo) Update(ctx context.Context, tx *gorm.DB, profile *types.IntakeProfile) (*types.IntakeProfile, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	if err := transaction.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}
