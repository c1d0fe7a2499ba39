package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/repos"
	"github.com/allinhq/allin-backend/internal/types"
)

type DailyStateService interface {
	Submit(ctx context.Context, state *types.DailyState) (*types.DailyState, error)
	// TodaysState resolves the authoritative state for the calendar day of
	// now: the most recent submission of that local day, ties broken by id.
	TodaysState(ctx context.Context, userID uuid.UUID, now time.Time) (*types.DailyState, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.DailyState, error)
}

type dailyStateService struct {
	db        *gorm.DB
	log       *logger.Logger
	stateRepo repos.DailyStateRepo
	userRepo  repos.UserRepo
}

func NewDailyStateService(db *gorm.DB, log *logger.Logger, stateRepo repos.DailyStateRepo, userRepo repos.UserRepo) DailyStateService {
	return &dailyStateService{
		db:        db,
		log:       log.With("service", "DailyStateService"),
		stateRepo: stateRepo,
		userRepo:  userRepo,
	}
}

func (ds *dailyStateService) Submit(ctx context.Context, state *types.DailyState) (*types.DailyState, error) {
	// Out-of-range ratings are rejected here, at the entry boundary. Stored
	// rows are therefore always in range and the prompt builder never clamps.
	if err := state.Validate(); err != nil {
		return nil, err
	}
	users, err := ds.userRepo.GetByIDs(ctx, nil, []uuid.UUID{state.UserID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	state.ID = uuid.New()
	if state.FilledAt.IsZero() {
		state.FilledAt = time.Now()
	}
	created, err := ds.stateRepo.Create(ctx, nil, state)
	if err != nil {
		return nil, fmt.Errorf("create daily state: %w", err)
	}
	ds.log.Info("Daily state submitted", "user_id", state.UserID, "filled_at", state.FilledAt)
	return created, nil
}

func (ds *dailyStateService) TodaysState(ctx context.Context, userID uuid.UUID, now time.Time) (*types.DailyState, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)
	state, err := ds.stateRepo.LatestInWindow(ctx, nil, userID, startOfDay, endOfDay)
	if err != nil {
		return nil, fmt.Errorf("load todays state: %w", err)
	}
	if state == nil {
		return nil, ErrDailyStateMissing
	}
	return state, nil
}

func (ds *dailyStateService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.DailyState, error) {
	return ds.stateRepo.ListByUser(ctx, nil, userID, limit)
}
