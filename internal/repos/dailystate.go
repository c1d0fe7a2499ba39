package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/types"
)

type DailyStateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, state *types.DailyState) (*types.DailyState, error)
	// LatestInWindow returns the newest submission whose filled_at falls in
	// [start, end), ties broken by id ascending, or (nil, nil) when none exists.
	LatestInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) (*types.DailyState, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyState, error)
}

type dailyStateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyStateRepo(db *gorm.DB, baseLog *logger.Logger) DailyStateRepo {
	return &dailyStateRepo{db: db, log: baseLog.With("repo", "DailyStateRepo")}
}

func (dr *dailyStateRepo) Create(ctx context.Context, tx *gorm.DB, state *types.DailyState) (*types.DailyState, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	if err := transaction.WithContext(ctx).Create(state).Error; err != nil {
		return nil, err
	}
	return state, nil
}

func (dr *dailyStateRepo) LatestInWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, start, end time.Time) (*types.DailyState, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var result types.DailyState
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND filled_at >= ? AND filled_at < ?", userID, start, end).
		Order("filled_at DESC").
		Order("id ASC").
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (dr *dailyStateRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.DailyState, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}
	var results []*types.DailyState
	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("filled_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
