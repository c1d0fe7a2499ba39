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

// ErrBatchExists is returned by SaveBatch when another batch already occupies
// the (user, date) key. The caller is expected to load and return the stored
// batch instead of surfacing this.
var ErrBatchExists = errors.New("task batch already exists for user and date")

type TaskRepo interface {
	ExistsByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (bool, error)
	GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) ([]*types.Task, error)
	// SaveBatch persists all tasks in one transaction. Position and Date are
	// assigned here; a duplicate-key violation on the (user, date, position)
	// index is reported as ErrBatchExists and nothing is written.
	SaveBatch(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, tasks []*types.Task) ([]*types.Task, error)
	GetByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.Task, error)
	SetCompleted(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, completed bool) error
}

type taskRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
	return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (tr *taskRepo) ExistsByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("user_id = ? AND date = ?", userID, types.DateOnly(date)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (tr *taskRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var results []*types.Task
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, types.DateOnly(date)).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (tr *taskRepo) SaveBatch(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time, tasks []*types.Task) ([]*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	if len(tasks) == 0 {
		return []*types.Task{}, nil
	}
	day := types.DateOnly(date)
	for i, task := range tasks {
		if task.ID == uuid.Nil {
			task.ID = uuid.New()
		}
		task.UserID = userID
		task.Date = day
		task.Position = i
	}
	err := transaction.WithContext(ctx).Transaction(func(innerTx *gorm.DB) error {
		return innerTx.Create(&tasks).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBatchExists
		}
		return nil, err
	}
	return tasks, nil
}

func (tr *taskRepo) GetByID(ctx context.Context, tx *gorm.DB, taskID uuid.UUID) (*types.Task, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	var result types.Task
	err := transaction.WithContext(ctx).
		Where("id = ?", taskID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *taskRepo) SetCompleted(ctx context.Context, tx *gorm.DB, taskID uuid.UUID, completed bool) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Task{}).
		Where("id = ?", taskID).
		Update("completed", completed).Error
}
