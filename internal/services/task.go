package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/observability"
	"github.com/allinhq/allin-backend/internal/repos"
	"github.com/allinhq/allin-backend/internal/types"
)

// TaskService owns the daily task pipeline: cache-aside lookup per
// (user, date), and on a miss one aggregation -> prompt -> completion ->
// parse -> persist run. Concurrent requests for the same key are coalesced
// into a single in-flight generation; if another process still races past
// that, the unique index behind TaskRepo.SaveBatch picks one winner.
type TaskService interface {
	GetOrGenerate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*types.Task, error)
	SetCompleted(ctx context.Context, userID, taskID uuid.UUID, completed bool) (*types.Task, error)
}

type taskService struct {
	db           *gorm.DB
	log          *logger.Logger
	taskRepo     repos.TaskRepo
	userRepo     repos.UserRepo
	intake       IntakeService
	daily        DailyStateService
	completion   CompletionClient
	cache        TaskCache
	promptOpts   PromptOptions
	defaultMins  int
	flight       singleflight.Group
	now          func() time.Time
}

func NewTaskService(
	db *gorm.DB,
	log *logger.Logger,
	taskRepo repos.TaskRepo,
	userRepo repos.UserRepo,
	intake IntakeService,
	daily DailyStateService,
	completion CompletionClient,
	cache TaskCache,
	promptOpts PromptOptions,
) TaskService {
	return &taskService{
		db:          db,
		log:         log.With("service", "TaskService"),
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		intake:      intake,
		daily:       daily,
		completion:  completion,
		cache:       cache,
		promptOpts:  promptOpts,
		defaultMins: DefaultEstimatedMinutes,
		now:         time.Now,
	}
}

func (ts *taskService) GetOrGenerate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*types.Task, error) {
	day := types.DateOnly(date)

	users, err := ts.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}

	if tasks, ok := ts.cache.GetBatch(ctx, userID, day); ok && len(tasks) > 0 {
		observability.TaskRequestsTotal.WithLabelValues("hit").Inc()
		return tasks, nil
	}

	exists, err := ts.taskRepo.ExistsByUserAndDate(ctx, nil, userID, day)
	if err != nil {
		return nil, fmt.Errorf("check task batch: %w", err)
	}
	if exists {
		tasks, err := ts.taskRepo.GetByUserAndDate(ctx, nil, userID, day)
		if err != nil {
			return nil, fmt.Errorf("load task batch: %w", err)
		}
		ts.cache.SetBatch(ctx, userID, day, tasks)
		observability.TaskRequestsTotal.WithLabelValues("hit").Inc()
		return tasks, nil
	}

	key := userID.String() + "|" + day.Format("2006-01-02")
	v, err, shared := ts.flight.Do(key, func() (any, error) {
		return ts.generate(ctx, userID, day)
	})
	if err != nil {
		observability.TaskRequestsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	if shared {
		ts.log.Debug("Joined in-flight generation", "user_id", userID, "date", day)
	}
	observability.TaskRequestsTotal.WithLabelValues("generated").Inc()
	return v.([]*types.Task), nil
}

// generate runs the pipeline once for a key that looked missing. It re-checks
// existence first because several callers can queue on the singleflight key
// after the winner already persisted.
func (ts *taskService) generate(ctx context.Context, userID uuid.UUID, day time.Time) ([]*types.Task, error) {
	exists, err := ts.taskRepo.ExistsByUserAndDate(ctx, nil, userID, day)
	if err != nil {
		return nil, fmt.Errorf("recheck task batch: %w", err)
	}
	if exists {
		return ts.taskRepo.GetByUserAndDate(ctx, nil, userID, day)
	}

	now := ts.now()
	profile, state, err := ts.aggregate(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	prompt := BuildTaskPrompt(profile, state, now, ts.promptOpts)
	raw, err := ts.completion.Complete(ctx, prompt, "")
	if err != nil {
		return nil, err
	}

	result := ParseTaskResponse(raw, ParseDefaults{EstimatedMinutes: ts.defaultMins})
	observability.TaskParseTotal.WithLabelValues(string(result.Mode)).Inc()
	if result.Mode != ParseStrict {
		ts.log.Warn("Completion response did not parse strictly",
			"mode", result.Mode,
			"tasks", len(result.Tasks),
			"user_id", userID,
		)
	}
	if result.Dropped > 0 {
		ts.log.Warn("Dropped parsed tasks without usable titles", "dropped", result.Dropped, "user_id", userID)
	}

	tasks := make([]*types.Task, 0, len(result.Tasks))
	for _, pt := range result.Tasks {
		tasks = append(tasks, &types.Task{
			Slug:             pt.Slug,
			Title:            pt.Title,
			Description:      pt.Description,
			Tags:             pt.Tags,
			EstimatedMinutes: pt.EstimatedMinutes,
		})
	}

	saved, err := ts.taskRepo.SaveBatch(ctx, nil, userID, day, tasks)
	if errors.Is(err, repos.ErrBatchExists) {
		// A concurrent generation won the key. Discard ours, return theirs.
		observability.TaskBatchConflictsTotal.Inc()
		ts.log.Warn("Concurrent generation raced, returning stored batch", "user_id", userID, "date", day)
		return ts.taskRepo.GetByUserAndDate(ctx, nil, userID, day)
	}
	if err != nil {
		return nil, fmt.Errorf("save task batch: %w", err)
	}

	ts.cache.SetBatch(ctx, userID, day, saved)
	ts.log.Info("Generated task batch", "user_id", userID, "date", day, "tasks", len(saved), "parse_mode", result.Mode)
	return saved, nil
}

// aggregate is the pure read that feeds the prompt builder: the intake
// profile plus today's state, each with its own missing-precondition error.
func (ts *taskService) aggregate(ctx context.Context, userID uuid.UUID, now time.Time) (*types.IntakeProfile, *types.DailyState, error) {
	profile, err := ts.intake.ByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	state, err := ts.daily.TodaysState(ctx, userID, now)
	if err != nil {
		return nil, nil, err
	}
	return profile, state, nil
}

func (ts *taskService) SetCompleted(ctx context.Context, userID, taskID uuid.UUID, completed bool) (*types.Task, error) {
	task, err := ts.taskRepo.GetByID(ctx, nil, taskID)
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	if task == nil || task.UserID != userID {
		return nil, ErrTaskNotFound
	}
	if err := ts.taskRepo.SetCompleted(ctx, nil, taskID, completed); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	task.Completed = completed
	return task, nil
}
