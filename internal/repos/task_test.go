package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&types.User{}, &types.Task{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB) *types.User {
	t.Helper()
	user := &types.User{ID: uuid.New(), Username: "repouser", Email: "repo@example.com", Password: "hashed"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func batchOf(titles ...string) []*types.Task {
	tasks := make([]*types.Task, 0, len(titles))
	for _, title := range titles {
		tasks = append(tasks, &types.Task{Title: title, EstimatedMinutes: 10})
	}
	return tasks
}

func TestSaveBatchAssignsPositionsAndDate(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db, logger.NewNop())
	user := seedUser(t, db)
	at := time.Date(2025, 6, 1, 15, 45, 0, 0, time.UTC)

	saved, err := repo.SaveBatch(context.Background(), nil, user.ID, at, batchOf("First", "Second", "Third"))
	if err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}
	if len(saved) != 3 {
		t.Fatalf("saved: want=3 got=%d", len(saved))
	}
	for i, task := range saved {
		if task.Position != i {
			t.Fatalf("position of %q: want=%d got=%d", task.Title, i, task.Position)
		}
		if !task.Date.Equal(types.DateOnly(at)) {
			t.Fatalf("date of %q: want=%v got=%v", task.Title, types.DateOnly(at), task.Date)
		}
		if task.ID == uuid.Nil {
			t.Fatalf("task %q has no id", task.Title)
		}
	}
}

func TestSaveBatchRejectsSecondBatch(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db, logger.NewNop())
	user := seedUser(t, db)
	at := time.Date(2025, 6, 1, 15, 45, 0, 0, time.UTC)

	if _, err := repo.SaveBatch(context.Background(), nil, user.ID, at, batchOf("Winner")); err != nil {
		t.Fatalf("first SaveBatch: %v", err)
	}
	_, err := repo.SaveBatch(context.Background(), nil, user.ID, at.Add(3*time.Hour), batchOf("Loser"))
	if !errors.Is(err, ErrBatchExists) {
		t.Fatalf("want ErrBatchExists, got %v", err)
	}

	stored, err := repo.GetByUserAndDate(context.Background(), nil, user.ID, at)
	if err != nil {
		t.Fatalf("GetByUserAndDate: %v", err)
	}
	if len(stored) != 1 || stored[0].Title != "Winner" {
		t.Fatalf("stored batch: want the winner only, got %+v", stored)
	}
}

func TestSaveBatchRejectionWritesNothing(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db, logger.NewNop())
	user := seedUser(t, db)
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	if _, err := repo.SaveBatch(context.Background(), nil, user.ID, at, batchOf("A", "B")); err != nil {
		t.Fatalf("first SaveBatch: %v", err)
	}
	// five rows would collide on positions 0-1 but extend past them; the
	// transaction must leave no partial rows behind
	if _, err := repo.SaveBatch(context.Background(), nil, user.ID, at, batchOf("C", "D", "E", "F", "G")); !errors.Is(err, ErrBatchExists) {
		t.Fatalf("want ErrBatchExists, got %v", err)
	}

	var count int64
	if err := db.Model(&types.Task{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("rows after rejected batch: want=2 got=%d", count)
	}
}

func TestSaveBatchEmptyIsNoop(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db, logger.NewNop())
	user := seedUser(t, db)
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	saved, err := repo.SaveBatch(context.Background(), nil, user.ID, at, nil)
	if err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}
	if len(saved) != 0 {
		t.Fatalf("saved: want=0 got=%d", len(saved))
	}

	// an empty batch does not occupy the key
	exists, err := repo.ExistsByUserAndDate(context.Background(), nil, user.ID, at)
	if err != nil {
		t.Fatalf("ExistsByUserAndDate: %v", err)
	}
	if exists {
		t.Fatalf("empty batch should not mark the day as generated")
	}
}

func TestGetByUserAndDateOrdersByPosition(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db, logger.NewNop())
	user := seedUser(t, db)
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	if _, err := repo.SaveBatch(context.Background(), nil, user.ID, at, batchOf("First", "Second", "Third")); err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}
	stored, err := repo.GetByUserAndDate(context.Background(), nil, user.ID, at.Add(5*time.Hour))
	if err != nil {
		t.Fatalf("GetByUserAndDate: %v", err)
	}
	if len(stored) != 3 {
		t.Fatalf("stored: want=3 got=%d", len(stored))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if stored[i].Title != want {
			t.Fatalf("position %d: want=%q got=%q", i, want, stored[i].Title)
		}
	}
}

func TestSetCompleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewTaskRepo(db, logger.NewNop())
	user := seedUser(t, db)
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	saved, err := repo.SaveBatch(context.Background(), nil, user.ID, at, batchOf("Only"))
	if err != nil {
		t.Fatalf("SaveBatch: %v", err)
	}
	if err := repo.SetCompleted(context.Background(), nil, saved[0].ID, true); err != nil {
		t.Fatalf("SetCompleted: %v", err)
	}
	got, err := repo.GetByID(context.Background(), nil, saved[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || !got.Completed {
		t.Fatalf("task not completed: %+v", got)
	}

	missing, err := repo.GetByID(context.Background(), nil, uuid.New())
	if err != nil {
		t.Fatalf("GetByID for unknown id: %v", err)
	}
	if missing != nil {
		t.Fatalf("want nil for unknown id, got %+v", missing)
	}
}
