package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/repos"
	"github.com/allinhq/allin-backend/internal/types"
)

func newDailyService(t *testing.T) (DailyStateService, *types.User) {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()
	svc := NewDailyStateService(db, log, repos.NewDailyStateRepo(db, log), repos.NewUserRepo(db, log))
	return svc, seedUser(t, db, "dailyuser")
}

func TestSubmitRejectsOutOfRangeRatings(t *testing.T) {
	svc, user := newDailyService(t)

	tests := []struct {
		name  string
		state *types.DailyState
	}{
		{"zero satisfaction", &types.DailyState{UserID: user.ID, Satisfaction: 0, Physical: 3, Motivation: 3, Focus: 3, Openness: 3}},
		{"six focus", &types.DailyState{UserID: user.ID, Satisfaction: 3, Physical: 3, Motivation: 3, Focus: 6, Openness: 3}},
		{"negative openness", &types.DailyState{UserID: user.ID, Satisfaction: 3, Physical: 3, Motivation: 3, Focus: 3, Openness: -1}},
	}
	for _, tt := range tests {
		_, err := svc.Submit(context.Background(), tt.state)
		var rangeErr *types.RatingRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("%s: want RatingRangeError, got %v", tt.name, err)
		}
	}
}

func TestSubmitBoundaryRatingsAccepted(t *testing.T) {
	svc, user := newDailyService(t)

	for _, v := range []int{types.RatingMin, types.RatingMax} {
		state := &types.DailyState{UserID: user.ID, Satisfaction: v, Physical: v, Motivation: v, Focus: v, Openness: v}
		if _, err := svc.Submit(context.Background(), state); err != nil {
			t.Fatalf("rating %d: %v", v, err)
		}
	}
}

func TestSubmitUnknownUser(t *testing.T) {
	svc, _ := newDailyService(t)

	state := &types.DailyState{UserID: uuid.New(), Satisfaction: 3, Physical: 3, Motivation: 3, Focus: 3, Openness: 3}
	if _, err := svc.Submit(context.Background(), state); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}

func TestTodaysStateLatestSubmissionWins(t *testing.T) {
	svc, user := newDailyService(t)
	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	morning := &types.DailyState{UserID: user.ID, Satisfaction: 2, Physical: 2, Motivation: 2, Focus: 2, Openness: 2, FilledAt: now.Add(-10 * time.Hour)}
	evening := &types.DailyState{UserID: user.ID, Satisfaction: 5, Physical: 5, Motivation: 5, Focus: 5, Openness: 5, FilledAt: now.Add(-1 * time.Hour)}
	for _, s := range []*types.DailyState{morning, evening} {
		if _, err := svc.Submit(context.Background(), s); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	got, err := svc.TodaysState(context.Background(), user.ID, now)
	if err != nil {
		t.Fatalf("TodaysState: %v", err)
	}
	if got.ID != evening.ID {
		t.Fatalf("want the evening submission %s, got %s", evening.ID, got.ID)
	}
	if got.Satisfaction != 5 {
		t.Fatalf("satisfaction: want=5 got=%d", got.Satisfaction)
	}
}

func TestTodaysStateIgnoresOtherDays(t *testing.T) {
	svc, user := newDailyService(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	yesterday := &types.DailyState{UserID: user.ID, Satisfaction: 3, Physical: 3, Motivation: 3, Focus: 3, Openness: 3, FilledAt: now.Add(-24 * time.Hour)}
	if _, err := svc.Submit(context.Background(), yesterday); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := svc.TodaysState(context.Background(), user.ID, now); !errors.Is(err, ErrDailyStateMissing) {
		t.Fatalf("want ErrDailyStateMissing, got %v", err)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	svc, user := newDailyService(t)
	base := time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

	for d := 0; d < 3; d++ {
		state := &types.DailyState{UserID: user.ID, Satisfaction: 3, Physical: 3, Motivation: 3, Focus: 3, Openness: 3, FilledAt: base.AddDate(0, 0, -d)}
		if _, err := svc.Submit(context.Background(), state); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	history, err := svc.History(context.Background(), user.ID, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history: want=2 got=%d", len(history))
	}
	if !history[0].FilledAt.After(history[1].FilledAt) {
		t.Fatalf("history not newest first: %v then %v", history[0].FilledAt, history[1].FilledAt)
	}
}
