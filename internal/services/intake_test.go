package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/repos"
	"github.com/allinhq/allin-backend/internal/types"
)

func newIntakeService(t *testing.T) (IntakeService, *types.User) {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()
	svc := NewIntakeService(db, log, repos.NewIntakeProfileRepo(db, log), repos.NewUserRepo(db, log))
	return svc, seedUser(t, db, "intakeuser")
}

func TestIntakeCreateAndFetch(t *testing.T) {
	svc, user := newIntakeService(t)

	profile := testProfile()
	profile.UserID = user.ID
	created, err := svc.Create(context.Background(), profile)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("created profile has no id")
	}

	got, err := svc.ByUserID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ByUserID: %v", err)
	}
	if got.Hobby != profile.Hobby || got.Pronouns != profile.Pronouns {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestIntakeCreateRejectsSecondProfile(t *testing.T) {
	svc, user := newIntakeService(t)

	profile := testProfile()
	profile.UserID = user.ID
	if _, err := svc.Create(context.Background(), profile); err != nil {
		t.Fatalf("Create: %v", err)
	}

	again := testProfile()
	again.UserID = user.ID
	if _, err := svc.Create(context.Background(), again); !errors.Is(err, ErrIntakeProfileExists) {
		t.Fatalf("want ErrIntakeProfileExists, got %v", err)
	}
}

func TestIntakeCreateRejectsInvalidCategory(t *testing.T) {
	svc, user := newIntakeService(t)

	profile := testProfile()
	profile.UserID = user.ID
	profile.Hobby = types.Hobby("SKYDIVING")
	_, err := svc.Create(context.Background(), profile)
	var catErr *types.InvalidCategoryError
	if !errors.As(err, &catErr) {
		t.Fatalf("want InvalidCategoryError, got %v", err)
	}
	if catErr.Field != "hobby" {
		t.Fatalf("field: want=%q got=%q", "hobby", catErr.Field)
	}
}

func TestIntakeByUserIDMissing(t *testing.T) {
	svc, user := newIntakeService(t)

	if _, err := svc.ByUserID(context.Background(), user.ID); !errors.Is(err, ErrIntakeProfileMissing) {
		t.Fatalf("want ErrIntakeProfileMissing, got %v", err)
	}
}

func TestIntakeUpdate(t *testing.T) {
	svc, user := newIntakeService(t)

	profile := testProfile()
	profile.UserID = user.ID
	if _, err := svc.Create(context.Background(), profile); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated := testProfile()
	updated.Hobby = types.HobbyGardening
	got, err := svc.Update(context.Background(), user.ID, updated)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Hobby != types.HobbyGardening {
		t.Fatalf("hobby: want=%q got=%q", types.HobbyGardening, got.Hobby)
	}

	if _, err := svc.Update(context.Background(), uuid.New(), testProfile()); !errors.Is(err, ErrIntakeProfileMissing) {
		t.Fatalf("want ErrIntakeProfileMissing for unknown user, got %v", err)
	}
}
