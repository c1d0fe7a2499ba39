package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/allinhq/allin-backend/internal/logger"
	"github.com/allinhq/allin-backend/internal/repos"
	"github.com/allinhq/allin-backend/internal/requestdata"
	"github.com/allinhq/allin-backend/internal/types"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()
	return NewAuthService(db, log, repos.NewUserRepo(db, log), repos.NewUserTokenRepo(db, log), "test-secret", time.Hour, 24*time.Hour)
}

func registeredUser(t *testing.T, svc AuthService) *types.User {
	t.Helper()
	user := &types.User{
		Username:  "authuser",
		Email:     "Auth@Example.com",
		Password:  "password123",
		FirstName: "Auth",
	}
	if err := svc.RegisterUser(context.Background(), user); err != nil {
		t.Fatalf("RegisterUser: %v", err)
	}
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	user := registeredUser(t, svc)

	if user.ID == uuid.Nil {
		t.Fatalf("registered user has no id")
	}
	if user.Email != "auth@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "password123" {
		t.Fatalf("password stored in plain text")
	}

	access, refresh, err := svc.LoginUser(context.Background(), "auth@example.com", "password123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("empty tokens: access=%q refresh=%q", access, refresh)
	}

	ctx, err := svc.SetContextFromToken(context.Background(), access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID != user.ID {
		t.Fatalf("request data: want user %s, got %+v", user.ID, rd)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthService(t)
	registeredUser(t, svc)

	if _, _, err := svc.LoginUser(context.Background(), "auth@example.com", "not-the-password"); err == nil {
		t.Fatalf("expected error for wrong password")
	}
	if _, _, err := svc.LoginUser(context.Background(), "nobody@example.com", "password123"); err == nil {
		t.Fatalf("expected error for unknown email")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	registeredUser(t, svc)

	dup := &types.User{Username: "someoneelse", Email: "auth@example.com", Password: "password123"}
	if err := svc.RegisterUser(context.Background(), dup); err == nil {
		t.Fatalf("expected error for duplicate email")
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc := newAuthService(t)
	registeredUser(t, svc)

	_, refresh, err := svc.LoginUser(context.Background(), "auth@example.com", "password123")
	if err != nil {
		t.Fatalf("LoginUser: %v", err)
	}

	access2, refresh2, err := svc.RefreshUser(context.Background(), refresh)
	if err != nil {
		t.Fatalf("RefreshUser: %v", err)
	}
	if access2 == "" || refresh2 == refresh {
		t.Fatalf("refresh did not rotate: access=%q refresh=%q", access2, refresh2)
	}

	// the old refresh token is gone after rotation
	if _, _, err := svc.RefreshUser(context.Background(), refresh); err == nil {
		t.Fatalf("expected error for consumed refresh token")
	}
}

func TestSetContextFromTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t)

	if _, err := svc.SetContextFromToken(context.Background(), "not-a-jwt"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}
