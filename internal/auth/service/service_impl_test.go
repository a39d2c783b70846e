package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/steeplehq/steeple/internal/auth/domain"
	"github.com/steeplehq/steeple/internal/auth/repository"
	"github.com/steeplehq/steeple/pkg/db"
	"go.uber.org/zap"
)

func setupAuthService(t *testing.T) domain.Service {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := conn.AutoMigrate(&domain.User{}, &domain.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	repo, sessionRepo := repository.New(conn)
	return New(zap.NewNop(), repo, sessionRepo, node)
}

func createTestUser(t *testing.T, svc domain.Service, email string) *domain.User {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Email:       email,
		Password:    "hunter2hunter2",
		DisplayName: "Pat",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc := setupAuthService(t)
	createTestUser(t, svc, "pat@example.com")

	_, err := svc.CreateUser(context.Background(), domain.CreateUserRequest{
		Email:       "PAT@example.com",
		Password:    "hunter2hunter2",
		DisplayName: "Pat Again",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc := setupAuthService(t)
	user := createTestUser(t, svc, "pat@example.com")
	ctx := context.Background()

	result, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "pat@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.RawToken == "" {
		t.Fatal("login returned empty token")
	}
	if result.UserID != user.ID {
		t.Fatalf("login user = %s, want %s", result.UserID, user.ID)
	}

	sess, err := svc.Authenticate(ctx, result.RawToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sess.UserID != user.ID {
		t.Fatalf("session user = %s, want %s", sess.UserID, user.ID)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc := setupAuthService(t)
	createTestUser(t, svc, "pat@example.com")

	_, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "pat@example.com",
		Password: "wrong password here",
	})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthenticateUnknownToken(t *testing.T) {
	svc := setupAuthService(t)

	if _, err := svc.Authenticate(context.Background(), "bogus-token"); !errors.Is(err, domain.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc := setupAuthService(t)
	createTestUser(t, svc, "pat@example.com")
	ctx := context.Background()

	result, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "pat@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(ctx, result.RawToken); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := svc.Authenticate(ctx, result.RawToken); !errors.Is(err, domain.ErrSessionRevoked) {
		t.Fatalf("expected ErrSessionRevoked, got %v", err)
	}
}

func TestUpdateActiveChurch(t *testing.T) {
	svc := setupAuthService(t)
	createTestUser(t, svc, "pat@example.com")
	ctx := context.Background()

	result, err := svc.Login(ctx, domain.LoginRequest{
		Email:    "pat@example.com",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	churchID := int64(4242)
	if err := svc.UpdateActiveChurch(ctx, result.SessionID, &churchID); err != nil {
		t.Fatalf("update active church: %v", err)
	}

	sess, err := svc.Authenticate(ctx, result.RawToken)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if sess.ActiveChurchID == nil || *sess.ActiveChurchID != churchID {
		t.Fatalf("active church = %v, want %d", sess.ActiveChurchID, churchID)
	}
}

func TestChangePasswordInvalidatesOldOne(t *testing.T) {
	svc := setupAuthService(t)
	user := createTestUser(t, svc, "pat@example.com")
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, user.ID.String(), "a new long password"); err != nil {
		t.Fatalf("change password: %v", err)
	}

	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "pat@example.com", Password: "hunter2hunter2"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "pat@example.com", Password: "a new long password"}); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
