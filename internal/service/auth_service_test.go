package service

import (
	"context"
	"errors"
	"testing"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util"
)

func testAuthConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}}
}

func seedUser(t *testing.T, email, password, companyID string) domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password, 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return domain.User{
		ID:           "user-1",
		CompanyID:    &companyID,
		Name:         "Maria",
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleManager,
		Active:       true,
	}
}

func TestLoginSuccess(t *testing.T) {
	users := &mockUserRepo{users: []domain.User{seedUser(t, "maria@example.com", "s3cret", "company-7")}}
	svc := NewAuthService(testAuthConfig(), users)

	user, token, _, err := svc.Login(context.Background(), "maria@example.com", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if users.lastLoginID != user.ID {
		t.Fatalf("last login not touched for %s", user.ID)
	}

	principal, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if principal.ID != user.ID || principal.CompanyID == nil || *principal.CompanyID != "company-7" {
		t.Fatalf("principal mismatch: %+v", principal)
	}
}

// Unknown email and wrong password must be indistinguishable to callers.
func TestLoginGenericFailure(t *testing.T) {
	users := &mockUserRepo{users: []domain.User{seedUser(t, "maria@example.com", "s3cret", "company-7")}}
	svc := NewAuthService(testAuthConfig(), users)

	_, _, _, errUnknown := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	_, _, _, errWrongPw := svc.Login(context.Background(), "maria@example.com", "wrong")

	for _, err := range []error{errUnknown, errWrongPw} {
		var de *apperrors.DomainError
		if !errors.As(err, &de) {
			t.Fatalf("expected domain error, got %v", err)
		}
		if de.Code != "UNAUTHORIZED" || de.Message != "invalid email or password" {
			t.Fatalf("expected generic unauthorized, got code=%s message=%q", de.Code, de.Message)
		}
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := seedUser(t, "maria@example.com", "s3cret", "company-7")
	user.Active = false
	users := &mockUserRepo{users: []domain.User{user}}
	svc := NewAuthService(testAuthConfig(), users)

	_, _, _, err := svc.Login(context.Background(), "maria@example.com", "s3cret")
	assertCode(t, err, "UNAUTHORIZED")
}

func TestProfileNotFound(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), &mockUserRepo{})

	_, err := svc.Profile(context.Background(), "ghost")
	assertCode(t, err, "NOT_FOUND")
}
