package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/identity-admin/internal/core/domain"
)

func seedUser(t *testing.T, repo *stubUsersRepo, username, password string, roles []string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := repo.Insert(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func TestLogin_IssuesTokenWithRoles(t *testing.T) {
	repo := newStubUsersRepo()
	seedUser(t, repo, "alice", "s3cret-pass", []string{domain.RoleAdmin, domain.RoleUser})
	svc := NewAuthService(repo, "test-secret", time.Hour)

	token, user, err := svc.Login(context.Background(), "alice", "s3cret-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse token: %v", err)
	}
	rawRoles, ok := claims["roles"].([]interface{})
	if !ok || len(rawRoles) != 2 {
		t.Fatalf("roles claim missing or wrong shape: %v", claims["roles"])
	}
	if rawRoles[0] != domain.RoleAdmin {
		t.Fatalf("first role mismatch: %v", rawRoles[0])
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newStubUsersRepo()
	seedUser(t, repo, "alice", "s3cret-pass", []string{domain.RoleUser})
	svc := NewAuthService(repo, "test-secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUserReadsLikeWrongPassword(t *testing.T) {
	svc := NewAuthService(newStubUsersRepo(), "test-secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "nobody", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	svc := NewAuthService(newStubUsersRepo(), "test-secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
