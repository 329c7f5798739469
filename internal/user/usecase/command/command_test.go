package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tair/confusion-server/internal/user/domain"
	"github.com/tair/confusion-server/internal/user/repository"
	"github.com/tair/confusion-server/pkg/auth"
)

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository()
	h := NewRegisterUserHandler(repo)

	user, err := h.Handle(ctx, RegisterUserCommand{Username: "alice", Password: "secret1", FirstName: "Alice"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if user.ID == "" {
		t.Error("Expected an id to be assigned")
	}
	if user.Admin {
		t.Error("Expected new user to not be admin")
	}
	if user.Password == "secret1" {
		t.Error("Expected password to be hashed")
	}

	if _, err := h.Handle(ctx, RegisterUserCommand{Username: "alice", Password: "another"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterUserValidation(t *testing.T) {
	h := NewRegisterUserHandler(repository.NewMemoryUserRepository())

	testCases := []struct {
		name string
		cmd  RegisterUserCommand
	}{
		{"NoUsername", RegisterUserCommand{Password: "secret1"}},
		{"NoPassword", RegisterUserCommand{Username: "bob"}},
		{"ShortPassword", RegisterUserCommand{Username: "bob", Password: "abc"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Handle(context.Background(), tc.cmd)
			if !errors.Is(err, ErrInvalidRegistration) {
				t.Errorf("Expected ErrInvalidRegistration, got %v", err)
			}
		})
	}
}

func TestLoginUser(t *testing.T) {
	auth.Configure("command-test-secret", time.Minute)
	ctx := context.Background()
	repo := repository.NewMemoryUserRepository()

	hash, err := auth.HashPassword("password")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	admin := &domain.User{Username: "admin", Password: hash, Admin: true}
	if err := repo.Create(ctx, admin); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	h := NewLoginUserHandler(repo)

	resp, err := h.Handle(ctx, LoginUserCommand{Username: "admin", Password: "password"})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	claims, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != admin.ID || !claims.IsAdmin() {
		t.Errorf("Unexpected claims: %+v", claims)
	}

	for _, cmd := range []LoginUserCommand{
		{Username: "admin", Password: "wrong"},
		{Username: "ghost", Password: "password"},
		{Username: "admin"},
	} {
		if _, err := h.Handle(ctx, cmd); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login %+v: expected ErrInvalidCredentials, got %v", cmd, err)
		}
	}
}
