package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/confusion-server/internal/user/domain"
	"github.com/tair/confusion-server/pkg/auth"
	"github.com/tair/confusion-server/pkg/logger"
)

// ErrInvalidRegistration is returned when required signup fields are missing
var ErrInvalidRegistration = errors.New("invalid registration")

// RegisterUserCommand represents the command to register a new user
type RegisterUserCommand struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// RegisterUserHandler handles user registration command
type RegisterUserHandler struct {
	repo domain.UserRepository
}

// NewRegisterUserHandler creates a new register user handler
func NewRegisterUserHandler(repo domain.UserRepository) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

// Handle executes the register user command. New accounts are never admins;
// the flag is granted out of band in the store.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*domain.User, error) {
	if cmd.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidRegistration)
	}
	if cmd.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidRegistration)
	}
	if len(cmd.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidRegistration)
	}

	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:  cmd.Username,
		Password:  hashedPassword,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
	}

	if err := h.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx).Str("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	return user, nil
}
