package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/tair/confusion-server/internal/dish/domain"
	"github.com/tair/confusion-server/pkg/logger"
)

// ErrInvalidDish is returned when a dish fails validation
var ErrInvalidDish = errors.New("invalid dish")

// CreateDishCommand represents the command to create a new dish
type CreateDishCommand struct {
	Name        string
	Description string
	Image       string
	Category    string
	Label       string
	Price       float64
	Featured    bool
}

// CreateDishHandler handles dish creation command
type CreateDishHandler struct {
	repo domain.DishRepository
}

// NewCreateDishHandler creates a new create dish handler
func NewCreateDishHandler(repo domain.DishRepository) *CreateDishHandler {
	return &CreateDishHandler{repo: repo}
}

// Handle executes the create dish command
func (h *CreateDishHandler) Handle(ctx context.Context, cmd CreateDishCommand) (*domain.Dish, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidDish)
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrInvalidDish)
	}

	dish := &domain.Dish{
		Name:        cmd.Name,
		Description: cmd.Description,
		Image:       cmd.Image,
		Category:    cmd.Category,
		Label:       cmd.Label,
		Price:       cmd.Price,
		Featured:    cmd.Featured,
	}

	if err := h.repo.Create(ctx, dish); err != nil {
		return nil, err
	}

	logger.Info(ctx).Str("dish_id", dish.ID).Str("name", dish.Name).Msg("Dish created")
	return dish, nil
}
