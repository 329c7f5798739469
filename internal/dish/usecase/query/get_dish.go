package query

import (
	"context"

	"github.com/tair/confusion-server/internal/dish/domain"
)

// GetDishQuery represents the query to get a dish by ID
type GetDishQuery struct {
	ID string
}

// GetDishHandler handles get dish query
type GetDishHandler struct {
	repo domain.DishRepository
}

// NewGetDishHandler creates a new get dish handler
func NewGetDishHandler(repo domain.DishRepository) *GetDishHandler {
	return &GetDishHandler{repo: repo}
}

// Handle executes the get dish query
func (h *GetDishHandler) Handle(ctx context.Context, query GetDishQuery) (*domain.Dish, error) {
	return h.repo.FindByID(ctx, query.ID)
}
