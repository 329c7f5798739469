package query

import (
	"context"
	"fmt"

	"github.com/tair/confusion-server/internal/dish/domain"
)

// ListDishesHandler handles list dishes query
type ListDishesHandler struct {
	repo domain.DishRepository
}

// NewListDishesHandler creates a new list dishes handler
func NewListDishesHandler(repo domain.DishRepository) *ListDishesHandler {
	return &ListDishesHandler{repo: repo}
}

// Handle returns every dish, optionally only featured ones
func (h *ListDishesHandler) Handle(ctx context.Context, featuredOnly bool) ([]domain.Dish, error) {
	dishes, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	if !featuredOnly {
		return dishes, nil
	}

	featured := []domain.Dish{}
	for _, d := range dishes {
		if d.Featured {
			featured = append(featured, d)
		}
	}
	return featured, nil
}
