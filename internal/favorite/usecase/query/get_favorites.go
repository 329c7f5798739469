package query

import (
	"context"
	"errors"
	"fmt"

	dishdomain "github.com/tair/confusion-server/internal/dish/domain"
	"github.com/tair/confusion-server/internal/favorite/domain"
	userdomain "github.com/tair/confusion-server/internal/user/domain"
)

// UserFinder resolves the owner of a favorites document
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*userdomain.User, error)
}

// DishFinder resolves dish ids in one batch
type DishFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]dishdomain.Dish, error)
}

// GetFavoritesHandler returns the caller's favorites with user and dishes populated
type GetFavoritesHandler struct {
	repo   domain.FavoritesRepository
	users  UserFinder
	dishes DishFinder
}

// NewGetFavoritesHandler creates a new get favorites handler
func NewGetFavoritesHandler(repo domain.FavoritesRepository, users UserFinder, dishes DishFinder) *GetFavoritesHandler {
	return &GetFavoritesHandler{repo: repo, users: users, dishes: dishes}
}

// Handle returns nil when the user has no favorites document. Dish ids that
// no longer resolve are left out of the populated view.
func (h *GetFavoritesHandler) Handle(ctx context.Context, userID string) (*domain.PopulatedFavorites, error) {
	fav, err := h.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fav == nil {
		return nil, nil
	}

	user, err := h.users.FindByID(ctx, fav.UserID)
	if err != nil && !errors.Is(err, userdomain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to populate user: %w", err)
	}

	found, err := h.dishes.FindByIDs(ctx, fav.Dishes)
	if err != nil {
		return nil, fmt.Errorf("failed to populate dishes: %w", err)
	}

	byID := make(map[string]dishdomain.Dish, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}
	dishes := make([]dishdomain.Dish, 0, len(fav.Dishes))
	for _, id := range fav.Dishes {
		if d, ok := byID[id]; ok {
			dishes = append(dishes, d)
		}
	}

	return &domain.PopulatedFavorites{
		ID:        fav.ID,
		User:      user,
		Dishes:    dishes,
		CreatedAt: fav.CreatedAt,
		UpdatedAt: fav.UpdatedAt,
	}, nil
}
