package command

import (
	"context"
	"fmt"

	"github.com/tair/confusion-server/internal/favorite/domain"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/lock"
	"github.com/tair/confusion-server/pkg/logger"
)

// RemoveDishCommand removes a single dish from the caller's favorites
type RemoveDishCommand struct {
	UserID string
	DishID string
}

// RemoveDishHandler handles remove dish command
type RemoveDishHandler struct {
	repo      domain.FavoritesRepository
	locker    lock.Locker
	publisher kafka.EventPublisher
}

// NewRemoveDishHandler creates a new remove dish handler
func NewRemoveDishHandler(repo domain.FavoritesRepository, locker lock.Locker, publisher kafka.EventPublisher) *RemoveDishHandler {
	return &RemoveDishHandler{repo: repo, locker: locker, publisher: publisher}
}

// Handle executes the remove dish command
func (h *RemoveDishHandler) Handle(ctx context.Context, cmd RemoveDishCommand) (*domain.Favorites, error) {
	fav, err := h.remove(ctx, cmd)
	if err != nil {
		return nil, err
	}
	publishFavorites(ctx, h.publisher, kafka.ActionRemoved, fav, []string{cmd.DishID})
	return fav, nil
}

func (h *RemoveDishHandler) remove(ctx context.Context, cmd RemoveDishCommand) (*domain.Favorites, error) {
	unlock, err := h.locker.Lock(ctx, lockKey(cmd.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock favorites: %w", err)
	}
	defer unlock()

	fav, err := h.repo.FindByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if fav == nil {
		return nil, fmt.Errorf("user %s: %w", cmd.UserID, domain.ErrFavoritesNotFound)
	}
	if !fav.Remove(cmd.DishID) {
		return nil, fmt.Errorf("dish %s: %w", cmd.DishID, domain.ErrDishNotFavorite)
	}

	if err := h.repo.Save(ctx, fav); err != nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("user_id", cmd.UserID).
		Str("dish_id", cmd.DishID).
		Msg("Removed dish from favorites")
	return fav, nil
}
