package command

import (
	"context"
	"fmt"

	"github.com/tair/confusion-server/internal/favorite/domain"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/lock"
	"github.com/tair/confusion-server/pkg/logger"
)

// ClearFavoritesHandler deletes the caller's favorites document
type ClearFavoritesHandler struct {
	repo      domain.FavoritesRepository
	locker    lock.Locker
	publisher kafka.EventPublisher
}

// NewClearFavoritesHandler creates a new clear favorites handler
func NewClearFavoritesHandler(repo domain.FavoritesRepository, locker lock.Locker, publisher kafka.EventPublisher) *ClearFavoritesHandler {
	return &ClearFavoritesHandler{repo: repo, locker: locker, publisher: publisher}
}

// Handle removes the document and returns it, or nil when the user had none
func (h *ClearFavoritesHandler) Handle(ctx context.Context, userID string) (*domain.Favorites, error) {
	removed, err := h.remove(ctx, userID)
	if err != nil || removed == nil {
		return nil, err
	}
	publishFavorites(ctx, h.publisher, kafka.ActionCleared, removed, removed.Dishes)
	return removed, nil
}

func (h *ClearFavoritesHandler) remove(ctx context.Context, userID string) (*domain.Favorites, error) {
	unlock, err := h.locker.Lock(ctx, lockKey(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to lock favorites: %w", err)
	}
	defer unlock()

	removed, err := h.repo.RemoveByUser(ctx, userID)
	if err != nil || removed == nil {
		return nil, err
	}

	logger.Info(ctx).
		Str("user_id", userID).
		Int("dishes", len(removed.Dishes)).
		Msg("Cleared favorites")
	return removed, nil
}
