package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/tair/confusion-server/internal/favorite/domain"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/lock"
	"github.com/tair/confusion-server/pkg/logger"
)

// ErrEmptyDishID is returned when a dish reference carries no id
var ErrEmptyDishID = errors.New("dish id is required")

// AddDishesCommand adds one or more dishes to the caller's favorites
type AddDishesCommand struct {
	UserID  string
	DishIDs []string
}

// AddDishesHandler handles both the bulk and the single add
type AddDishesHandler struct {
	repo      domain.FavoritesRepository
	locker    lock.Locker
	publisher kafka.EventPublisher
}

// NewAddDishesHandler creates a new add dishes handler
func NewAddDishesHandler(repo domain.FavoritesRepository, locker lock.Locker, publisher kafka.EventPublisher) *AddDishesHandler {
	return &AddDishesHandler{repo: repo, locker: locker, publisher: publisher}
}

// Handle merges the dish ids into the caller's document, creating it on first
// use. Ids already present are skipped; when nothing is new the current
// document is returned unchanged and nothing is written.
func (h *AddDishesHandler) Handle(ctx context.Context, cmd AddDishesCommand) (*domain.Favorites, error) {
	for _, id := range cmd.DishIDs {
		if id == "" {
			return nil, ErrEmptyDishID
		}
	}

	fav, added, err := h.merge(ctx, cmd)
	if err != nil {
		return nil, err
	}
	if len(added) > 0 {
		publishFavorites(ctx, h.publisher, kafka.ActionAdded, fav, added)
	}
	return fav, nil
}

// merge applies the add under the per-user lock and returns the ids that were new
func (h *AddDishesHandler) merge(ctx context.Context, cmd AddDishesCommand) (*domain.Favorites, []string, error) {
	unlock, err := h.locker.Lock(ctx, lockKey(cmd.UserID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock favorites: %w", err)
	}
	defer unlock()

	fav, err := h.repo.FindByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, nil, err
	}

	var added []string
	if fav == nil {
		added = domain.Dedupe(cmd.DishIDs)
		fav = &domain.Favorites{
			UserID: cmd.UserID,
			Dishes: pq.StringArray(added),
		}
		if err := h.repo.Create(ctx, fav); err != nil {
			return nil, nil, err
		}
		logger.Info(ctx).Str("user_id", cmd.UserID).Str("favorites_id", fav.ID).Msg("Favorites created")
	} else {
		added = fav.Merge(cmd.DishIDs)
		if len(added) == 0 {
			logger.Debug(ctx).Str("user_id", cmd.UserID).Msg("Dishes already in favorites")
			return fav, nil, nil
		}
		if err := h.repo.Save(ctx, fav); err != nil {
			return nil, nil, err
		}
	}

	logger.Info(ctx).
		Str("user_id", cmd.UserID).
		Strs("dish_ids", added).
		Msg("Added dishes to favorites")
	return fav, added, nil
}

func lockKey(userID string) string {
	return "favorites:" + userID
}

// publishFavorites emits a change event. Callers invoke it after releasing the
// per-user lock. A failed publish is logged and does not fail the request; the
// document is already persisted.
func publishFavorites(ctx context.Context, publisher kafka.EventPublisher, action string, fav *domain.Favorites, changed []string) {
	event := kafka.FavoritesChangedEvent{
		Action:  action,
		UserID:  fav.UserID,
		DishIDs: changed,
		Dishes:  append([]string{}, fav.Dishes...),
	}
	if err := publisher.PublishFavoritesChanged(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Str("user_id", fav.UserID).Str("action", action).Msg("Failed to publish favorites event")
	}
}
