package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tair/confusion-server/internal/favorite/domain"
)

// MemoryFavoritesRepository keeps favorites documents in process memory,
// keyed by owner. Documents are copied in and out.
type MemoryFavoritesRepository struct {
	mu     sync.RWMutex
	byUser map[string]domain.Favorites
}

func NewMemoryFavoritesRepository() *MemoryFavoritesRepository {
	return &MemoryFavoritesRepository{byUser: make(map[string]domain.Favorites)}
}

func (r *MemoryFavoritesRepository) FindByUser(_ context.Context, userID string) (*domain.Favorites, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fav, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	return clone(fav), nil
}

func (r *MemoryFavoritesRepository) Create(_ context.Context, fav *domain.Favorites) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if fav.ID == "" {
		fav.ID = uuid.NewString()
	}
	now := time.Now()
	fav.CreatedAt, fav.UpdatedAt = now, now
	r.byUser[fav.UserID] = *clone(*fav)
	return nil
}

func (r *MemoryFavoritesRepository) Save(_ context.Context, fav *domain.Favorites) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[fav.UserID]; !ok {
		return domain.ErrFavoritesNotFound
	}
	fav.UpdatedAt = time.Now()
	r.byUser[fav.UserID] = *clone(*fav)
	return nil
}

func (r *MemoryFavoritesRepository) RemoveByUser(_ context.Context, userID string) (*domain.Favorites, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fav, ok := r.byUser[userID]
	if !ok {
		return nil, nil
	}
	delete(r.byUser, userID)
	return &fav, nil
}

func (r *MemoryFavoritesRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byUser)), nil
}

func clone(fav domain.Favorites) *domain.Favorites {
	fav.Dishes = append(pq.StringArray{}, fav.Dishes...)
	return &fav
}
