package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tair/confusion-server/internal/dish/domain"
)

// MemoryDishRepository keeps dishes in process memory
type MemoryDishRepository struct {
	mu     sync.RWMutex
	dishes map[string]domain.Dish
}

func NewMemoryDishRepository() *MemoryDishRepository {
	return &MemoryDishRepository{dishes: make(map[string]domain.Dish)}
}

func (r *MemoryDishRepository) Create(_ context.Context, dish *domain.Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dish.ID == "" {
		dish.ID = uuid.NewString()
	}
	now := time.Now()
	dish.CreatedAt, dish.UpdatedAt = now, now
	r.dishes[dish.ID] = *dish
	return nil
}

func (r *MemoryDishRepository) FindByID(_ context.Context, id string) (*domain.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.dishes[id]
	if !ok {
		return nil, domain.ErrDishNotFound
	}
	return &d, nil
}

func (r *MemoryDishRepository) FindByIDs(_ context.Context, ids []string) ([]domain.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dishes := []domain.Dish{}
	for _, id := range ids {
		if d, ok := r.dishes[id]; ok {
			dishes = append(dishes, d)
		}
	}
	return dishes, nil
}

func (r *MemoryDishRepository) FindAll(_ context.Context) ([]domain.Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	dishes := make([]domain.Dish, 0, len(r.dishes))
	for _, d := range r.dishes {
		dishes = append(dishes, d)
	}
	sort.Slice(dishes, func(i, j int) bool {
		return dishes[i].CreatedAt.Before(dishes[j].CreatedAt)
	})
	return dishes, nil
}
