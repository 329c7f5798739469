package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/confusion-server/internal/dish/domain"
)

// GormDishRepository implements DishRepository using GORM
type GormDishRepository struct {
	db *gorm.DB
}

// NewGormDishRepository creates a new GORM dish repository
func NewGormDishRepository(db *gorm.DB) *GormDishRepository {
	return &GormDishRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormDishRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Dish{})
}

func (r *GormDishRepository) Create(ctx context.Context, dish *domain.Dish) error {
	if err := r.db.WithContext(ctx).Create(dish).Error; err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}
	return nil
}

func (r *GormDishRepository) FindByID(ctx context.Context, id string) (*domain.Dish, error) {
	var dish domain.Dish
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&dish).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDishNotFound
		}
		return nil, fmt.Errorf("failed to find dish: %w", err)
	}
	return &dish, nil
}

func (r *GormDishRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Dish, error) {
	var dishes []domain.Dish
	if len(ids) == 0 {
		return dishes, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("failed to find dishes: %w", err)
	}
	return dishes, nil
}

func (r *GormDishRepository) FindAll(ctx context.Context) ([]domain.Dish, error) {
	var dishes []domain.Dish
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&dishes).Error; err != nil {
		return nil, fmt.Errorf("failed to list dishes: %w", err)
	}
	return dishes, nil
}
