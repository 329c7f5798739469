package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/confusion-server/internal/favorite/domain"
)

// GormFavoritesRepository implements FavoritesRepository using GORM. The
// dishes column is a Postgres text[].
type GormFavoritesRepository struct {
	db *gorm.DB
}

// NewGormFavoritesRepository creates a new GORM favorites repository
func NewGormFavoritesRepository(db *gorm.DB) *GormFavoritesRepository {
	return &GormFavoritesRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormFavoritesRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorites{})
}

func (r *GormFavoritesRepository) FindByUser(ctx context.Context, userID string) (*domain.Favorites, error) {
	var fav domain.Favorites
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find favorites: %w", err)
	}
	return &fav, nil
}

func (r *GormFavoritesRepository) Create(ctx context.Context, fav *domain.Favorites) error {
	now := time.Now()
	fav.CreatedAt, fav.UpdatedAt = now, now
	if err := r.db.WithContext(ctx).Create(fav).Error; err != nil {
		return fmt.Errorf("failed to create favorites: %w", err)
	}
	return nil
}

func (r *GormFavoritesRepository) Save(ctx context.Context, fav *domain.Favorites) error {
	fav.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(fav).Error; err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

func (r *GormFavoritesRepository) RemoveByUser(ctx context.Context, userID string) (*domain.Favorites, error) {
	var removed []domain.Favorites
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("user_id = ?", userID).
		Delete(&removed)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove favorites: %w", result.Error)
	}
	if result.RowsAffected == 0 || len(removed) == 0 {
		return nil, nil
	}
	return &removed[0], nil
}

func (r *GormFavoritesRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Favorites{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}
