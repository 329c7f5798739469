package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tair/confusion-server/internal/leader/domain"
)

// GormLeaderRepository implements LeaderRepository using GORM with the
// attributes in a jsonb column
type GormLeaderRepository struct {
	db *gorm.DB
}

// NewGormLeaderRepository creates a new GORM leader repository
func NewGormLeaderRepository(db *gorm.DB) *GormLeaderRepository {
	return &GormLeaderRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormLeaderRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Leader{})
}

func (r *GormLeaderRepository) FindAll(ctx context.Context) ([]domain.Leader, error) {
	leaders := []domain.Leader{}
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&leaders).Error; err != nil {
		return nil, fmt.Errorf("failed to list leaders: %w", err)
	}
	return leaders, nil
}

func (r *GormLeaderRepository) FindByID(ctx context.Context, id string) (*domain.Leader, error) {
	var leader domain.Leader
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&leader).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find leader: %w", err)
	}
	return &leader, nil
}

func (r *GormLeaderRepository) Create(ctx context.Context, leader *domain.Leader) error {
	now := time.Now()
	leader.CreatedAt, leader.UpdatedAt = now, now
	if err := r.db.WithContext(ctx).Create(leader).Error; err != nil {
		return fmt.Errorf("failed to create leader: %w", err)
	}
	return nil
}

// UpdateAttributes merges attrs into the stored jsonb in one statement
func (r *GormLeaderRepository) UpdateAttributes(ctx context.Context, id string, attrs domain.Attributes) (*domain.Leader, error) {
	patch, err := attrs.Value()
	if err != nil {
		return nil, fmt.Errorf("failed to encode attributes: %w", err)
	}

	var updated []domain.Leader
	result := r.db.WithContext(ctx).
		Model(&updated).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attributes": gorm.Expr("attributes || ?::jsonb", patch),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update leader: %w", result.Error)
	}
	if result.RowsAffected == 0 || len(updated) == 0 {
		return nil, nil
	}
	return &updated[0], nil
}

func (r *GormLeaderRepository) Delete(ctx context.Context, id string) (*domain.Leader, error) {
	var removed []domain.Leader
	result := r.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&removed)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to delete leader: %w", result.Error)
	}
	if result.RowsAffected == 0 || len(removed) == 0 {
		return nil, nil
	}
	return &removed[0], nil
}

func (r *GormLeaderRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&domain.Leader{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete leaders: %w", result.Error)
	}
	return result.RowsAffected, nil
}
