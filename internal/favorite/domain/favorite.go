package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dishdomain "github.com/tair/confusion-server/internal/dish/domain"
	userdomain "github.com/tair/confusion-server/internal/user/domain"
)

var (
	ErrFavoritesNotFound = errors.New("favorites not found")
	ErrDishNotFavorite   = errors.New("dish not in favorites")
)

// Favorites is the single favorites document owned by a user. Dishes holds
// dish ids in insertion order and never contains a duplicate.
type Favorites struct {
	ID        string         `json:"_id" gorm:"primaryKey" bson:"_id"`
	UserID    string         `json:"user" gorm:"uniqueIndex;not null" bson:"user"`
	Dishes    pq.StringArray `json:"dishes" gorm:"type:text[]" bson:"dishes"`
	CreatedAt time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// TableName specifies the table name
func (Favorites) TableName() string {
	return "favorites"
}

func (f *Favorites) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Contains reports whether dishID is already a favorite
func (f *Favorites) Contains(dishID string) bool {
	for _, id := range f.Dishes {
		if id == dishID {
			return true
		}
	}
	return false
}

// Merge appends every id not yet present, in first-seen order, and returns
// the ids that were actually added.
func (f *Favorites) Merge(dishIDs []string) []string {
	var added []string
	for _, id := range dishIDs {
		if f.Contains(id) {
			continue
		}
		f.Dishes = append(f.Dishes, id)
		added = append(added, id)
	}
	return added
}

// Remove deletes dishID keeping the order of the remaining entries. It
// reports whether the id was present.
func (f *Favorites) Remove(dishID string) bool {
	for i, id := range f.Dishes {
		if id == dishID {
			f.Dishes = append(f.Dishes[:i:i], f.Dishes[i+1:]...)
			return true
		}
	}
	return false
}

// Dedupe returns ids with later duplicates dropped
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// PopulatedFavorites is the read view of a favorites document with the
// owner and dishes resolved to full records.
type PopulatedFavorites struct {
	ID        string            `json:"_id"`
	User      *userdomain.User  `json:"user"`
	Dishes    []dishdomain.Dish `json:"dishes"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// FavoritesRepository defines the contract for favorites data access.
// FindByUser and RemoveByUser return a nil document when the user has none.
type FavoritesRepository interface {
	FindByUser(ctx context.Context, userID string) (*Favorites, error)
	Create(ctx context.Context, fav *Favorites) error
	Save(ctx context.Context, fav *Favorites) error
	RemoveByUser(ctx context.Context, userID string) (*Favorites, error)
	Count(ctx context.Context) (int64, error)
}
