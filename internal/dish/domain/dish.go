package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDishNotFound = errors.New("dish not found")

// Dish represents a menu entry that users can favorite
type Dish struct {
	ID          string    `json:"_id" gorm:"primaryKey" bson:"_id"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Image       string    `json:"image" bson:"image"`
	Category    string    `json:"category" bson:"category"`
	Label       string    `json:"label" bson:"label"`
	Price       float64   `json:"price" gorm:"not null" bson:"price"`
	Featured    bool      `json:"featured" bson:"featured"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TableName specifies the table name
func (Dish) TableName() string {
	return "dishes"
}

func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// DishRepository defines the contract for dish data access
type DishRepository interface {
	Create(ctx context.Context, dish *Dish) error
	FindByID(ctx context.Context, id string) (*Dish, error)
	// FindByIDs returns the dishes that exist among ids, in no particular order
	FindByIDs(ctx context.Context, ids []string) ([]Dish, error)
	FindAll(ctx context.Context) ([]Dish, error)
}
