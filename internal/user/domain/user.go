package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tair/confusion-server/pkg/auth"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// User is an account that can own a favorites document
type User struct {
	ID        string    `json:"_id" gorm:"primaryKey" bson:"_id"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null" bson:"username"`
	Password  string    `json:"-" gorm:"not null" bson:"password"` // Never expose password in JSON
	FirstName string    `json:"firstname" bson:"firstname"`
	LastName  string    `json:"lastname" bson:"lastname"`
	Admin     bool      `json:"admin" gorm:"not null;default:false" bson:"admin"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an id when the caller did not
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Role returns the token role of the user
func (u *User) Role() string {
	if u.Admin {
		return auth.RoleAdmin
	}
	return auth.RoleUser
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
}
