package domain

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reserved keys are owned by the store and never taken from a request body
const (
	KeyID        = "_id"
	KeyCreatedAt = "createdAt"
	KeyUpdatedAt = "updatedAt"
)

// Attributes is the free-form part of a leader (name, image, designation,
// abbr, description, featured, ...). It is stored as a jsonb column.
type Attributes map[string]interface{}

// GormDataType tells GORM which column type to use
func (Attributes) GormDataType() string {
	return "jsonb"
}

// Value implements driver.Valuer
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (a *Attributes) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*a = Attributes{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Attributes", src)
	}
	out := Attributes{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*a = out
	return nil
}

// SanitizeAttributes returns attrs without the reserved keys
func SanitizeAttributes(attrs map[string]interface{}) Attributes {
	out := make(Attributes, len(attrs))
	for k, v := range attrs {
		switch k {
		case KeyID, KeyCreatedAt, KeyUpdatedAt:
			continue
		}
		out[k] = v
	}
	return out
}

// Leader is a member of the leadership team. On the wire the attributes sit
// next to _id and the timestamps in one flat object.
type Leader struct {
	ID         string     `gorm:"primaryKey"`
	Attributes Attributes `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the table name
func (Leader) TableName() string {
	return "leaders"
}

func (l *Leader) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// MarshalJSON flattens the attributes into the record
func (l Leader) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(l.Attributes)+3)
	for k, v := range l.Attributes {
		out[k] = v
	}
	out[KeyID] = l.ID
	out[KeyCreatedAt] = l.CreatedAt
	out[KeyUpdatedAt] = l.UpdatedAt
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON
func (l *Leader) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Leader
	if id, ok := raw[KeyID].(string); ok {
		out.ID = id
	}
	for key, dst := range map[string]*time.Time{KeyCreatedAt: &out.CreatedAt, KeyUpdatedAt: &out.UpdatedAt} {
		s, ok := raw[key].(string)
		if !ok {
			continue
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = t
	}
	out.Attributes = SanitizeAttributes(raw)

	*l = out
	return nil
}

// LeaderRepository defines the contract for leader data access. Lookups and
// single-record mutations return a nil leader when the id does not exist.
type LeaderRepository interface {
	FindAll(ctx context.Context) ([]Leader, error)
	FindByID(ctx context.Context, id string) (*Leader, error)
	Create(ctx context.Context, leader *Leader) error
	UpdateAttributes(ctx context.Context, id string, attrs Attributes) (*Leader, error)
	Delete(ctx context.Context, id string) (*Leader, error)
	DeleteAll(ctx context.Context) (int64, error)
}
