package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Store is the document store handed to repository providers. Exactly one of
// Gorm or Mongo is set, matching Driver; the memory driver sets neither.
type Store struct {
	Driver string
	Gorm   *gorm.DB
	Mongo  *mongo.Database
}

// NewMemoryStore returns a store backed by in-process repositories
func NewMemoryStore() *Store {
	return &Store{Driver: DriverMemory}
}

// Ping verifies the store is reachable
func (s *Store) Ping(ctx context.Context) error {
	switch s.Driver {
	case DriverPostgres:
		sqlDB, err := s.Gorm.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %w", err)
		}
		return sqlDB.PingContext(ctx)
	case DriverMongo:
		return s.Mongo.Client().Ping(ctx, nil)
	case DriverMemory:
		return nil
	default:
		return fmt.Errorf("unknown store driver %q", s.Driver)
	}
}

// Close releases the underlying connection
func (s *Store) Close(ctx context.Context) error {
	switch s.Driver {
	case DriverPostgres:
		sqlDB, err := s.Gorm.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	case DriverMongo:
		return s.Mongo.Client().Disconnect(ctx)
	}
	return nil
}
