package user

import (
	"context"
	"fmt"

	"github.com/google/wire"

	"github.com/tair/confusion-server/internal/user/domain"
	"github.com/tair/confusion-server/internal/user/repository"
	"github.com/tair/confusion-server/internal/user/usecase/command"
	"github.com/tair/confusion-server/internal/user/usecase/query"
	"github.com/tair/confusion-server/pkg/database"
)

// ProvideUserRepository provides the user repository for the configured store
func ProvideUserRepository(store *database.Store) (domain.UserRepository, error) {
	switch store.Driver {
	case database.DriverPostgres:
		return repository.NewTracingUserRepository(repository.NewGormUserRepository(store.Gorm)), nil
	case database.DriverMongo:
		return repository.NewTracingUserRepository(repository.NewMongoUserRepository(store.Mongo)), nil
	case database.DriverMemory:
		return repository.NewMemoryUserRepository(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", store.Driver)
}

// Migrate prepares the users table or collection
func Migrate(ctx context.Context, store *database.Store) error {
	switch store.Driver {
	case database.DriverPostgres:
		return repository.NewGormUserRepository(store.Gorm).AutoMigrate()
	case database.DriverMongo:
		return repository.NewMongoUserRepository(store.Mongo).EnsureIndexes(ctx)
	}
	return nil
}

// Command Handlers Providers
func ProvideRegisterUserHandler(repo domain.UserRepository) *command.RegisterUserHandler {
	return command.NewRegisterUserHandler(repo)
}

func ProvideLoginUserHandler(repo domain.UserRepository) *command.LoginUserHandler {
	return command.NewLoginUserHandler(repo)
}

var CommandHandlerSet = wire.NewSet(
	ProvideRegisterUserHandler,
	ProvideLoginUserHandler,
)

// Query Handlers Providers
func ProvideGetUserHandler(repo domain.UserRepository) *query.GetUserHandler {
	return query.NewGetUserHandler(repo)
}

func ProvideListUsersHandler(repo domain.UserRepository) *query.ListUsersHandler {
	return query.NewListUsersHandler(repo)
}

var QueryHandlerSet = wire.NewSet(
	ProvideGetUserHandler,
	ProvideListUsersHandler,
)
