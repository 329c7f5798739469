package favorite

import (
	"context"
	"fmt"

	"github.com/google/wire"

	dishdomain "github.com/tair/confusion-server/internal/dish/domain"
	"github.com/tair/confusion-server/internal/favorite/domain"
	"github.com/tair/confusion-server/internal/favorite/repository"
	"github.com/tair/confusion-server/internal/favorite/usecase/command"
	"github.com/tair/confusion-server/internal/favorite/usecase/query"
	userdomain "github.com/tair/confusion-server/internal/user/domain"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/database"
	"github.com/tair/confusion-server/pkg/lock"
)

// ProvideFavoritesRepository provides the favorites repository for the configured store
func ProvideFavoritesRepository(store *database.Store) (domain.FavoritesRepository, error) {
	switch store.Driver {
	case database.DriverPostgres:
		return repository.NewTracingFavoritesRepository(repository.NewGormFavoritesRepository(store.Gorm)), nil
	case database.DriverMongo:
		return repository.NewTracingFavoritesRepository(repository.NewMongoFavoritesRepository(store.Mongo)), nil
	case database.DriverMemory:
		return repository.NewMemoryFavoritesRepository(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", store.Driver)
}

// Migrate prepares the favorites table or collection
func Migrate(ctx context.Context, store *database.Store) error {
	switch store.Driver {
	case database.DriverPostgres:
		return repository.NewGormFavoritesRepository(store.Gorm).AutoMigrate()
	case database.DriverMongo:
		return repository.NewMongoFavoritesRepository(store.Mongo).EnsureIndexes(ctx)
	}
	return nil
}

// Command Handlers Providers
func ProvideAddDishesHandler(repo domain.FavoritesRepository, locker lock.Locker, publisher kafka.EventPublisher) *command.AddDishesHandler {
	return command.NewAddDishesHandler(repo, locker, publisher)
}

func ProvideRemoveDishHandler(repo domain.FavoritesRepository, locker lock.Locker, publisher kafka.EventPublisher) *command.RemoveDishHandler {
	return command.NewRemoveDishHandler(repo, locker, publisher)
}

func ProvideClearFavoritesHandler(repo domain.FavoritesRepository, locker lock.Locker, publisher kafka.EventPublisher) *command.ClearFavoritesHandler {
	return command.NewClearFavoritesHandler(repo, locker, publisher)
}

// Query Handlers Providers
func ProvideGetFavoritesHandler(repo domain.FavoritesRepository, users userdomain.UserRepository, dishes dishdomain.DishRepository) *query.GetFavoritesHandler {
	return query.NewGetFavoritesHandler(repo, users, dishes)
}

var CommandHandlerSet = wire.NewSet(
	ProvideAddDishesHandler,
	ProvideRemoveDishHandler,
	ProvideClearFavoritesHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetFavoritesHandler,
)
