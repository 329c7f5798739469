package dish

import (
	"fmt"

	"github.com/google/wire"

	"github.com/tair/confusion-server/internal/dish/domain"
	"github.com/tair/confusion-server/internal/dish/repository"
	"github.com/tair/confusion-server/internal/dish/usecase/command"
	"github.com/tair/confusion-server/internal/dish/usecase/query"
	"github.com/tair/confusion-server/pkg/database"
)

// ProvideDishRepository provides the dish repository for the configured store
func ProvideDishRepository(store *database.Store) (domain.DishRepository, error) {
	switch store.Driver {
	case database.DriverPostgres:
		return repository.NewGormDishRepository(store.Gorm), nil
	case database.DriverMongo:
		return repository.NewMongoDishRepository(store.Mongo), nil
	case database.DriverMemory:
		return repository.NewMemoryDishRepository(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", store.Driver)
}

// Migrate prepares the dishes table
func Migrate(store *database.Store) error {
	if store.Driver == database.DriverPostgres {
		return repository.NewGormDishRepository(store.Gorm).AutoMigrate()
	}
	return nil
}

func ProvideCreateDishHandler(repo domain.DishRepository) *command.CreateDishHandler {
	return command.NewCreateDishHandler(repo)
}

func ProvideGetDishHandler(repo domain.DishRepository) *query.GetDishHandler {
	return query.NewGetDishHandler(repo)
}

func ProvideListDishesHandler(repo domain.DishRepository) *query.ListDishesHandler {
	return query.NewListDishesHandler(repo)
}

var HandlerSet = wire.NewSet(
	ProvideCreateDishHandler,
	ProvideGetDishHandler,
	ProvideListDishesHandler,
)
