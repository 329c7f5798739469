package leader

import (
	"fmt"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	"github.com/tair/confusion-server/internal/leader/domain"
	"github.com/tair/confusion-server/internal/leader/repository"
	"github.com/tair/confusion-server/internal/leader/usecase/command"
	"github.com/tair/confusion-server/internal/leader/usecase/query"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/database"
)

const cacheTTL = 5 * time.Minute

// ProvideLeaderRepository provides the leader repository for the configured
// store, with the list cached in Redis when a client is given
func ProvideLeaderRepository(store *database.Store, redisClient *redis.Client) (domain.LeaderRepository, error) {
	var repo domain.LeaderRepository
	switch store.Driver {
	case database.DriverPostgres:
		repo = repository.NewTracingLeaderRepository(repository.NewGormLeaderRepository(store.Gorm))
	case database.DriverMongo:
		repo = repository.NewTracingLeaderRepository(repository.NewMongoLeaderRepository(store.Mongo))
	case database.DriverMemory:
		repo = repository.NewMemoryLeaderRepository()
	default:
		return nil, fmt.Errorf("unknown store driver %q", store.Driver)
	}

	if redisClient != nil {
		repo = repository.NewCachedLeaderRepository(repo, redisClient, cacheTTL)
	}
	return repo, nil
}

// Migrate prepares the leaders table
func Migrate(store *database.Store) error {
	if store.Driver == database.DriverPostgres {
		return repository.NewGormLeaderRepository(store.Gorm).AutoMigrate()
	}
	return nil
}

// Command Handlers Providers
func ProvideCreateLeaderHandler(repo domain.LeaderRepository, publisher kafka.EventPublisher) *command.CreateLeaderHandler {
	return command.NewCreateLeaderHandler(repo, publisher)
}

func ProvideUpdateLeaderHandler(repo domain.LeaderRepository, publisher kafka.EventPublisher) *command.UpdateLeaderHandler {
	return command.NewUpdateLeaderHandler(repo, publisher)
}

func ProvideDeleteLeaderHandler(repo domain.LeaderRepository, publisher kafka.EventPublisher) *command.DeleteLeaderHandler {
	return command.NewDeleteLeaderHandler(repo, publisher)
}

// Query Handlers Providers
func ProvideGetLeaderHandler(repo domain.LeaderRepository) *query.GetLeaderHandler {
	return query.NewGetLeaderHandler(repo)
}

func ProvideListLeadersHandler(repo domain.LeaderRepository) *query.ListLeadersHandler {
	return query.NewListLeadersHandler(repo)
}

var CommandHandlerSet = wire.NewSet(
	ProvideCreateLeaderHandler,
	ProvideUpdateLeaderHandler,
	ProvideDeleteLeaderHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetLeaderHandler,
	ProvideListLeadersHandler,
)
