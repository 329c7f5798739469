//go:build wireinject
// +build wireinject

package leader

import (
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	"github.com/tair/confusion-server/internal/leader/delivery/http"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/database"
	"github.com/tair/confusion-server/pkg/metrics"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	store *database.Store,
	redisClient *redis.Client,
	publisher kafka.EventPublisher,
	m *metrics.HTTPMetrics,
) (*http.LeaderHandler, error) {
	wire.Build(
		ProvideLeaderRepository,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewLeaderHandlerWithDI,
	)
	return nil, nil
}
