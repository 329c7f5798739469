//go:build wireinject
// +build wireinject

package favorite

import (
	"github.com/google/wire"

	dishdomain "github.com/tair/confusion-server/internal/dish/domain"
	"github.com/tair/confusion-server/internal/favorite/delivery/http"
	userdomain "github.com/tair/confusion-server/internal/user/domain"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/database"
	"github.com/tair/confusion-server/pkg/lock"
	"github.com/tair/confusion-server/pkg/metrics"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(
	store *database.Store,
	users userdomain.UserRepository,
	dishes dishdomain.DishRepository,
	locker lock.Locker,
	publisher kafka.EventPublisher,
	m *metrics.HTTPMetrics,
) (*http.FavoritesHandler, error) {
	wire.Build(
		ProvideFavoritesRepository,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewFavoritesHandlerWithDI,
	)
	return nil, nil
}
