//go:build wireinject
// +build wireinject

package dish

import (
	"github.com/google/wire"

	"github.com/tair/confusion-server/internal/dish/delivery/http"
	"github.com/tair/confusion-server/internal/dish/domain"
	"github.com/tair/confusion-server/pkg/metrics"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(repo domain.DishRepository, m *metrics.HTTPMetrics) (*http.DishHandler, error) {
	wire.Build(
		HandlerSet,
		http.NewDishHandlerWithDI,
	)
	return nil, nil
}
