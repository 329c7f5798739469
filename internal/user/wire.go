//go:build wireinject
// +build wireinject

package user

import (
	"github.com/google/wire"

	"github.com/tair/confusion-server/internal/user/delivery/http"
	"github.com/tair/confusion-server/internal/user/domain"
	"github.com/tair/confusion-server/pkg/metrics"
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(repo domain.UserRepository, m *metrics.HTTPMetrics) (*http.UserHandler, error) {
	wire.Build(
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewUserHandlerWithDI,
	)
	return nil, nil
}
