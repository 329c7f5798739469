package query

import (
	"context"

	"github.com/tair/confusion-server/internal/leader/domain"
)

// GetLeaderHandler handles get leader query
type GetLeaderHandler struct {
	repo domain.LeaderRepository
}

// NewGetLeaderHandler creates a new get leader handler
func NewGetLeaderHandler(repo domain.LeaderRepository) *GetLeaderHandler {
	return &GetLeaderHandler{repo: repo}
}

// Handle returns nil, nil when no leader has the id
func (h *GetLeaderHandler) Handle(ctx context.Context, id string) (*domain.Leader, error) {
	return h.repo.FindByID(ctx, id)
}
