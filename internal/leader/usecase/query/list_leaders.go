package query

import (
	"context"
	"fmt"

	"github.com/tair/confusion-server/internal/leader/domain"
)

// ListLeadersHandler handles list leaders query
type ListLeadersHandler struct {
	repo domain.LeaderRepository
}

// NewListLeadersHandler creates a new list leaders handler
func NewListLeadersHandler(repo domain.LeaderRepository) *ListLeadersHandler {
	return &ListLeadersHandler{repo: repo}
}

// Handle executes the list leaders query
func (h *ListLeadersHandler) Handle(ctx context.Context) ([]domain.Leader, error) {
	leaders, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaders: %w", err)
	}
	return leaders, nil
}
