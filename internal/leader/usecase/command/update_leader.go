package command

import (
	"context"

	"github.com/tair/confusion-server/internal/leader/domain"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/logger"
)

// UpdateLeaderCommand merges attributes onto an existing leader
type UpdateLeaderCommand struct {
	ActorID    string
	ID         string
	Attributes map[string]interface{}
}

// UpdateLeaderHandler handles the partial attribute update
type UpdateLeaderHandler struct {
	repo      domain.LeaderRepository
	publisher kafka.EventPublisher
}

// NewUpdateLeaderHandler creates a new update leader handler
func NewUpdateLeaderHandler(repo domain.LeaderRepository, publisher kafka.EventPublisher) *UpdateLeaderHandler {
	return &UpdateLeaderHandler{repo: repo, publisher: publisher}
}

// Handle returns the updated leader, or nil when the id does not exist.
// Attributes not named in the command keep their values.
func (h *UpdateLeaderHandler) Handle(ctx context.Context, cmd UpdateLeaderCommand) (*domain.Leader, error) {
	leader, err := h.repo.UpdateAttributes(ctx, cmd.ID, domain.SanitizeAttributes(cmd.Attributes))
	if err != nil {
		return nil, err
	}
	if leader == nil {
		logger.Debug(ctx).Str("leader_id", cmd.ID).Msg("Leader to update not found")
		return nil, nil
	}

	logger.Info(ctx).Str("leader_id", cmd.ID).Str("actor_id", cmd.ActorID).Msg("Leader updated")
	publishLeader(ctx, h.publisher, kafka.LeaderChangedEvent{
		Action:   kafka.ActionUpdated,
		LeaderID: cmd.ID,
		ActorID:  cmd.ActorID,
	})
	return leader, nil
}
