package command

import (
	"context"

	"github.com/tair/confusion-server/internal/leader/domain"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/logger"
)

// CreateLeaderCommand represents the command to create a leader
type CreateLeaderCommand struct {
	ActorID    string
	Attributes map[string]interface{}
}

// CreateLeaderHandler handles leader creation command
type CreateLeaderHandler struct {
	repo      domain.LeaderRepository
	publisher kafka.EventPublisher
}

// NewCreateLeaderHandler creates a new create leader handler
func NewCreateLeaderHandler(repo domain.LeaderRepository, publisher kafka.EventPublisher) *CreateLeaderHandler {
	return &CreateLeaderHandler{repo: repo, publisher: publisher}
}

// Handle stores the attributes as a new leader. Reserved keys in the input
// are ignored.
func (h *CreateLeaderHandler) Handle(ctx context.Context, cmd CreateLeaderCommand) (*domain.Leader, error) {
	leader := &domain.Leader{Attributes: domain.SanitizeAttributes(cmd.Attributes)}
	if err := h.repo.Create(ctx, leader); err != nil {
		return nil, err
	}

	logger.Info(ctx).Str("leader_id", leader.ID).Str("actor_id", cmd.ActorID).Msg("Leader created")
	publishLeader(ctx, h.publisher, kafka.LeaderChangedEvent{
		Action:   kafka.ActionCreated,
		LeaderID: leader.ID,
		ActorID:  cmd.ActorID,
	})
	return leader, nil
}

func publishLeader(ctx context.Context, publisher kafka.EventPublisher, event kafka.LeaderChangedEvent) {
	if err := publisher.PublishLeaderChanged(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Str("action", event.Action).Msg("Failed to publish leader event")
	}
}
