package command

import (
	"context"

	"github.com/tair/confusion-server/internal/leader/domain"
	"github.com/tair/confusion-server/kafka"
	"github.com/tair/confusion-server/pkg/logger"
)

// DeleteLeaderHandler removes leaders, one or all
type DeleteLeaderHandler struct {
	repo      domain.LeaderRepository
	publisher kafka.EventPublisher
}

// NewDeleteLeaderHandler creates a new delete leader handler
func NewDeleteLeaderHandler(repo domain.LeaderRepository, publisher kafka.EventPublisher) *DeleteLeaderHandler {
	return &DeleteLeaderHandler{repo: repo, publisher: publisher}
}

// Handle removes one leader and returns it, or nil when the id does not exist
func (h *DeleteLeaderHandler) Handle(ctx context.Context, actorID, id string) (*domain.Leader, error) {
	removed, err := h.repo.Delete(ctx, id)
	if err != nil || removed == nil {
		return nil, err
	}

	logger.Info(ctx).Str("leader_id", id).Str("actor_id", actorID).Msg("Leader deleted")
	publishLeader(ctx, h.publisher, kafka.LeaderChangedEvent{
		Action:   kafka.ActionDeleted,
		LeaderID: id,
		ActorID:  actorID,
		Count:    1,
	})
	return removed, nil
}

// HandleAll removes every leader and returns how many were removed
func (h *DeleteLeaderHandler) HandleAll(ctx context.Context, actorID string) (int64, error) {
	n, err := h.repo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}

	logger.Info(ctx).Int64("count", n).Str("actor_id", actorID).Msg("All leaders deleted")
	publishLeader(ctx, h.publisher, kafka.LeaderChangedEvent{
		Action:  kafka.ActionDeleted,
		ActorID: actorID,
		Count:   n,
	})
	return n, nil
}
