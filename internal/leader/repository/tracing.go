package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/confusion-server/internal/leader/domain"
)

var tracer = otel.Tracer("leader-repository")

// TracingLeaderRepository wraps a LeaderRepository with spans
type TracingLeaderRepository struct {
	next domain.LeaderRepository
}

// NewTracingLeaderRepository creates a new repository with tracing
func NewTracingLeaderRepository(next domain.LeaderRepository) *TracingLeaderRepository {
	return &TracingLeaderRepository{next: next}
}

func (r *TracingLeaderRepository) FindAll(ctx context.Context) ([]domain.Leader, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll")
	defer span.End()

	leaders, err := r.next.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(leaders)))
	return leaders, nil
}

func (r *TracingLeaderRepository) FindByID(ctx context.Context, id string) (*domain.Leader, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.String("leader.id", id)),
	)
	defer span.End()

	leader, err := r.next.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("leader.found", leader != nil))
	return leader, nil
}

func (r *TracingLeaderRepository) Create(ctx context.Context, leader *domain.Leader) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(attribute.Int("leader.attributes", len(leader.Attributes))),
	)
	defer span.End()

	if err := r.next.Create(ctx, leader); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.String("leader.id", leader.ID))
	return nil
}

func (r *TracingLeaderRepository) UpdateAttributes(ctx context.Context, id string, attrs domain.Attributes) (*domain.Leader, error) {
	ctx, span := tracer.Start(ctx, "repository.UpdateAttributes",
		trace.WithAttributes(
			attribute.String("leader.id", id),
			attribute.Int("leader.attributes", len(attrs)),
		),
	)
	defer span.End()

	leader, err := r.next.UpdateAttributes(ctx, id, attrs)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("leader.found", leader != nil))
	return leader, nil
}

func (r *TracingLeaderRepository) Delete(ctx context.Context, id string) (*domain.Leader, error) {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.String("leader.id", id)),
	)
	defer span.End()

	leader, err := r.next.Delete(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("leader.found", leader != nil))
	return leader, nil
}

func (r *TracingLeaderRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.DeleteAll")
	defer span.End()

	n, err := r.next.DeleteAll(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", n))
	return n, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
