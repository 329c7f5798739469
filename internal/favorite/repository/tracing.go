package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/confusion-server/internal/favorite/domain"
)

var tracer = otel.Tracer("favorite-repository")

// TracingFavoritesRepository wraps a FavoritesRepository with spans
type TracingFavoritesRepository struct {
	next domain.FavoritesRepository
}

// NewTracingFavoritesRepository creates a new repository with tracing
func NewTracingFavoritesRepository(next domain.FavoritesRepository) *TracingFavoritesRepository {
	return &TracingFavoritesRepository{next: next}
}

// FindByUser with tracing
func (r *TracingFavoritesRepository) FindByUser(ctx context.Context, userID string) (*domain.Favorites, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByUser",
		trace.WithAttributes(attribute.String("favorites.user", userID)),
	)
	defer span.End()

	fav, err := r.next.FindByUser(ctx, userID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("favorites.found", fav != nil))
	if fav != nil {
		span.SetAttributes(attribute.Int("favorites.dishes", len(fav.Dishes)))
	}
	return fav, nil
}

// Create with tracing
func (r *TracingFavoritesRepository) Create(ctx context.Context, fav *domain.Favorites) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("favorites.user", fav.UserID),
			attribute.Int("favorites.dishes", len(fav.Dishes)),
		),
	)
	defer span.End()

	if err := r.next.Create(ctx, fav); err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.String("favorites.id", fav.ID))
	return nil
}

// Save with tracing
func (r *TracingFavoritesRepository) Save(ctx context.Context, fav *domain.Favorites) error {
	ctx, span := tracer.Start(ctx, "repository.Save",
		trace.WithAttributes(
			attribute.String("favorites.id", fav.ID),
			attribute.Int("favorites.dishes", len(fav.Dishes)),
		),
	)
	defer span.End()

	if err := r.next.Save(ctx, fav); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

// RemoveByUser with tracing
func (r *TracingFavoritesRepository) RemoveByUser(ctx context.Context, userID string) (*domain.Favorites, error) {
	ctx, span := tracer.Start(ctx, "repository.RemoveByUser",
		trace.WithAttributes(attribute.String("favorites.user", userID)),
	)
	defer span.End()

	fav, err := r.next.RemoveByUser(ctx, userID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Bool("favorites.removed", fav != nil))
	return fav, nil
}

// Count with tracing
func (r *TracingFavoritesRepository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.Count")
	defer span.End()

	count, err := r.next.Count(ctx)
	if err != nil {
		recordError(span, err)
		return 0, err
	}

	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
