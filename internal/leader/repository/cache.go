package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/confusion-server/internal/leader/domain"
	"github.com/tair/confusion-server/pkg/logger"
)

const (
	leadersCacheKey   = "leaders:all"
	invalidateTimeout = 2 * time.Second
)

// CachedLeaderRepository serves FindAll from Redis and drops the cached list
// on every mutation. Redis failures fall through to the wrapped repository.
type CachedLeaderRepository struct {
	next  domain.LeaderRepository
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedLeaderRepository wraps next with a Redis list cache
func NewCachedLeaderRepository(next domain.LeaderRepository, redisClient *redis.Client, ttl time.Duration) *CachedLeaderRepository {
	return &CachedLeaderRepository{next: next, redis: redisClient, ttl: ttl}
}

func (r *CachedLeaderRepository) FindAll(ctx context.Context) ([]domain.Leader, error) {
	cached, err := r.redis.Get(ctx, leadersCacheKey).Bytes()
	switch {
	case err == nil:
		var leaders []domain.Leader
		if err := json.Unmarshal(cached, &leaders); err == nil {
			logger.Debug(ctx).Str("cache_key", leadersCacheKey).Msg("Cache hit")
			return leaders, nil
		}
		logger.Warn(ctx).Str("cache_key", leadersCacheKey).Msg("Discarding undecodable cache entry")
	case errors.Is(err, redis.Nil):
		logger.Debug(ctx).Str("cache_key", leadersCacheKey).Msg("Cache miss")
	default:
		logger.Warn(ctx).Err(err).Msg("Leader cache unavailable")
	}

	leaders, err := r.next.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(leaders); err == nil {
		if err := r.redis.Set(ctx, leadersCacheKey, data, r.ttl).Err(); err != nil {
			logger.Warn(ctx).Err(err).Msg("Failed to cache leaders")
		}
	}
	return leaders, nil
}

func (r *CachedLeaderRepository) FindByID(ctx context.Context, id string) (*domain.Leader, error) {
	return r.next.FindByID(ctx, id)
}

func (r *CachedLeaderRepository) Create(ctx context.Context, leader *domain.Leader) error {
	defer r.invalidate(ctx)
	return r.next.Create(ctx, leader)
}

func (r *CachedLeaderRepository) UpdateAttributes(ctx context.Context, id string, attrs domain.Attributes) (*domain.Leader, error) {
	defer r.invalidate(ctx)
	return r.next.UpdateAttributes(ctx, id, attrs)
}

func (r *CachedLeaderRepository) Delete(ctx context.Context, id string) (*domain.Leader, error) {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, id)
}

func (r *CachedLeaderRepository) DeleteAll(ctx context.Context) (int64, error) {
	defer r.invalidate(ctx)
	return r.next.DeleteAll(ctx)
}

// invalidate runs after the write has committed, so it must not inherit the
// request's cancellation.
func (r *CachedLeaderRepository) invalidate(ctx context.Context) {
	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateTimeout)
	defer cancel()
	if err := r.redis.Del(delCtx, leadersCacheKey).Err(); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to invalidate leader cache")
	}
}
