package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"cutme/internal/analytics"
)

// Redis aggregates events into per-code counters: a total visit count and
// a per-day breakdown, kept in Redis hashes.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a Redis-backed analytics store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) SaveLinkCreated(ctx context.Context, event *analytics.LinkCreatedEvent) error {
	pipe := r.client.Pipeline()
	pipe.HSet(ctx, "analytics:created", event.Code, event.CreatedAt.Format(time.RFC3339))

	if event.Custom {
		pipe.SAdd(ctx, "analytics:custom_codes", event.Code)
	}

	_, err := pipe.Exec(ctx)

	return err
}

func (r *Redis) SaveLinkVisited(ctx context.Context, event *analytics.LinkVisitedEvent) error {
	day := event.VisitedAt.Format("2006-01-02")

	pipe := r.client.Pipeline()
	pipe.HIncrBy(ctx, "analytics:visits", event.Code, 1)
	pipe.HIncrBy(ctx, "analytics:visits:"+day, event.Code, 1)
	_, err := pipe.Exec(ctx)

	return err
}

// VisitCount returns the aggregated visit count for a code.
func (r *Redis) VisitCount(ctx context.Context, code string) (int64, error) {
	count, err := r.client.HGet(ctx, "analytics:visits", code).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	return count, err
}

// Compile-time check.
var _ analytics.Store = (*Redis)(nil)
