package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitRedis is a Redis-backed sliding-window counter store, shared
// across instances of the service.
type RateLimitRedis struct {
	client *redis.Client
	prefix string
}

// NewRateLimitRedis creates a Redis-backed rate limit store.
func NewRateLimitRedis(client *redis.Client) *RateLimitRedis {
	return &RateLimitRedis{
		client: client,
		prefix: "ratelimit:",
	}
}

// Record implements the sliding window with a sorted set of timestamps:
// prune everything older than the window, add the current request, count.
func (s *RateLimitRedis) Record(ctx context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()
	cutoff := now.Add(-window)
	redisKey := s.prefix + key

	pipe := s.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", fmt.Sprintf("%d", cutoff.UnixNano()))
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})
	count := pipe.ZCard(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	return count.Val(), nil
}
