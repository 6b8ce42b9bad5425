package ratelimit

import (
	"context"
	"time"
)

// Store records request timestamps per key for sliding-window counting.
type Store interface {
	// Record registers a request under key and returns how many requests
	// fell inside the current window, pruning expired entries.
	Record(ctx context.Context, key string, window time.Duration) (count int64, err error)
}
