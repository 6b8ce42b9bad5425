package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CookieName is the session cookie the gate checks.
const CookieName = "cutme_session"

// DefaultSessionTTL is how long an issued session stays valid.
const DefaultSessionTTL = 12 * time.Hour

// SessionStore issues and validates opaque session tokens.
type SessionStore interface {
	Issue(ctx context.Context, username string) (token string, err error)
	Validate(ctx context.Context, token string) (bool, error)
}

// RedisSessions keeps session tokens in Redis with a TTL, so sessions
// survive restarts and are shared between instances.
type RedisSessions struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessions creates a Redis-backed session store.
func NewRedisSessions(client *redis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{
		client: client,
		ttl:    ttl,
	}
}

func (s *RedisSessions) Issue(ctx context.Context, username string) (string, error) {
	token := uuid.NewString()

	if err := s.client.Set(ctx, "session:"+token, username, s.ttl).Err(); err != nil {
		return "", err
	}

	return token, nil
}

func (s *RedisSessions) Validate(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, "session:"+token).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// MemorySessions keeps sessions in process memory. Used in tests and when
// no Redis is configured.
type MemorySessions struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]time.Time // token -> expiry
}

// NewMemorySessions creates an in-memory session store.
func NewMemorySessions(ttl time.Duration) *MemorySessions {
	return &MemorySessions{
		ttl:      ttl,
		sessions: make(map[string]time.Time),
	}
}

func (s *MemorySessions) Issue(_ context.Context, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	s.sessions[token] = time.Now().Add(s.ttl)

	return token, nil
}

func (s *MemorySessions) Validate(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.sessions[token]
	if !ok {
		return false, nil
	}

	if time.Now().After(expiry) {
		delete(s.sessions, token)

		return false, nil
	}

	return true, nil
}
