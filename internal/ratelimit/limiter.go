package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// LimitConfig is a single window/ceiling pair.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps scopes to the limits enforced for them.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy returns the limits used when no per-endpoint override is
// configured. Redirects are read-heavy and get generous ceilings.
func DefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeRead: {
				{Window: time.Minute, Max: 600},
			},
			ScopeWrite: {
				{Window: time.Minute, Max: 30},
				{Window: time.Hour, Max: 300},
			},
		},
	}
}

// Exceeded describes which limit a rejected request hit.
type Exceeded struct {
	Scope  Scope
	Config LimitConfig
	Count  int64
}

// PolicyLimiter enforces a Policy over a Store using sliding windows.
type PolicyLimiter struct {
	store  Store
	policy *Policy
}

// NewPolicyLimiter creates a limiter enforcing policy against store.
func NewPolicyLimiter(store Store, policy *Policy) *PolicyLimiter {
	return &PolicyLimiter{
		store:  store,
		policy: policy,
	}
}

// Allow records the request and reports whether any limit for the given
// scopes was exceeded. The Exceeded result is nil when allowed.
func (l *PolicyLimiter) Allow(ctx context.Context, clientKey string, scopes []Scope) (bool, *Exceeded, error) {
	for _, scope := range scopes {
		for _, limit := range l.policy.Limits[scope] {
			key := l.buildKey(clientKey, scope, limit)

			count, err := l.store.Record(ctx, key, limit.Window)
			if err != nil {
				return false, nil, err
			}

			if count > limit.Max {
				return false, &Exceeded{Scope: scope, Config: limit, Count: count}, nil
			}
		}
	}

	return true, nil, nil
}

// Check applies an explicit list of limits under a single key, bypassing
// the policy. Used for per-endpoint overrides.
func (l *PolicyLimiter) Check(ctx context.Context, key string, limits []LimitConfig) (bool, *Exceeded, error) {
	for _, limit := range limits {
		windowKey := fmt.Sprintf("%s:%d", key, limit.Window.Milliseconds())

		count, err := l.store.Record(ctx, windowKey, limit.Window)
		if err != nil {
			return false, nil, err
		}

		if count > limit.Max {
			return false, &Exceeded{Config: limit, Count: count}, nil
		}
	}

	return true, nil, nil
}

func (l *PolicyLimiter) buildKey(clientKey string, scope Scope, limit LimitConfig) string {
	return fmt.Sprintf("%s:%s:%d", clientKey, scope, limit.Window.Milliseconds())
}
