package ratelimit

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Scope classifies a request for rate limiting.
type Scope string

const (
	// ScopeRead covers GET, HEAD and OPTIONS requests.
	ScopeRead Scope = "read"
	// ScopeWrite covers everything else.
	ScopeWrite Scope = "write"
)

// MetadataKey stores per-endpoint rate limit configuration in huma
// operation metadata.
const MetadataKey = "rateLimit"

// EndpointConfig is attached to an operation's Metadata to override the
// default policy for that endpoint.
type EndpointConfig struct {
	// Limits replaces the policy limits for this endpoint when non-empty.
	Limits []LimitConfig
	// Disabled skips rate limiting for this endpoint entirely.
	Disabled bool
}

// ResolveScopes classifies a request by HTTP method.
func ResolveScopes(ctx huma.Context) []Scope {
	switch ctx.Method() {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return []Scope{ScopeRead}
	default:
		return []Scope{ScopeWrite}
	}
}

// EndpointConfigFrom extracts the endpoint override from operation
// metadata, if present.
func EndpointConfigFrom(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	cfg, ok := op.Metadata[MetadataKey].(EndpointConfig)
	if !ok {
		return nil
	}

	return &cfg
}
