package middleware

import (
	"context"
	"net"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// Meta carries per-request HTTP metadata into handlers for analytics
// events.
type Meta struct {
	ClientIP  string
	UserAgent string
	Referrer  string
}

type metaKey struct{}

// ContextWithMeta stores meta in ctx.
func ContextWithMeta(ctx context.Context, meta Meta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

// MetaFromContext returns the request metadata, or a zero Meta outside an
// HTTP request.
func MetaFromContext(ctx context.Context) Meta {
	if meta, ok := ctx.Value(metaKey{}).(Meta); ok {
		return meta
	}

	return Meta{}
}

// RequestMeta captures client IP, user agent and referrer for downstream
// handlers.
func RequestMeta(_ huma.API) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		meta := Meta{
			ClientIP:  clientIP(ctx),
			UserAgent: ctx.Header("User-Agent"),
			Referrer:  ctx.Header("Referer"),
		}

		next(huma.WithContext(ctx, ContextWithMeta(ctx.Context(), meta)))
	}
}

// clientIP extracts the client address, honoring proxy headers.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	host := ctx.RemoteAddr()
	if ip, _, err := net.SplitHostPort(host); err == nil {
		return ip
	}

	return host
}
