package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"cutme/internal/ratelimit"
)

// RateLimit applies the policy limiter to every operation, honoring
// per-endpoint overrides attached via operation metadata.
func RateLimit(
	api huma.API,
	limiter *ratelimit.PolicyLimiter,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		key := clientKey(ctx)

		if cfg := ratelimit.EndpointConfigFrom(ctx); cfg != nil {
			if cfg.Disabled {
				next(ctx)

				return
			}

			if len(cfg.Limits) > 0 {
				allowed, exceeded, err := limiter.Check(ctx.Context(), key+":"+operationPath(ctx), cfg.Limits)
				if !respond(api, ctx, allowed, exceeded, err, logger) {
					return
				}

				next(ctx)

				return
			}
		}

		allowed, exceeded, err := limiter.Allow(ctx.Context(), key, ratelimit.ResolveScopes(ctx))
		if !respond(api, ctx, allowed, exceeded, err, logger) {
			return
		}

		next(ctx)
	}
}

// respond writes the error response for denied or failed checks and
// reports whether the request may proceed.
func respond(api huma.API, ctx huma.Context, allowed bool, exceeded *ratelimit.Exceeded, err error, logger *zap.Logger) bool {
	if err != nil {
		logger.Error("rate limit check failed", zap.String("path", operationPath(ctx)), zap.Error(err))
		_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

		return false
	}

	if allowed {
		return true
	}

	msg := "rate limit exceeded"
	if exceeded != nil {
		msg = fmt.Sprintf("rate limit exceeded: %d/%d requests in %s",
			exceeded.Count, exceeded.Config.Max, exceeded.Config.Window)
		logger.Warn("rate limit exceeded",
			zap.String("path", operationPath(ctx)),
			zap.String("method", ctx.Method()),
			zap.Int64("count", exceeded.Count),
			zap.Int64("max", exceeded.Config.Max),
			zap.Duration("window", exceeded.Config.Window),
		)
	}

	_ = huma.WriteErr(api, ctx, http.StatusTooManyRequests, msg)

	return false
}

// clientKey hashes IP and User-Agent into an anonymous rate limit key.
func clientKey(ctx huma.Context) string {
	sum := sha256.Sum256([]byte(clientIP(ctx) + "|" + ctx.Header("User-Agent")))

	return hex.EncodeToString(sum[:])
}

func operationPath(ctx huma.Context) string {
	if op := ctx.Operation(); op != nil {
		return op.Path
	}

	return ""
}
