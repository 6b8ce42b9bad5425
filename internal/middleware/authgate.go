package middleware

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"cutme/internal/auth"
)

// ProtectedKey marks an operation as requiring a valid session when set to
// true in its metadata.
const ProtectedKey = "protected"

// AuthGate rejects requests to protected operations without a valid
// session cookie. When sessions is nil the gate is disabled and protected
// operations are open, matching deployments without configured
// credentials.
func AuthGate(
	api huma.API,
	sessions auth.SessionStore,
	logger *zap.Logger,
) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if sessions == nil || !isProtected(ctx) {
			next(ctx)

			return
		}

		cookie, err := huma.ReadCookie(ctx, auth.CookieName)
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "login required")

			return
		}

		valid, err := sessions.Validate(ctx.Context(), cookie.Value)
		if err != nil {
			logger.Error("session validation failed", zap.Error(err))
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if !valid {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "session expired")

			return
		}

		next(ctx)
	}
}

func isProtected(ctx huma.Context) bool {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return false
	}

	protected, ok := op.Metadata[ProtectedKey].(bool)

	return ok && protected
}
