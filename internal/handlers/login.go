package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"cutme/internal/auth"
)

// AuthHandler issues session cookies for the optional admin gate.
type AuthHandler struct {
	authenticator auth.Authenticator
	sessions      auth.SessionStore
	logger        *zap.Logger
}

// NewAuthHandler creates the login handler.
func NewAuthHandler(authenticator auth.Authenticator, sessions auth.SessionStore, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authenticator: authenticator,
		sessions:      sessions,
		logger:        logger,
	}
}

// Login validates the credential pair and sets the session cookie.
func (h *AuthHandler) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if !h.authenticator.Authenticate(ctx, req.Body.Username, req.Body.Password) {
		return nil, huma.Error401Unauthorized("invalid credentials")
	}

	token, err := h.sessions.Issue(ctx, req.Body.Username)
	if err != nil {
		h.logger.Error("failed to issue session", zap.Error(err))

		return nil, huma.Error500InternalServerError("could not create session")
	}

	resp := &LoginResponse{
		SetCookie: http.Cookie{
			Name:     auth.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(auth.DefaultSessionTTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		},
	}
	resp.Body.Status = "ok"

	return resp, nil
}
