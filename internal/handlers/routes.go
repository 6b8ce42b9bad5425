package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"cutme/internal/middleware"
	"cutme/internal/ratelimit"
)

// RegisterRoutes registers the public URL shortener operations.
// authHandler may be nil; the login route is only exposed when credentials
// are configured.
func RegisterRoutes(api huma.API, links *LinkHandler, authHandler *AuthHandler) {
	// Shortening is the expensive write path and gets the strictest limits.
	shortenLimits := []ratelimit.LimitConfig{
		{Window: time.Minute, Max: 10},
		{Window: time.Hour, Max: 100},
		{Window: 24 * time.Hour, Max: 500},
	}

	huma.Register(api, huma.Operation{
		OperationID:   "shorten-url",
		Method:        http.MethodPost,
		Path:          "/",
		Summary:       "Shorten URL",
		Description:   "Creates a short URL with a generated code, or returns the existing short URL when this URL was shortened before.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Limits: shortenLimits},
		},
	}, links.Shorten)

	huma.Register(api, huma.Operation{
		OperationID:   "shorten-url-custom",
		Method:        http.MethodPost,
		Path:          "/custom",
		Summary:       "Shorten URL with custom code",
		Description:   "Creates a short URL with a caller-chosen code. Fails when the code is already taken.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Limits: shortenLimits},
		},
	}, links.ShortenCustom)

	huma.Register(api, huma.Operation{
		OperationID:   "redirect",
		Method:        http.MethodGet,
		Path:          "/{urlcut}",
		Summary:       "Redirect to original URL",
		Description:   "Resolves a short code, increments its view counter, and redirects to the original URL.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusFound,
		Metadata: map[string]any{
			// Redirects are the hot path; only guard against abuse.
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{{Window: time.Minute, Max: 1000}},
			},
		},
	}, links.Redirect)

	huma.Register(api, huma.Operation{
		OperationID: "list-links",
		Method:      http.MethodGet,
		Path:        "/listar",
		Summary:     "List all links",
		Description: "Returns every stored record. Unpaginated; kept for compatibility.",
		Tags:        []string{"Listing"},
		Metadata: map[string]any{
			middleware.ProtectedKey: true,
		},
	}, links.List)

	huma.Register(api, huma.Operation{
		OperationID: "list-links-page",
		Method:      http.MethodGet,
		Path:        "/lista",
		Summary:     "List links paginated",
		Description: "Returns one page of records, newest first, with pagination metadata.",
		Tags:        []string{"Listing"},
		Metadata: map[string]any{
			middleware.ProtectedKey: true,
		},
	}, links.Page)

	huma.Register(api, huma.Operation{
		OperationID: "get-link",
		Method:      http.MethodGet,
		Path:        "/id/{id}",
		Summary:     "Get link by id",
		Tags:        []string{"Admin"},
		Metadata: map[string]any{
			middleware.ProtectedKey: true,
		},
	}, links.GetByID)

	huma.Register(api, huma.Operation{
		OperationID: "update-link",
		Method:      http.MethodPut,
		Path:        "/{id}",
		Summary:     "Update link",
		Description: "Administrative passthrough overwriting a stored record.",
		Tags:        []string{"Admin"},
		Metadata: map[string]any{
			middleware.ProtectedKey: true,
		},
	}, links.Update)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-link",
		Method:        http.MethodDelete,
		Path:          "/{id}",
		Summary:       "Delete link",
		Description:   "Administrative passthrough removing a stored record.",
		Tags:          []string{"Admin"},
		DefaultStatus: http.StatusNoContent,
		Metadata: map[string]any{
			middleware.ProtectedKey: true,
		},
	}, links.Delete)

	if authHandler != nil {
		huma.Register(api, huma.Operation{
			OperationID: "login",
			Method:      http.MethodPost,
			Path:        "/login",
			Summary:     "Log in",
			Description: "Validates the configured credential pair and issues a session cookie.",
			Tags:        []string{"Auth"},
		}, authHandler.Login)
	}
}
