package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cutme/internal/middleware"
)

type testOutput struct {
	Body string `json:"body"`
}

func setupMetaAPI(t *testing.T) (*chi.Mux, huma.API, chan middleware.Meta) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(api))

	metaChan := make(chan middleware.Meta, 1)

	huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		metaChan <- middleware.MetaFromContext(ctx)

		return &testOutput{Body: "ok"}, nil
	})

	return router, api, metaChan
}

func TestRequestMeta(t *testing.T) {
	t.Run("captures user-agent and referrer", func(t *testing.T) {
		router, _, metaChan := setupMetaAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("User-Agent", "TestAgent/1.0")
		req.Header.Set("Referer", "https://example.com")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		meta := <-metaChan
		assert.Equal(t, "TestAgent/1.0", meta.UserAgent)
		assert.Equal(t, "https://example.com", meta.Referrer)
	})

	t.Run("prefers the first X-Forwarded-For entry", func(t *testing.T) {
		router, _, metaChan := setupMetaAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Forwarded-For", "192.168.1.1, 10.0.0.1, 172.16.0.1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		meta := <-metaChan
		assert.Equal(t, "192.168.1.1", meta.ClientIP)
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		router, _, metaChan := setupMetaAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Real-IP", "10.0.0.1")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		meta := <-metaChan
		assert.Equal(t, "10.0.0.1", meta.ClientIP)
	})

	t.Run("falls back to the remote address", func(t *testing.T) {
		router, _, metaChan := setupMetaAPI(t)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		meta := <-metaChan
		assert.NotEmpty(t, meta.ClientIP)
	})

	t.Run("zero meta outside a request", func(t *testing.T) {
		meta := middleware.MetaFromContext(context.Background())

		assert.Empty(t, meta.ClientIP)
		assert.Empty(t, meta.UserAgent)
	})
}
