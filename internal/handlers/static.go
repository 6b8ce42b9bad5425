package handlers

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed web/index.html
var indexHTML []byte

// RegisterStatic serves the landing page on GET /. Registered directly on
// the chi mux so it stays out of the OpenAPI document.
func RegisterStatic(mux *chi.Mux) {
	mux.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(indexHTML)
	})
}
