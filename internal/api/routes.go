// Package api serves the journal and its progress metrics over a local JSON API.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"
)

// NewRouter mounts the API. A non-empty token guards /api/v1 with bearer auth.
func NewRouter(logger hclog.Logger, token string, entries EntryPort, progress ProgressPort) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(logger))

	h := NewHandlers(entries, progress)

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		if token != "" {
			r.Use(AuthMiddleware(token))
		}
		r.Use(JSONContentType)

		r.Get("/entries", h.ListEntries)
		r.Get("/entries/{date}", h.GetEntry)
		r.Put("/entries/{date}", h.PutEntry)
		r.Get("/stats", h.Stats)
		r.Get("/distribution", h.Distribution)
		r.Get("/summary", h.Summary)
		r.Get("/tags", h.Tags)
	})

	return r
}
