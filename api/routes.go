// Package api wires the subseq HTTP handlers into a router.
package api

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aria-lang/subseq-go/api/handlers"
	"github.com/aria-lang/subseq-go/api/middleware"
	"github.com/aria-lang/subseq-go/internal/config"
)

// NewRouter returns the API router. cfg supplies the defaults of every
// request, logger receives request and search messages.
func NewRouter(cfg config.Config, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Get("/health", handlers.HealthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/search/{method}", handlers.SearchHandler(cfg, logger))
		r.Post("/store/stats", handlers.StoreStatsHandler(cfg))

		r.Route("/matrices", func(r chi.Router) {
			r.Get("/", handlers.ListMatricesHandler)
			r.Get("/{name}", handlers.MatrixHandler)
		})
	})

	return r
}
