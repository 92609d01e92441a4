package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sevigo/snippet-review/internal/config"
	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware and API routes.
func NewRouter(cfg *config.Config, service core.ReviewService, db handler.Pinger, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Configure middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodOptions, http.MethodHead,
		},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))
	if cfg.Server.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	}

	r.Get("/", handler.Home)
	r.Get("/health", handler.Health(db, logger))

	reviewHandler := handler.NewReviewHandler(service, cfg.Server.MaxRequestBytes, logger)
	r.Post("/review", reviewHandler.Submit)
	r.Get("/snippets/{id}", reviewHandler.Snippet)

	return r
}
