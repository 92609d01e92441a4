// Package server implements the HTTP server for the application.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sevigo/snippet-review/internal/config"
	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/storage"
)

// Server wraps an HTTP server with graceful shutdown capabilities.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server for the review API.
func NewServer(cfg *config.Config, service core.ReviewService, store storage.Store, logger *slog.Logger) *Server {
	router := NewRouter(cfg, service, store, logger)

	return &Server{
		server: &http.Server{
			Addr:              ":" + cfg.Server.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      writeTimeout(cfg),
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// writeTimeout leaves room to write the response after the slowest review.
// Without a request timeout the bound is the generation timeout.
func writeTimeout(cfg *config.Config) time.Duration {
	limit := cfg.Server.RequestTimeout
	if limit <= 0 {
		limit = cfg.AI.GenerationTimeout
	}
	if limit <= 0 {
		return 0
	}
	return limit + 10*time.Second
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until shutdown or error.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "address", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server with a 30-second timeout.
func (s *Server) Stop() error {
	s.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}
