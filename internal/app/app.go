// Package app ties the configured HTTP server to the process lifecycle.
package app

import (
	"log/slog"

	"github.com/sevigo/snippet-review/internal/config"
	"github.com/sevigo/snippet-review/internal/server"
)

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// NewApp sets up the application with all its dependencies.
func NewApp(cfg *config.Config, srv *server.Server, logger *slog.Logger) *App {
	logger.Info("snippet review service initialized",
		"llm_provider", cfg.AI.LLMProvider,
		"generator_model", cfg.AI.GeneratorModel,
		"generation_timeout", cfg.AI.GenerationTimeout)

	return &App{
		cfg:    cfg,
		server: srv,
		logger: logger,
	}
}

// Start runs the HTTP server.
func (a *App) Start() error {
	a.logger.Info("starting snippet review service", "server_port", a.cfg.Server.Port)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the HTTP server. In-flight reviews are allowed to finish;
// the database is closed afterwards by the cleanup returned from InitializeApp.
func (a *App) Stop() error {
	a.logger.Info("shutting down snippet review service")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}

	a.logger.Info("snippet review service stopped")
	return nil
}
