// Package wire assembles the application's dependency graph.
package wire

import (
	"fmt"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/snippet-review/internal/app"
	"github.com/sevigo/snippet-review/internal/config"
	"github.com/sevigo/snippet-review/internal/db"
	"github.com/sevigo/snippet-review/internal/llm"
	"github.com/sevigo/snippet-review/internal/logger"
	"github.com/sevigo/snippet-review/internal/review"
	"github.com/sevigo/snippet-review/internal/server"
	"github.com/sevigo/snippet-review/internal/storage"
)

// AppSet is the provider set behind InitializeApp.
var AppSet = wire.NewSet(
	app.NewApp,
	server.NewServer,
	config.LoadConfig,
	review.NewService,
	llm.NewPromptManager,
	llm.NewGenerator,
	llm.NewReviewer,
	provideLogger,
	provideDBConfig,
	provideDatabase,
	provideStore,
)

func provideLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	output, closeOutput, err := logger.OpenOutput(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	log := logger.NewLogger(cfg.Logging, output)
	slog.SetDefault(log)
	return log, closeOutput, nil
}

func provideDBConfig(cfg *config.Config) *config.DBConfig {
	return &cfg.Database
}

// provideDatabase connects and brings the schema up to date before anything
// can accept a request.
func provideDatabase(dbCfg *config.DBConfig, log *slog.Logger) (*db.DB, func(), error) {
	dbConn, cleanup, err := db.NewDatabase(dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := dbConn.RunMigrations(); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database ready", "dialect", dbConn.Dialect)
	return dbConn, cleanup, nil
}

func provideStore(dbConn *db.DB) storage.Store {
	return storage.NewStore(dbConn.DB)
}
