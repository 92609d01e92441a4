// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/snippet-review/internal/app"
	"github.com/sevigo/snippet-review/internal/config"
	"github.com/sevigo/snippet-review/internal/llm"
	"github.com/sevigo/snippet-review/internal/review"
	"github.com/sevigo/snippet-review/internal/server"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	slogLogger, loggerCleanup, err := provideLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	// Database
	dbConfig := provideDBConfig(cfg)
	dbConn, dbCleanup, err := provideDatabase(dbConfig, slogLogger)
	if err != nil {
		loggerCleanup()
		return nil, nil, err
	}

	// Storage
	store := provideStore(dbConn)

	// Prompt Manager
	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		dbCleanup()
		loggerCleanup()
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	// Generator
	generator, err := llm.NewGenerator(ctx, cfg, slogLogger)
	if err != nil {
		dbCleanup()
		loggerCleanup()
		return nil, nil, fmt.Errorf("failed to create generator: %w", err)
	}

	// Reviewer
	reviewer, err := llm.NewReviewer(cfg, promptMgr, generator, slogLogger)
	if err != nil {
		dbCleanup()
		loggerCleanup()
		return nil, nil, fmt.Errorf("failed to create reviewer: %w", err)
	}

	// Review Service
	reviewService := review.NewService(store, reviewer, slogLogger)

	// Server
	srv := server.NewServer(cfg, reviewService, store, slogLogger)

	// App
	application := app.NewApp(cfg, srv, slogLogger)

	cleanup := func() {
		dbCleanup()
		loggerCleanup()
	}

	return application, cleanup, nil
}
