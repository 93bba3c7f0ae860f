// Package main implements the entry point for the scribe-api server, a
// content publishing API with JWT authentication and role-based access
// control.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/lamev/scribe-api/internal/config"
	"github.com/lamev/scribe-api/internal/platform/logger"
)

// main initializes configuration, logging, the database connection, and the
// dependency graph, then starts the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// run holds the fallible startup sequence so main can stay a one-liner.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.runMigrations(); err != nil {
		app.cleanup()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
