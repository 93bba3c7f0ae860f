package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lamev/scribe-api/internal/config"
	"github.com/lamev/scribe-api/internal/platform/postgres"
	"github.com/lamev/scribe-api/internal/service/auth"
	"github.com/lamev/scribe-api/internal/service/content"
	"github.com/lamev/scribe-api/internal/store"
)

// application holds the dependency graph for the server: configuration,
// the shared logger, the database handle, and every store and service the
// handlers need.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	postStore     store.PostStore
	categoryStore store.CategoryStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	postPipeline     *content.PostPipeline
}

// newApplication wires up the full dependency graph from the loaded
// configuration. The caller owns the returned application and must call
// cleanup when done.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		// The database is already open; close it before bailing out.
		_ = db.Close()
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	postStore := postgres.NewPostgresPostStore(db, logger)
	categoryStore := postgres.NewPostgresCategoryStore(db, logger)

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		userStore:        userStore,
		postStore:        postStore,
		categoryStore:    categoryStore,
		jwtService:       jwtService,
		passwordVerifier: auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		postPipeline:     content.NewPostPipeline(postStore, logger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
