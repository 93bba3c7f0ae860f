package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lamev/scribe-api/internal/api"
	apiMiddleware "github.com/lamev/scribe-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// The limiter ships disabled; Limit is a pass-through unless enabled
	// in configuration.
	rateLimiter := apiMiddleware.NewRateLimiter(
		app.config.Server.RateLimitEnabled,
		app.config.Server.RateLimitPerMinute,
	)
	r.Use(rateLimiter.Limit)

	authHandler := api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier)
	postHandler := api.NewPostHandler(app.postStore, app.postPipeline)
	categoryHandler := api.NewCategoryHandler(app.categoryStore)
	userHandler := api.NewUserHandler(app.userStore)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Authentication endpoints (protected)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/auth/refresh", authHandler.Refresh)
			r.Get("/auth/me", authHandler.Me)
		})

		// Post endpoints. Reads are public but carry the optional
		// principal so draft visibility can be decided per caller.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.OptionalAuth)
			r.Get("/posts", postHandler.List)
			r.Get("/posts/{idOrSlug}", postHandler.Get)
		})
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/posts", postHandler.Create)
			r.Put("/posts/{id}", postHandler.Update)
			r.Delete("/posts/{id}", postHandler.Delete)
			r.Post("/posts/{id}/like", postHandler.Like)
			r.Delete("/posts/{id}/like", postHandler.Unlike)
		})

		// Category endpoints
		r.Get("/categories", categoryHandler.List)
		r.Get("/categories/{idOrSlug}", categoryHandler.Get)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(authMiddleware.RequireModerator())
			r.Post("/categories", categoryHandler.Create)
			r.Put("/categories/{id}", categoryHandler.Update)
			r.Delete("/categories/{id}", categoryHandler.Delete)
		})

		// User management endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireAdmin())
				r.Get("/users", userHandler.List)
				r.Post("/users/{id}/deactivate", userHandler.Deactivate)
				r.Delete("/users/{id}", userHandler.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.RequireSelfOrAdmin("id"))
				r.Get("/users/{id}", userHandler.Get)
				r.Put("/users/{id}", userHandler.Update)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
