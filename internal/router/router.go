// Package router sets up all HTTP routes and middleware chains for the
// blog API. Token endpoints are rate limited; everything under /api
// requires a valid bearer token.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"blogapi/internal/handlers"
	"blogapi/internal/middleware"
	"blogapi/internal/store"
	"blogapi/internal/token"
)

// Deps bundles everything the route tree needs.
type Deps struct {
	Tokens         *token.Service
	Users          *store.UserStore
	Perms          *store.PermissionStore
	Auth           *handlers.Auth
	UserHandlers   *handlers.Users
	Categories     *handlers.Categories
	Blogs          *handlers.Blogs
	TokenRateLimit int
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticator(d.Tokens, d.Users, d.Perms))

		// Token issuance — rate limited, no auth required.
		r.Group(func(r chi.Router) {
			limiter := middleware.NewRateLimiter(d.TokenRateLimit, time.Minute)
			r.Use(limiter.Middleware)
			r.Post("/token", d.Auth.TokenObtain)
			r.Post("/token/refresh", d.Auth.TokenRefresh)
		})

		// Everything else requires an authenticated actor. Object-level
		// rules live in the handlers, not here.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", d.UserHandlers.List)
				r.Post("/", d.UserHandlers.Register)
				r.Get("/{id}", d.UserHandlers.Get)
				r.Patch("/{id}", d.UserHandlers.Update)
				r.Delete("/{id}", d.UserHandlers.Delete)
				r.Get("/{id}/permissions", d.UserHandlers.PermissionsGet)
				r.Patch("/{id}/permissions", d.UserHandlers.PermissionsUpdate)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", d.Categories.List)
				r.Post("/", d.Categories.Create)
				r.Get("/{id}", d.Categories.Get)
				r.Patch("/{id}", d.Categories.Update)
				r.Delete("/{id}", d.Categories.Delete)
			})

			r.Route("/blogs", func(r chi.Router) {
				r.Get("/", d.Blogs.List)
				r.Post("/", d.Blogs.Create)
				r.Get("/{id}", d.Blogs.Get)
				r.Patch("/{id}", d.Blogs.Update)
				r.Delete("/{id}", d.Blogs.Delete)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
