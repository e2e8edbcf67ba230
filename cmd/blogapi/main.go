// Package main is the entry point for the blog API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/handlers"
	"blogapi/internal/router"
	"blogapi/internal/store"
	"blogapi/internal/token"
	"blogapi/internal/tokenstore"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed baseline permissions and, on an empty database, a staff user.
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}

	// Connect to Redis (refresh-token validity store).
	redisClient, err := tokenstore.Connect(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	refreshStore := tokenstore.NewStore(redisClient)

	// Initialize data stores.
	userStore := store.NewUserStore(db)
	permStore := store.NewPermissionStore(db)
	categoryStore := store.NewCategoryStore(db)
	blogStore := store.NewBlogStore(db)

	// Initialize the token service.
	tokens := token.NewService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL, nil)

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(userStore, tokens, refreshStore)
	userHandlers := handlers.NewUsers(userStore, permStore, refreshStore)
	categoryHandlers := handlers.NewCategories(categoryStore)
	blogHandlers := handlers.NewBlogs(blogStore, categoryStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Tokens:         tokens,
		Users:          userStore,
		Perms:          permStore,
		Auth:           authHandlers,
		UserHandlers:   userHandlers,
		Categories:     categoryHandlers,
		Blogs:          blogHandlers,
		TokenRateLimit: cfg.TokenRateLimit,
	})

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
