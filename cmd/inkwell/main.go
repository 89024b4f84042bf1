// Package main is the entry point for the Inkwell API server.
// It loads configuration, connects to storage, sets up routing, and starts
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

	"github.com/joho/godotenv"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/handlers"
	"inkwell/internal/router"
	"inkwell/internal/store"
	"inkwell/internal/store/memory"
	"inkwell/internal/store/postgres"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

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
		"store", cfg.Store,
	)

	stores, cleanup, err := openStores(cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Token service shared by the login handlers and the auth middleware.
	tokens := auth.New(cfg.JWTSecret)

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(stores.Users, tokens)
	postHandlers := handlers.NewPosts(stores.Posts, stores.Categories)
	categoryHandlers := handlers.NewCategories(stores.Categories)

	// Set up the Chi router with all middleware and routes.
	r := router.New(tokens, authHandlers, postHandlers, categoryHandlers)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
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

// openStores builds the store backend named by the configuration. The
// returned cleanup closes whatever the backend holds open.
func openStores(cfg *config.Config) (*store.Stores, func(), error) {
	if cfg.Store == "memory" {
		slog.Warn("using in-memory store — data is lost on restart")
		return memory.New(), func() {}, nil
	}

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return nil, nil, err
	}

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, nil, err
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			db.Close()
			return nil, nil, err
		}
	}

	return postgres.New(db), func() { db.Close() }, nil
}
