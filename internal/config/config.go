// Package config handles application configuration loading from
// environment variables. It provides a centralized Config struct used
// across the application.
package config

import (
	"fmt"
	"log/slog"
	"os"
)

// DevJWTSecret is the development-only signing secret. Production
// refuses to start without an explicit JWT_SECRET so tokens are never
// signed with a publicly known value.
const DevJWTSecret = "inkwell-dev-secret"

// Config holds all application configuration values loaded from the
// environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Store backend: "postgres" or "memory". The in-memory store keeps
	// everything in process and loses it on restart.
	Store string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Token signing secret
	JWTSecret string
}

// Load reads configuration from environment variables, applying
// defaults for development where appropriate. Returns an error if
// critical values are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		Store: envOrDefault("APP_STORE", "postgres"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "inkwell"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "inkwell"),

		JWTSecret: os.Getenv("JWT_SECRET"),
	}

	if cfg.Store != "postgres" && cfg.Store != "memory" {
		return nil, fmt.Errorf("APP_STORE must be \"postgres\" or \"memory\", got %q", cfg.Store)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" && cfg.Store == "postgres" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DevJWTSecret
		slog.Warn("JWT_SECRET not set, using development secret — tokens are forgeable")
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if
// unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
