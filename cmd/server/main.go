// Package main is the entry point for the showtrack server.
//
// main stays minimal by design: read configuration, create the logger,
// make sure the data directory exists, hand everything to internal/server.
// All actual logic lives in the imported packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aminah/showtrack/internal/config"
	"github.com/aminah/showtrack/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Config file path is itself configurable; a missing file just means
	// defaults + environment variables.
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config",
			slog.String("path", configPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	if cfg.Auth.JWTSecret == "" {
		// Generate one with: openssl rand -hex 32
		logger.Warn("no JWT secret configured — authentication is disabled")
	}

	// Ensure the database directory exists (like `mkdir -p`).
	dbDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
