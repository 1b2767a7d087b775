// Package main is the entry point for the sandbox server. It loads
// configuration, builds the logger, and hands off to internal/server.
package main

import (
	"log/slog"
	"os"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/config"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load("configs")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT or SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
