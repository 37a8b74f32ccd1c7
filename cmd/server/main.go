// Package main implements the entry point for the lingua-api server,
// which manages user identities and their language learning profiles.
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/linguary/lingua-api/internal/config"
	"github.com/linguary/lingua-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
