package main

import (
	"context"
	"os/signal"
	"syscall"

	"videofeed/ingest/internal/config"
	"videofeed/ingest/internal/container"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.Info("Starting video feed ingester...")

	// Load configuration using viper
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.Fatalf("Invalid log level %q: %v", cfg.Log.Level, err)
	}
	log.SetLevel(level)
	log.Info("Configuration loaded successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize container with all dependencies
	app, err := container.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	runErr := app.Run(ctx)
	app.Close()
	if runErr != nil {
		log.Fatalf("Ingestion failed: %v", runErr)
	}

	log.Info("Application finished successfully")
}
