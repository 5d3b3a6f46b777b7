// taskdeck - identity and per-account task-list service.
//
// This is the main entry point. It wires configuration, logging, the SQLite
// partition store, the session registry, the admin seeder, and the HTTP API,
// then waits for a shutdown signal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/taskdeck/taskdeck/internal/account"
	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/infrastructure/config"
	"github.com/taskdeck/taskdeck/internal/infrastructure/database"
	"github.com/taskdeck/taskdeck/internal/infrastructure/logging"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var version = "dev"

// defaultConfigPath is used when TASKDECK_CONFIG is not set. The file is
// optional; absent it, defaults plus environment variables apply.
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Cancel on interrupt signals (Ctrl+C, SIGTERM) for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error {
	// Best-effort .env loading for local development.
	_ = godotenv.Load() //nolint:errcheck // absence of a .env file is normal

	log := logging.Default()
	log.Info("starting taskdeck", "version", version)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded", "path", configPath)

	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	store := account.NewStore(db.DB)
	sessions := auth.NewSessionRegistry()
	gate := auth.NewGate(store, sessions)

	// Guarantee the admin account exists before accepting traffic.
	if err := auth.SeedAdmin(ctx, store, cfg.Seed, log); err != nil {
		return fmt.Errorf("seeding admin account: %w", err)
	}

	server, err := api.New(api.Deps{
		Config:   cfg.API,
		Logger:   log,
		Store:    store,
		Sessions: sessions,
		Gate:     gate,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	log.Info("API server listening",
		"host", cfg.API.Host,
		"port", cfg.API.Port,
	)

	<-ctx.Done()
	log.Info("shutdown signal received")

	if err := server.Close(); err != nil {
		log.Error("error shutting down API server", "error", err)
	}

	return nil
}

// getConfigPath returns the configuration file path.
// Uses the TASKDECK_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("TASKDECK_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
