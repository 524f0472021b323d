package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/aas-risk-engine/internal/api"
	"github.com/aas-risk-engine/internal/coeff"
	"github.com/aas-risk-engine/internal/config"
	"github.com/aas-risk-engine/internal/database"
	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/engine"
	"github.com/aas-risk-engine/internal/plugin"
	"github.com/aas-risk-engine/internal/scenario"
)

func main() {
	configManager, err := config.NewManager()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := configManager.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	cfg := configManager.GetConfig()
	logger := config.NewLogger(cfg.Logging)

	coeffs, err := coeff.NewStore(cfg.Presets.Dir, cfg.Presets.CacheSize, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load coefficient presets")
	}

	registry := plugin.NewRegistry(cfg.Plugins.Enabled, logger)
	eng := engine.NewEngine(coeffs, registry, logger)

	archive, err := openArchive(cfg.Archive, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open scenario archive")
	}
	if archive != nil {
		defer archive.Close()
	}

	store := scenario.NewStore(eng, archive, logger)
	if archive != nil {
		if err := store.Restore(context.Background()); err != nil {
			logger.WithError(err).Fatal("Failed to restore archived scenarios")
		}
	}

	server := api.NewServer(cfg, store, eng, registry, coeffs, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received, gracefully shutting down")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
	logger.Info("Server stopped")
}

// openArchive builds the durable scenario archive named by the config.
// Postgres archives get their schema migrated first.
func openArchive(cfg domain.ArchiveConfig, logger *logrus.Logger) (domain.Archive, error) {
	switch cfg.Driver {
	case "", "none":
		return nil, nil
	case "sqlite":
		return scenario.NewSQLiteArchive(cfg.Path)
	case "postgres":
		runner, err := database.NewMigrationRunner(cfg.URL, cfg.MigrationsPath, logger)
		if err != nil {
			return nil, err
		}
		if err := runner.Up(); err != nil {
			runner.Close()
			return nil, err
		}
		if err := runner.Close(); err != nil {
			return nil, err
		}
		return scenario.NewPostgresArchiveFromURL(cfg.URL)
	default:
		return nil, fmt.Errorf("unknown archive driver %q", cfg.Driver)
	}
}
