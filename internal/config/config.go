// Package config loads the service configuration from file and environment
// using Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/aas-risk-engine/internal/domain"
)

// Manager loads and holds the service configuration.
type Manager struct {
	config *domain.Config
}

// NewManager creates a configuration manager and loads the configuration.
func NewManager() (*Manager, error) {
	m := &Manager{}
	if err := m.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return m, nil
}

// loadConfig loads configuration from file, environment and defaults.
func (m *Manager) loadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/aas-risk-engine/")

	viper.SetEnvPrefix("AAS_RISK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	m.setDefaults()

	// Config file is optional; defaults and environment variables suffice.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := viper.Unmarshal(config); err != nil {
		return fmt.Errorf("error unmarshaling config: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) setDefaults() {
	viper.SetDefault("environment", "development")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")

	viper.SetDefault("presets.dir", "presets")
	viper.SetDefault("presets.active", "moderate")
	viper.SetDefault("presets.cache_size", 8)

	viper.SetDefault("archive.driver", "none")
	viper.SetDefault("archive.path", "data/scenarios.db")
	viper.SetDefault("archive.url", "")
	viper.SetDefault("archive.migrations_path", "migrations")

	viper.SetDefault("plugins.enabled", []string{})

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("rate_limit.requests_per_second", 10.0)
	viper.SetDefault("rate_limit.burst", 20)
}

// GetConfig returns the complete configuration.
func (m *Manager) GetConfig() *domain.Config {
	return m.config
}

// Reload reloads the configuration.
func (m *Manager) Reload() error {
	return m.loadConfig()
}

// IsProduction returns true if running in production mode.
func (m *Manager) IsProduction() bool {
	return strings.ToLower(m.config.Environment) == "production"
}

// Validate validates the configuration.
func (m *Manager) Validate() error {
	config := m.config

	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if !domain.PresetName(config.Presets.Active).IsValid() {
		return fmt.Errorf("invalid active preset: %s", config.Presets.Active)
	}

	switch config.Archive.Driver {
	case "none":
	case "sqlite":
		if config.Archive.Path == "" {
			return fmt.Errorf("archive path is required for the sqlite driver")
		}
	case "postgres":
		if config.Archive.URL == "" {
			return fmt.Errorf("archive URL is required for the postgres driver")
		}
	default:
		return fmt.Errorf("invalid archive driver: %s", config.Archive.Driver)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(config.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}
	if config.Logging.Format != "json" && config.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", config.Logging.Format)
	}

	if config.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("invalid rate limit: %f", config.RateLimit.RequestsPerSecond)
	}

	return nil
}

// NewLogger builds a logrus logger from the logging configuration.
func NewLogger(cfg domain.LoggingConfig) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
