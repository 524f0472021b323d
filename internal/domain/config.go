package domain

import "time"

// Config is the complete service configuration, unmarshaled by the config
// manager from file and environment.
type Config struct {
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Presets     PresetsConfig   `mapstructure:"presets"`
	Archive     ArchiveConfig   `mapstructure:"archive"`
	Plugins     PluginsConfig   `mapstructure:"plugins"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	RateLimit   RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// PresetsConfig locates coefficient preset files and names the default.
type PresetsConfig struct {
	Dir       string `mapstructure:"dir"`
	Active    string `mapstructure:"active"`
	CacheSize int    `mapstructure:"cache_size"`
}

// ArchiveConfig selects the optional durable scenario archive backend.
// Driver is one of "none", "sqlite", "postgres".
type ArchiveConfig struct {
	Driver         string `mapstructure:"driver"`
	Path           string `mapstructure:"path"` // sqlite file path
	URL            string `mapstructure:"url"`  // postgres connection URL
	MigrationsPath string `mapstructure:"migrations_path"`
}

// PluginsConfig is the declarative contributor manifest: only listed
// contributors are registered at startup.
type PluginsConfig struct {
	Enabled []string `mapstructure:"enabled"`
}

// LoggingConfig controls the logrus setup.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json | text
}

// RateLimitConfig bounds per-client request rates.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}
