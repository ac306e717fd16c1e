// Package config loads the soilscan service configuration from config.toml,
// an optional config.<env>.toml overlay, and SOILSCAN_ environment variables.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/soilscan/internal/analysis"
	"github.com/JaimeStill/soilscan/internal/classifier"
	"github.com/JaimeStill/soilscan/pkg/database"
	"github.com/JaimeStill/soilscan/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvSoilscanEnv             = "SOILSCAN_ENV"
	EnvSoilscanShutdownTimeout = "SOILSCAN_SHUTDOWN_TIMEOUT"
	EnvSoilscanVersion         = "SOILSCAN_VERSION"
)

var databaseEnv = &database.Env{
	DSN:             "SOILSCAN_DB_DSN",
	Host:            "SOILSCAN_DB_HOST",
	Port:            "SOILSCAN_DB_PORT",
	Name:            "SOILSCAN_DB_NAME",
	User:            "SOILSCAN_DB_USER",
	Password:        "SOILSCAN_DB_PASSWORD",
	SSLMode:         "SOILSCAN_DB_SSL_MODE",
	MaxOpenConns:    "SOILSCAN_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "SOILSCAN_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "SOILSCAN_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "SOILSCAN_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Enabled:          "SOILSCAN_STORAGE_ENABLED",
	Provider:         "SOILSCAN_STORAGE_PROVIDER",
	ContainerName:    "SOILSCAN_STORAGE_CONTAINER_NAME",
	ConnectionString: "SOILSCAN_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for the soilscan service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Logging         LoggingConfig     `toml:"logging"`
	Database        database.Config   `toml:"database"`
	Storage         storage.Config    `toml:"storage"`
	API             APIConfig         `toml:"api"`
	Scans           ScansConfig       `toml:"scans"`
	Classifier      classifier.Config `toml:"classifier"`
	Analysis        analysis.Config   `toml:"analysis"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the SOILSCAN_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSoilscanEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. Without a config.toml, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Scans.Merge(&overlay.Scans)
	c.Classifier.Merge(&overlay.Classifier)
	c.Analysis.Merge(&overlay.Analysis)
}

// Finalize applies defaults, environment overrides, and validation to every
// sub-config. Database settings are only validated when scans are stored in
// PostgreSQL.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Scans.Finalize(); err != nil {
		return fmt.Errorf("scans: %w", err)
	}
	if c.Scans.UsesDatabase() {
		if err := c.Database.Finalize(databaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Classifier.Finalize(classifierEnv); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}
	if err := c.Analysis.Finalize(analysisEnv); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvSoilscanShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvSoilscanVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvSoilscanEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
