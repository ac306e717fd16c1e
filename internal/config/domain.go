package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/soilscan/internal/analysis"
	"github.com/JaimeStill/soilscan/internal/classifier"
	"github.com/JaimeStill/soilscan/internal/scans"
)

const (
	EnvScansStore    = "SOILSCAN_SCANS_STORE"
	EnvScansMaxLimit = "SOILSCAN_SCANS_MAX_LIMIT"
	EnvSynthesisSeed = "SOILSCAN_SYNTHESIS_SEED"
)

var classifierEnv = &classifier.Env{
	Provider:         "SOILSCAN_CLASSIFIER_PROVIDER",
	BaseURL:          "SOILSCAN_CLASSIFIER_BASE_URL",
	Timeout:          "SOILSCAN_CLASSIFIER_TIMEOUT",
	ScaleConfidence:  "SOILSCAN_CLASSIFIER_SCALE_CONFIDENCE",
	StaticLabel:      "SOILSCAN_CLASSIFIER_STATIC_LABEL",
	StaticConfidence: "SOILSCAN_CLASSIFIER_STATIC_CONFIDENCE",
}

var analysisEnv = &analysis.Env{
	RequireDurable: "SOILSCAN_ANALYSIS_REQUIRE_DURABLE",
	MaxUploadSize:  "SOILSCAN_ANALYSIS_MAX_UPLOAD_SIZE",
}

// ScansConfig selects the scan history store.
type ScansConfig struct {
	Store string `toml:"store"`
	// MaxLimit caps the number of scans a history listing returns.
	MaxLimit int `toml:"max_limit"`
	// Seed makes report synthesis reproducible when non-nil.
	Seed *uint64 `toml:"seed"`
}

// UsesDatabase reports whether scans are stored in PostgreSQL.
func (c *ScansConfig) UsesDatabase() bool {
	return c.Store == scans.StorePostgres
}

// Finalize applies defaults, environment overrides, and validation.
func (c *ScansConfig) Finalize() error {
	if c.Store == "" {
		c.Store = scans.StorePostgres
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = 500
	}

	if v := os.Getenv(EnvScansStore); v != "" {
		c.Store = v
	}
	if v := os.Getenv(EnvScansMaxLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxLimit = n
		}
	}
	if v := os.Getenv(EnvSynthesisSeed); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSynthesisSeed, err)
		}
		c.Seed = &seed
	}

	switch c.Store {
	case scans.StorePostgres, scans.StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.MaxLimit <= 0 {
		return fmt.Errorf("max_limit must be positive")
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ScansConfig) Merge(overlay *ScansConfig) {
	if overlay.Store != "" {
		c.Store = overlay.Store
	}
	if overlay.MaxLimit != 0 {
		c.MaxLimit = overlay.MaxLimit
	}
	if overlay.Seed != nil {
		c.Seed = overlay.Seed
	}
}
