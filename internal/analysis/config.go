package analysis

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/soilscan/pkg/formatting"
)

// Config controls the analysis pipeline.
type Config struct {
	// RequireDurable fails a request whose scan cannot be recorded instead
	// of returning the unrecorded report.
	RequireDurable bool   `toml:"require_durable"`
	MaxUploadSize  string `toml:"max_upload_size"`
}

// Env names the environment variables that override Config.
type Env struct {
	RequireDurable string
	MaxUploadSize  string
}

// MaxUploadSizeBytes parses MaxUploadSize.
func (c *Config) MaxUploadSizeBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxUploadSize)
	return n
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
	if env != nil {
		if v := os.Getenv(env.RequireDurable); env.RequireDurable != "" && v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.RequireDurable = b
			}
		}
		if v := os.Getenv(env.MaxUploadSize); env.MaxUploadSize != "" && v != "" {
			c.MaxUploadSize = v
		}
	}

	n, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	if n <= 0 {
		return fmt.Errorf("max_upload_size must be positive")
	}
	return nil
}

// Merge applies overlay. RequireDurable always applies.
func (c *Config) Merge(overlay *Config) {
	c.RequireDurable = overlay.RequireDurable
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}
}
