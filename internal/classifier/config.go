package classifier

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/JaimeStill/soilscan/internal/soil"
)

const (
	ProviderHTTP   = "http"
	ProviderStatic = "static"
)

// Config selects the classifier. The static provider answers every image
// with StaticLabel at StaticConfidence.
type Config struct {
	Provider         string  `toml:"provider"`
	BaseURL          string  `toml:"base_url"`
	Timeout          string  `toml:"timeout"`
	ScaleConfidence  bool    `toml:"scale_confidence"`
	StaticLabel      string  `toml:"static_label"`
	StaticConfidence float64 `toml:"static_confidence"`
}

// Env names the environment variables that override Config.
type Env struct {
	Provider         string
	BaseURL          string
	Timeout          string
	ScaleConfidence  string
	StaticLabel      string
	StaticConfidence string
}

// TimeoutDuration parses Timeout.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields that are set in overlay. ScaleConfidence always applies.
func (c *Config) Merge(overlay *Config) {
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.StaticLabel != "" {
		c.StaticLabel = overlay.StaticLabel
	}
	if overlay.StaticConfidence != 0 {
		c.StaticConfidence = overlay.StaticConfidence
	}
	c.ScaleConfidence = overlay.ScaleConfidence
}

func (c *Config) loadDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderStatic
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
	if c.StaticLabel == "" {
		c.StaticLabel = soil.FallbackLabel
	}
	if c.StaticConfidence == 0 {
		c.StaticConfidence = 85.0
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := lookup(env.Provider); v != "" {
		c.Provider = v
	}
	if v := lookup(env.BaseURL); v != "" {
		c.BaseURL = v
	}
	if v := lookup(env.Timeout); v != "" {
		c.Timeout = v
	}
	if v := lookup(env.ScaleConfidence); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ScaleConfidence = b
		}
	}
	if v := lookup(env.StaticLabel); v != "" {
		c.StaticLabel = v
	}
	if v := lookup(env.StaticConfidence); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.StaticConfidence = f
		}
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	switch c.Provider {
	case ProviderStatic:
	case ProviderHTTP:
		if c.BaseURL == "" {
			return fmt.Errorf("base_url required for http provider")
		}
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid base_url %q", c.BaseURL)
		}
	default:
		return fmt.Errorf("unknown classifier provider %q", c.Provider)
	}
	return nil
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
