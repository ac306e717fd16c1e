package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/soilscan/pkg/middleware"
	"github.com/JaimeStill/soilscan/pkg/openapi"
	"github.com/JaimeStill/soilscan/pkg/pagination"
)

const EnvAPIBasePath = "SOILSCAN_API_BASE_PATH"

var corsEnv = &middleware.CORSEnv{
	Enabled:          "SOILSCAN_CORS_ENABLED",
	Origins:          "SOILSCAN_CORS_ORIGINS",
	AllowedMethods:   "SOILSCAN_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "SOILSCAN_CORS_ALLOWED_HEADERS",
	ExposedHeaders:   "SOILSCAN_CORS_EXPOSED_HEADERS",
	AllowCredentials: "SOILSCAN_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "SOILSCAN_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "SOILSCAN_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "SOILSCAN_PAGINATION_MAX_PAGE_SIZE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "SOILSCAN_OPENAPI_TITLE",
	Description: "SOILSCAN_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, OpenAPI, and pagination settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	OpenAPI    openapi.Config        `toml:"openapi"`
	Pagination pagination.Config     `toml:"pagination"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 || len(c.BasePath) < 2 {
		return fmt.Errorf("base_path must be a single path segment like /api: %q", c.BasePath)
	}

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
	c.Pagination.Merge(&overlay.Pagination)
}
