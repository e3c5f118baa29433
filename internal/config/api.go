package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/identiflora/identiflora/pkg/formatting"
	"github.com/identiflora/identiflora/pkg/middleware"
	"github.com/identiflora/identiflora/pkg/openapi"
	"github.com/identiflora/identiflora/pkg/pagination"
)

// APIConfig holds settings for the API module: mount path, upload limits,
// CORS policy, pagination bounds, and OpenAPI metadata.
type APIConfig struct {
	BasePath      string `toml:"base_path"`
	MaxUploadSize string `toml:"max_upload_size"`

	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OpenAPI    openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	n, _ := formatting.ParseBytes(c.MaxUploadSize)
	return n
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *APIConfig) Finalize() error {
	if c.BasePath == "" {
		c.BasePath = "/"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}

	if v := os.Getenv(EnvAPIBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAPIMaxUploadSize); v != "" {
		c.MaxUploadSize = v
	}

	if !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with /, got %q", c.BasePath)
	}
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}

	if err := c.CORS.Finalize(&middleware.CORSEnv{
		Enabled:          EnvCORSEnabled,
		Origins:          EnvCORSOrigins,
		AllowedMethods:   EnvCORSAllowedMethods,
		AllowedHeaders:   EnvCORSAllowedHeaders,
		AllowCredentials: EnvCORSAllowCredentials,
		MaxAge:           EnvCORSMaxAge,
	}); err != nil {
		return err
	}

	if err := c.Pagination.Finalize(&pagination.ConfigEnv{
		DefaultPageSize: EnvPageSizeDefault,
		MaxPageSize:     EnvPageSizeMax,
	}); err != nil {
		return err
	}

	return c.OpenAPI.Finalize(&openapi.ConfigEnv{
		Title:       EnvOpenAPITitle,
		Description: EnvOpenAPIDescription,
	})
}

// Merge overwrites non-zero fields from overlay.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}
