// Package config loads service configuration from TOML files with
// environment-specific overlays and FLORA_* environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/identiflora/identiflora/pkg/database"
	"github.com/identiflora/identiflora/pkg/storage"
)

// Environment variable names recognized for overrides.
const (
	EnvEnvironment     = "FLORA_ENVIRONMENT"
	EnvVersion         = "FLORA_VERSION"
	EnvShutdownTimeout = "FLORA_SHUTDOWN_TIMEOUT"

	EnvServerHost = "FLORA_SERVER_HOST"
	EnvServerPort = "FLORA_SERVER_PORT"

	EnvDBHost            = "FLORA_DB_HOST"
	EnvDBPort            = "FLORA_DB_PORT"
	EnvDBName            = "FLORA_DB_NAME"
	EnvDBUser            = "FLORA_DB_USER"
	EnvDBPassword        = "FLORA_DB_PASSWORD"
	EnvDBPasswordFile    = "FLORA_DB_PASSWORD_FILE"
	EnvDBSSLMode         = "FLORA_DB_SSL_MODE"
	EnvDBMaxOpenConns    = "FLORA_DB_MAX_OPEN_CONNS"
	EnvDBMaxIdleConns    = "FLORA_DB_MAX_IDLE_CONNS"
	EnvDBConnMaxLifetime = "FLORA_DB_CONN_MAX_LIFETIME"
	EnvDBConnTimeout     = "FLORA_DB_CONN_TIMEOUT"

	EnvStorageContainer        = "FLORA_STORAGE_CONTAINER"
	EnvStorageConnectionString = "FLORA_STORAGE_CONNECTION_STRING"
	EnvStorageMaxListSize      = "FLORA_STORAGE_MAX_LIST_SIZE"

	EnvAPIBasePath      = "FLORA_API_BASE_PATH"
	EnvAPIMaxUploadSize = "FLORA_API_MAX_UPLOAD_SIZE"

	EnvCORSEnabled          = "FLORA_CORS_ENABLED"
	EnvCORSOrigins          = "FLORA_CORS_ORIGINS"
	EnvCORSAllowedMethods   = "FLORA_CORS_ALLOWED_METHODS"
	EnvCORSAllowedHeaders   = "FLORA_CORS_ALLOWED_HEADERS"
	EnvCORSAllowCredentials = "FLORA_CORS_ALLOW_CREDENTIALS"
	EnvCORSMaxAge           = "FLORA_CORS_MAX_AGE"

	EnvPageSizeDefault = "FLORA_PAGE_SIZE_DEFAULT"
	EnvPageSizeMax     = "FLORA_PAGE_SIZE_MAX"

	EnvOpenAPITitle       = "FLORA_OPENAPI_TITLE"
	EnvOpenAPIDescription = "FLORA_OPENAPI_DESCRIPTION"
)

// Config is the root service configuration.
type Config struct {
	Environment     string `toml:"environment"`
	Version         string `toml:"version"`
	ShutdownTimeout string `toml:"shutdown_timeout"`

	Server   ServerConfig    `toml:"server"`
	Database database.Config `toml:"database"`
	Storage  storage.Config  `toml:"storage"`
	API      APIConfig       `toml:"api"`
}

// Load reads the base TOML file at path, applies the environment-specific
// overlay (config.{environment}.toml alongside it), then finalizes with
// environment variable overrides. A .env file in the working directory is
// loaded first when present. Missing config files are not an error; all
// values have defaults.
func Load(path string) (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvEnvironment); v != "" {
		cfg.Environment = v
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	overlay := &Config{}
	overlayPath := overlayPath(path, cfg.Environment)
	if err := loadFile(overlayPath, overlay); err != nil {
		return nil, err
	}
	cfg.Merge(overlay)

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Environment != "" {
		c.Environment = overlay.Environment
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}

	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
}

// Finalize applies defaults, environment variable overrides, and validation
// to the full configuration tree.
func (c *Config) Finalize() error {
	if v := os.Getenv(EnvVersion); v != "" {
		c.Version = v
	}
	if c.Version == "" {
		c.Version = "dev"
	}

	if v := os.Getenv(EnvShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "10s"
	}
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}

	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Database.Finalize(&database.Env{
		Host:            EnvDBHost,
		Port:            EnvDBPort,
		Name:            EnvDBName,
		User:            EnvDBUser,
		Password:        EnvDBPassword,
		PasswordFile:    EnvDBPasswordFile,
		SSLMode:         EnvDBSSLMode,
		MaxOpenConns:    EnvDBMaxOpenConns,
		MaxIdleConns:    EnvDBMaxIdleConns,
		ConnMaxLifetime: EnvDBConnMaxLifetime,
		ConnTimeout:     EnvDBConnTimeout,
	}); err != nil {
		return fmt.Errorf("database config: %w", err)
	}

	if err := c.Storage.Finalize(&storage.Env{
		ContainerName:    EnvStorageContainer,
		ConnectionString: EnvStorageConnectionString,
		MaxListSize:      EnvStorageMaxListSize,
	}); err != nil {
		return fmt.Errorf("storage config: %w", err)
	}

	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api config: %w", err)
	}

	return nil
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return nil
}

func overlayPath(basePath, environment string) string {
	dir := filepath.Dir(basePath)
	base := filepath.Base(basePath)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s.%s%s", name, environment, ext))
}
