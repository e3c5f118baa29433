package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/identiflora/identiflora/internal/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvStorageConnectionString, "UseDevelopmentStorage=true")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"environment", cfg.Environment, "development"},
		{"version", cfg.Version, "dev"},
		{"shutdown_timeout", cfg.ShutdownTimeout, "10s"},
		{"server port", cfg.Server.Port, 8000},
		{"base path", cfg.API.BasePath, "/"},
		{"max upload", cfg.API.MaxUploadSize, "10MB"},
		{"db host", cfg.Database.Host, "localhost"},
		{"container", cfg.Storage.ContainerName, "plant-images"},
		{"default page size", cfg.API.Pagination.DefaultPageSize, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %v, want %v", tt.got, tt.expected)
			}
		})
	}
}

func TestLoadBaseFile(t *testing.T) {
	setRequiredEnv(t)
	dir := t.TempDir()

	path := writeConfig(t, dir, "config.toml", `
version = "1.2.3"

[server]
port = 9000

[database]
host = "db.internal"
name = "flora"

[api]
base_path = "/v1"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Version != "1.2.3" {
		t.Errorf("version = %s, want 1.2.3", cfg.Version)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("db host = %s, want db.internal", cfg.Database.Host)
	}
	if cfg.Database.Name != "flora" {
		t.Errorf("db name = %s, want flora", cfg.Database.Name)
	}
	if cfg.API.BasePath != "/v1" {
		t.Errorf("base path = %s, want /v1", cfg.API.BasePath)
	}
}

func TestLoadEnvironmentOverlay(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(config.EnvEnvironment, "production")
	dir := t.TempDir()

	path := writeConfig(t, dir, "config.toml", `
[server]
port = 9000

[database]
host = "localhost"
`)
	writeConfig(t, dir, "config.production.toml", `
[database]
host = "db.prod.internal"
ssl_mode = "require"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Environment != "production" {
		t.Errorf("environment = %s, want production", cfg.Environment)
	}
	if cfg.Database.Host != "db.prod.internal" {
		t.Errorf("db host = %s, want db.prod.internal", cfg.Database.Host)
	}
	if cfg.Database.SSLMode != "require" {
		t.Errorf("ssl_mode = %s, want require", cfg.Database.SSLMode)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port = %d, want 9000 (from base)", cfg.Server.Port)
	}
}

func TestLoadEnvVarOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(config.EnvServerPort, "8080")
	t.Setenv(config.EnvDBPassword, "envpass")
	t.Setenv(config.EnvAPIBasePath, "/flora")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Password != "envpass" {
		t.Errorf("password = %s, want envpass", cfg.Database.Password)
	}
	if cfg.API.BasePath != "/flora" {
		t.Errorf("base path = %s, want /flora", cfg.API.BasePath)
	}
}

func TestLoadDBPasswordFile(t *testing.T) {
	setRequiredEnv(t)
	dir := t.TempDir()

	secret := writeConfig(t, dir, "db_password", "file-secret\n")
	t.Setenv(config.EnvDBPasswordFile, secret)

	cfg, err := config.Load(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Database.Password != "file-secret" {
		t.Errorf("password = %q, want file-secret", cfg.Database.Password)
	}
}

func TestLoadValidation(t *testing.T) {
	setRequiredEnv(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "bad shutdown timeout",
			content: "shutdown_timeout = \"forever\"\n",
			wantErr: "invalid shutdown_timeout",
		},
		{
			name:    "bad server port",
			content: "[server]\nport = 99999\n",
			wantErr: "port must be between",
		},
		{
			name:    "bad base path",
			content: "[api]\nbase_path = \"api\"\n",
			wantErr: "base_path must start with /",
		},
		{
			name:    "bad upload size",
			content: "[api]\nmax_upload_size = \"huge\"\n",
			wantErr: "invalid max_upload_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, "config.toml", tt.content)

			_, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestShutdownTimeoutDuration(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.ShutdownTimeoutDuration().Seconds() != 10 {
		t.Errorf("shutdown duration = %v, want 10s", cfg.ShutdownTimeoutDuration())
	}
}

func TestMaxUploadSizeBytes(t *testing.T) {
	cfg := config.APIConfig{MaxUploadSize: "10MB"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if got := cfg.MaxUploadSizeBytes(); got != 10*1024*1024 {
		t.Errorf("max upload bytes = %d, want %d", got, 10*1024*1024)
	}
}
