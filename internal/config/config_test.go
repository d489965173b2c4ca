package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doctornein/dynasty-tokens/internal/config"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}

func TestLoad_FromYAMLAndEnv(t *testing.T) {
	yaml := `
logger:
  env: staging
  level: info

server:
  port: 18080

postgres:
  host: 127.0.0.1
  port: 5432
  sslmode: disable

provider:
  base_url: https://stats.example-sports-data.com/api/v1
`
	path := writeTempConfig(t, yaml)

	// Secrets come from ENV using the canonical APP_* names.
	t.Setenv("APP_POSTGRES_USER", "testuser")
	t.Setenv("APP_POSTGRES_PASSWORD", "testpass")
	t.Setenv("APP_SERVER_SETTLEMENT_TOKEN", "shh")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 18080 {
		t.Fatalf("expected server.port 18080, got %d", cfg.Server.Port)
	}
	if cfg.Postgres.User != "testuser" || cfg.Postgres.Password != "testpass" {
		t.Fatalf("env overrides not applied: user=%q pass=%q", cfg.Postgres.User, cfg.Postgres.Password)
	}
	if cfg.Server.SettlementToken != "shh" {
		t.Fatalf("settlement token override not applied: %q", cfg.Server.SettlementToken)
	}
	if cfg.Postgres.Host != "127.0.0.1" || cfg.Postgres.SSLMode != "disable" {
		t.Fatalf("yaml values not loaded: host=%q sslmode=%q", cfg.Postgres.Host, cfg.Postgres.SSLMode)
	}
}

func TestLoad_Defaults(t *testing.T) {
	yaml := `
provider:
  base_url: https://stats.example-sports-data.com/api/v1
`
	cfg, err := config.Load(writeTempConfig(t, yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Provider.TimeoutSeconds != 15 {
		t.Fatalf("expected default provider timeout 15, got %d", cfg.Provider.TimeoutSeconds)
	}
	if cfg.Redis.TTL != 300 {
		t.Fatalf("expected default cache TTL 300, got %d", cfg.Redis.TTL)
	}
}

func TestLoad_RejectsBadProviderURL(t *testing.T) {
	yaml := `
provider:
  base_url: "not a url"
`
	if _, err := config.Load(writeTempConfig(t, yaml)); err == nil {
		t.Fatalf("expected validation error for bad provider url")
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
