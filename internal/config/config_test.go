package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: https://registry.test/api/v3
  token: tok-123
  product_group: shoes
  timeout_ms: 3000
limit:
  requests: 10
  window_ms: 500
observability:
  log_level: debug
  metrics_addr: ":9090"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://registry.test/api/v3" || cfg.API.Token != "tok-123" {
		t.Fatalf("api = %+v", cfg.API)
	}
	if cfg.API.Timeout() != 3*time.Second {
		t.Fatalf("timeout = %v", cfg.API.Timeout())
	}
	if cfg.Limit.Requests != 10 || cfg.Limit.Window() != 500*time.Millisecond {
		t.Fatalf("limit = %+v", cfg.Limit)
	}
	if cfg.Observability.LogLevel != "debug" || cfg.Observability.MetricsAddr != ":9090" {
		t.Fatalf("observability = %+v", cfg.Observability)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "api: {}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://ismp.crpt.ru/api/v3" {
		t.Fatalf("base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout() != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.API.Timeout())
	}
	if cfg.Limit.Requests != 1 || cfg.Limit.Window() != time.Second {
		t.Fatalf("limit = %+v", cfg.Limit)
	}
	if cfg.Observability.LogLevel != "info" {
		t.Fatalf("log_level = %q", cfg.Observability.LogLevel)
	}
	if cfg.Observability.MetricsAddr != "" {
		t.Fatalf("metrics_addr = %q, want disabled", cfg.Observability.MetricsAddr)
	}
}

func TestLoad_TokenFromEnv(t *testing.T) {
	t.Setenv("CRPT_TOKEN", "env-tok")
	cfg, err := Load(writeConfig(t, "api: {}\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.Token != "env-tok" {
		t.Fatalf("token = %q, want env fallback", cfg.API.Token)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}
