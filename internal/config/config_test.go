package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
database:
  host: localhost
  name: taskbot
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want longpoll default", cfg.Telegram.RunMode)
	}
	if cfg.Database.Port != "5432" {
		t.Errorf("database.port = %q, want 5432 default", cfg.Database.Port)
	}
	if cfg.Database.SSLMode != "disable" {
		t.Errorf("database.sslmode = %q, want disable default", cfg.Database.SSLMode)
	}
	if cfg.Database.MaxConnections != 10 {
		t.Errorf("database.max_connections = %d, want 10 default", cfg.Database.MaxConnections)
	}
	if cfg.Metrics.Namespace != "taskbot" {
		t.Errorf("metrics.namespace = %q, want taskbot default", cfg.Metrics.Namespace)
	}
}

func TestNormalizeRejectsMissingToken(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Name = "taskbot"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestNormalizeRejectsBadRunMode(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.RunMode = "carrier-pigeon"
	cfg.Database.Host = "localhost"
	cfg.Database.Name = "taskbot"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for invalid run mode")
	}
}

func TestNormalizeAcceptsPollingAlias(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.RunMode = "polling"
	cfg.Database.Host = "localhost"
	cfg.Database.Name = "taskbot"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q, want longpoll", cfg.Telegram.RunMode)
	}
}

func TestNormalizeWebhookRequiresURL(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.RunMode = RunModeWebhook
	cfg.Database.Host = "localhost"
	cfg.Database.Name = "taskbot"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for webhook mode without url")
	}
}

func TestNormalizeRejectsUnknownRateLimitExclusion(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Database.Host = "localhost"
	cfg.Database.Name = "taskbot"
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unsupported exclusion")
	}
}
