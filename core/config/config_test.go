package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := &Config{}
	err := Normalize(cfg)
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}

	cfg.Telegram.Token = "   "
	if err := Normalize(cfg); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("blank token: expected ErrMissingToken, got %v", err)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.RunMode = "Polling"
	cfg.RateLimit.ExcludeUpdates = []string{" Callback ", ""}
	cfg.Sender.MaxRetries = -3

	if err := Normalize(cfg); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run mode = %q, want %q", cfg.Telegram.RunMode, RunModeLongpoll)
	}
	if cfg.RateLimit.ExcludeUpdates[0] != UpdateCallback {
		t.Errorf("exclude[0] = %q, want %q", cfg.RateLimit.ExcludeUpdates[0], UpdateCallback)
	}
	if cfg.RateLimit.Burst != 1 {
		t.Errorf("burst = %d, want 1", cfg.RateLimit.Burst)
	}
	if cfg.Sender.MaxRetries != 0 {
		t.Errorf("max retries = %d, want 0", cfg.Sender.MaxRetries)
	}
}

func TestNormalizeRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown run mode", func(c *Config) { c.Telegram.RunMode = "carrier-pigeon" }},
		{"webhook without url", func(c *Config) {
			c.Telegram.RunMode = RunModeWebhook
			c.Webhook.Listen = "0.0.0.0"
			c.Webhook.Port = 8443
		}},
		{"webhook without port", func(c *Config) {
			c.Telegram.RunMode = RunModeWebhook
			c.Webhook.URL = "https://example.org/hook"
			c.Webhook.Listen = "0.0.0.0"
		}},
		{"negative longpoll timeout", func(c *Config) { c.Telegram.LongPollTimeoutSeconds = -1 }},
		{"negative rate interval", func(c *Config) { c.RateLimit.IntervalMS = -5 }},
		{"unknown exclude", func(c *Config) { c.RateLimit.ExcludeUpdates = []string{"poll"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Telegram.Token = "123:abc"
			tt.mutate(cfg)
			if err := Normalize(cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("telegram:\n  token: from-file\n  admin_id: 7\nsender:\n  workers: 2\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TELEGRAM_TOKEN", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.Token != "from-env" {
		t.Errorf("token = %q, env should override file", cfg.Telegram.Token)
	}
	if cfg.Telegram.AdminID != 7 {
		t.Errorf("admin id = %d, want 7", cfg.Telegram.AdminID)
	}
	if cfg.Sender.Workers != 2 {
		t.Errorf("workers = %d, want 2", cfg.Sender.Workers)
	}
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "env-only")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Telegram.Token != "env-only" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
}

func TestLoadWithoutTokenFails(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}
