package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.ReconcileWorkers != 4 || cfg.ReconcileStaleAfter != 2*time.Minute {
		t.Fatalf("unexpected reconcile defaults: workers=%d staleAfter=%s", cfg.ReconcileWorkers, cfg.ReconcileStaleAfter)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS defaults: %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_WebhookRequiresURLWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("NOTIFY_WEBHOOK_ENABLED", "true")
	t.Setenv("NOTIFY_WEBHOOK_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when NOTIFY_WEBHOOK_ENABLED=true without NOTIFY_WEBHOOK_URL")
	}
}

func TestLoad_WebhookConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("NOTIFY_WEBHOOK_ENABLED", "true")
	t.Setenv("NOTIFY_WEBHOOK_URL", "https://hooks.example.com/results")
	t.Setenv("NOTIFY_WEBHOOK_TOKEN", "token-123")
	t.Setenv("NOTIFY_WEBHOOK_TIMEOUT", "4s")
	t.Setenv("NOTIFY_CIRCUIT_FAILURE_COUNT", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.NotifyWebhookEnabled {
		t.Fatalf("expected NotifyWebhookEnabled=true")
	}
	if cfg.NotifyWebhookURL != "https://hooks.example.com/results" {
		t.Fatalf("unexpected NotifyWebhookURL: %q", cfg.NotifyWebhookURL)
	}
	if cfg.NotifyWebhookToken != "token-123" {
		t.Fatalf("unexpected NotifyWebhookToken")
	}
	if cfg.NotifyWebhookTimeout != 4*time.Second {
		t.Fatalf("unexpected NotifyWebhookTimeout: %s", cfg.NotifyWebhookTimeout)
	}
	if cfg.NotifyCircuitFailureCount != 3 {
		t.Fatalf("unexpected NotifyCircuitFailureCount: %d", cfg.NotifyCircuitFailureCount)
	}
}

func TestLoad_InvalidDurationsRejected(t *testing.T) {
	cases := map[string]string{
		"CACHE_TTL":             "soon",
		"RECONCILE_INTERVAL":    "-1m",
		"RECONCILE_STALE_AFTER": "0s",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoad_LogLevelParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}
