package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "talenthub")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_MissingRequiredEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_NAME", "")
	t.Setenv("JWT_ACCESS_SECRET", "")

	_, err := Load()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected missing-env error, got %v", err)
	}
	for _, key := range []string{"APP_NAME", "JWT_ACCESS_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("error must name %s, got %q", key, err)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LOCAL_STORE_PATH", "")
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("JWT_REFRESH_TTL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LocalStore.Path != "talenthub.db" {
		t.Fatalf("unexpected local store path %q", cfg.LocalStore.Path)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("unexpected access TTL %v", cfg.JWT.AccessExpiresIn)
	}
	if cfg.JWT.RefreshExpiresIn != 7*24*time.Hour {
		t.Fatalf("unexpected refresh TTL %v", cfg.JWT.RefreshExpiresIn)
	}
	if cfg.Database.Configured() {
		t.Fatalf("database must not report configured without host and name")
	}
}

func TestLoad_DatabaseConfigured(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_NAME", "talenthub")
	t.Setenv("DB_CONNECT_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Database.Configured() {
		t.Fatalf("database should report configured")
	}
	if cfg.Database.ConnectTimeout != 2*time.Second {
		t.Fatalf("unexpected connect timeout %v", cfg.Database.ConnectTimeout)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_ACCESS_TTL", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("invalid duration must fall back, got %v", cfg.JWT.AccessExpiresIn)
	}
}
