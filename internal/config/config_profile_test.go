package config

import (
	"strings"
	"testing"
	"time"
)

func validDevConfig() *Config {
	return &Config{
		Env:                       "development",
		HTTPPort:                  "8080",
		SessionSigningSecret:      devSessionSigningSecret,
		SessionCookieName:         "fg_session",
		SessionIdleTTL:            30 * time.Minute,
		CookieSecure:              false,
		CookieSameSite:            "lax",
		StoreDriver:               StoreDriverMemory,
		DemoAdminPassword:         "admin123",
		DemoUserPassword:          "user123",
		OTPDispatchLatency:        0,
		ShutdownTimeout:           20 * time.Second,
		OTELTraceSamplingRatio:    1.0,
		OTELMetricsExportInterval: 10 * time.Second,
		OTELLogLevel:              "info",
	}
}

func TestValidateDevelopmentProfileAllowsRelaxedSettings(t *testing.T) {
	if err := validDevConfig().Validate(); err != nil {
		t.Fatalf("expected development config to validate, got %v", err)
	}
}

func TestValidateProdProfileStrictRules(t *testing.T) {
	cfg := validDevConfig()
	cfg.Env = "production"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected strict prod validation errors")
	}
	for _, want := range []string{"SESSION_SIGNING_SECRET must be set", "COOKIE_SECURE must be true"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidateRejectsUnknownStoreDriver(t *testing.T) {
	cfg := validDevConfig()
	cfg.StoreDriver = "postgres"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "STORE_DRIVER") {
		t.Fatalf("expected store driver error, got %v", err)
	}
}

func TestValidateSQLiteRequiresDSN(t *testing.T) {
	cfg := validDevConfig()
	cfg.StoreDriver = StoreDriverSQLite
	cfg.SQLiteDSN = " "
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "SQLITE_DSN") {
		t.Fatalf("expected sqlite dsn error, got %v", err)
	}
}

func TestLoadUsesDevDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SESSION_SIGNING_SECRET", "")
	t.Setenv("OTP_DISPATCH_LATENCY", "5ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SessionSigningSecret != devSessionSigningSecret {
		t.Fatal("expected dev signing secret fallback")
	}
	if cfg.OTPDispatchLatency != 5*time.Millisecond {
		t.Fatalf("unexpected dispatch latency: %v", cfg.OTPDispatchLatency)
	}
	if cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled || cfg.OTELLogsEnabled {
		t.Fatal("expected otel disabled by default in local envs")
	}
	if cfg.DemoAdminPassword != "admin123" || cfg.DemoUserPassword != "user123" {
		t.Fatal("expected demo passwords to default to the documented values")
	}
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("SESSION_IDLE_TTL", "soon")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "SESSION_IDLE_TTL") {
		t.Fatalf("expected parse error, got %v", err)
	}
}
