package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"

	devSessionSigningSecret = "fraudguard-dev-session-secret-do-not-ship"
)

type Config struct {
	Env      string
	HTTPPort string

	CORSAllowedOrigins []string

	SessionSigningSecret string
	SessionCookieName    string
	SessionIdleTTL       time.Duration
	CookieDomain         string
	CookieSecure         bool
	CookieSameSite       string

	StoreDriver string
	SQLiteDSN   string

	DemoAdminPassword string
	DemoUserPassword  string

	OTPDispatchLatency time.Duration

	ReadinessProbeTimeout time.Duration
	ShutdownTimeout       time.Duration

	OTELServiceName           string
	OTELEnvironment           string
	OTELExporterOTLPEndpoint  string
	OTELExporterOTLPInsecure  bool
	OTELMetricsExportInterval time.Duration
	OTELTraceSamplingRatio    float64
	OTELMetricsEnabled        bool
	OTELTracingEnabled        bool
	OTELLogsEnabled           bool
	OTELLogLevel              string
}

func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")
	otelDefault := !isLocalLikeEnv(env)

	cfg := &Config{
		Env:                  env,
		HTTPPort:             getEnv("HTTP_PORT", "8080"),
		CORSAllowedOrigins:   splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		SessionSigningSecret: os.Getenv("SESSION_SIGNING_SECRET"),
		SessionCookieName:    getEnv("SESSION_COOKIE_NAME", "fg_session"),
		CookieDomain:         os.Getenv("COOKIE_DOMAIN"),
		CookieSecure:         getEnvBool("COOKIE_SECURE", !isLocalLikeEnv(env)),
		CookieSameSite:       strings.ToLower(getEnv("COOKIE_SAMESITE", "lax")),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMemory)),
		SQLiteDSN:            getEnv("SQLITE_DSN", "file:fraudguard?mode=memory&cache=shared"),
		DemoAdminPassword:    getEnv("DEMO_ADMIN_PASSWORD", "admin123"),
		DemoUserPassword:     getEnv("DEMO_USER_PASSWORD", "user123"),

		OTELServiceName:          getEnv("OTEL_SERVICE_NAME", "fraudguard"),
		OTELEnvironment:          getEnv("OTEL_ENVIRONMENT", env),
		OTELExporterOTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELExporterOTLPInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		OTELTraceSamplingRatio:   getEnvFloat("OTEL_TRACE_SAMPLING_RATIO", 1.0),
		OTELMetricsEnabled:       getEnvBool("OTEL_METRICS_ENABLED", otelDefault),
		OTELTracingEnabled:       getEnvBool("OTEL_TRACING_ENABLED", otelDefault),
		OTELLogsEnabled:          getEnvBool("OTEL_LOGS_ENABLED", otelDefault),
		OTELLogLevel:             strings.ToLower(getEnv("OTEL_LOG_LEVEL", "info")),
	}
	if cfg.SessionSigningSecret == "" && isLocalLikeEnv(env) {
		cfg.SessionSigningSecret = devSessionSigningSecret
	}

	durations := []struct {
		key  string
		def  string
		dest *time.Duration
	}{
		{"SESSION_IDLE_TTL", "30m", &cfg.SessionIdleTTL},
		{"OTP_DISPATCH_LATENCY", "750ms", &cfg.OTPDispatchLatency},
		{"READINESS_PROBE_TIMEOUT", "1s", &cfg.ReadinessProbeTimeout},
		{"SHUTDOWN_TIMEOUT", "20s", &cfg.ShutdownTimeout},
		{"OTEL_METRICS_EXPORT_INTERVAL", "10s", &cfg.OTELMetricsExportInterval},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(getEnv(d.key, d.def))
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dest = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string
	if len(c.SessionSigningSecret) < 32 {
		errs = append(errs, "SESSION_SIGNING_SECRET must be at least 32 chars")
	}
	if !isLocalLikeEnv(c.Env) && c.SessionSigningSecret == devSessionSigningSecret {
		errs = append(errs, "SESSION_SIGNING_SECRET must be set outside development")
	}
	if !isLocalLikeEnv(c.Env) && !c.CookieSecure {
		errs = append(errs, "COOKIE_SECURE must be true outside development")
	}
	if c.CookieSameSite == "none" && !c.CookieSecure {
		errs = append(errs, "COOKIE_SAMESITE=none requires COOKIE_SECURE=true")
	}
	if strings.TrimSpace(c.SessionCookieName) == "" {
		errs = append(errs, "SESSION_COOKIE_NAME is required")
	}
	if c.SessionIdleTTL <= 0 {
		errs = append(errs, "SESSION_IDLE_TTL must be > 0")
	}
	switch c.StoreDriver {
	case StoreDriverMemory:
	case StoreDriverSQLite:
		if strings.TrimSpace(c.SQLiteDSN) == "" {
			errs = append(errs, "SQLITE_DSN is required when STORE_DRIVER=sqlite")
		}
	default:
		errs = append(errs, "STORE_DRIVER must be one of memory, sqlite")
	}
	if c.DemoAdminPassword == "" || c.DemoUserPassword == "" {
		errs = append(errs, "DEMO_ADMIN_PASSWORD and DEMO_USER_PASSWORD must be non-empty")
	}
	if c.OTPDispatchLatency < 0 {
		errs = append(errs, "OTP_DISPATCH_LATENCY must be >= 0")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT must be > 0")
	}
	if (c.OTELMetricsEnabled || c.OTELTracingEnabled || c.OTELLogsEnabled) && c.OTELExporterOTLPEndpoint == "" {
		errs = append(errs, "OTEL_EXPORTER_OTLP_ENDPOINT is required when OTel is enabled")
	}
	if c.OTELTraceSamplingRatio < 0 || c.OTELTraceSamplingRatio > 1 {
		errs = append(errs, "OTEL_TRACE_SAMPLING_RATIO must be between 0 and 1")
	}
	if c.OTELMetricsEnabled && c.OTELMetricsExportInterval <= 0 {
		errs = append(errs, "OTEL_METRICS_EXPORT_INTERVAL must be > 0")
	}
	if !isValidLogLevel(c.OTELLogLevel) {
		errs = append(errs, "OTEL_LOG_LEVEL must be one of debug, info, warn, error")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// IsLocal reports whether the config targets a developer machine or test run.
func (c *Config) IsLocal() bool { return isLocalLikeEnv(c.Env) }

func isLocalLikeEnv(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "development", "dev", "local", "test":
		return true
	default:
		return false
	}
}

func isValidLogLevel(v string) bool {
	switch strings.ToLower(v) {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trim := strings.TrimSpace(p)
		if trim != "" {
			out = append(out, trim)
		}
	}
	return out
}
