package observability

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sandeepkv93/fraudguard/internal/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/exemplar"
)

const meterName = "fraudguard"

type AppMetrics struct {
	authSignInCounter            metric.Int64Counter
	authSignUpCounter            metric.Int64Counter
	authSignOutCounter           metric.Int64Counter
	authReqDuration              metric.Float64Histogram
	enrollmentTransitionCounter  metric.Int64Counter
	enrollmentValidationFailures metric.Int64Counter
	otpDispatchCounter           metric.Int64Counter
	otpDispatchDuration          metric.Float64Histogram
	sessionRegistryCounter       metric.Int64Counter
	middlewareEventCounter       metric.Int64Counter
	healthCheckResultCounter     metric.Int64Counter
	healthCheckDuration          metric.Float64Histogram
	databaseStartupCounter       metric.Int64Counter
	databaseStartupDuration      metric.Float64Histogram
	repositoryOpsCounter         metric.Int64Counter
	toolCommandRuns              metric.Int64Counter
	toolCommandDuration          metric.Float64Histogram
}

var (
	metricsMu  sync.RWMutex
	appMetrics *AppMetrics
)

func InitMetrics(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sdkmetric.MeterProvider, error) {
	if !cfg.OTELMetricsEnabled {
		mp := sdkmetric.NewMeterProvider()
		otel.SetMeterProvider(mp)
		logger.Info("otel metrics disabled")
		return mp, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.OTELExporterOTLPEndpoint)}
	if cfg.OTELExporterOTLPInsecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}
	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := newResource(ctx, cfg, "metric")
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.OTELMetricsExportInterval))
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
		sdkmetric.WithExemplarFilter(exemplar.TraceBasedFilter),
		sdkmetric.WithView(
			bucketView("auth.request.duration", 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5),
			bucketView("enrollment.otp.dispatch.duration", 0.05, 0.1, 0.25, 0.5, 0.75, 1, 2, 5, 10, 30),
		),
	)
	otel.SetMeterProvider(mp)

	m, err := newAppMetrics(mp.Meter(meterName))
	if err != nil {
		return nil, err
	}
	metricsMu.Lock()
	appMetrics = m
	metricsMu.Unlock()

	logger.Info("otel metrics initialized", "endpoint", cfg.OTELExporterOTLPEndpoint)
	return mp, nil
}

// bucketView pins histogram boundaries: sign-in latency is dominated by argon2, code
// delivery by the SMS gateway.
func bucketView(name string, boundaries ...float64) sdkmetric.View {
	return sdkmetric.NewView(
		sdkmetric.Instrument{Name: name},
		sdkmetric.Stream{Aggregation: sdkmetric.AggregationExplicitBucketHistogram{Boundaries: boundaries}},
	)
}

func newAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	m := &AppMetrics{}
	counters := []struct {
		dest *metric.Int64Counter
		name string
	}{
		{&m.authSignInCounter, "auth.signin.attempts"},
		{&m.authSignUpCounter, "auth.signup.attempts"},
		{&m.authSignOutCounter, "auth.signout.events"},
		{&m.enrollmentTransitionCounter, "enrollment.transitions"},
		{&m.enrollmentValidationFailures, "enrollment.validation.failures"},
		{&m.otpDispatchCounter, "enrollment.otp.dispatches"},
		{&m.sessionRegistryCounter, "session.registry.events"},
		{&m.middlewareEventCounter, "http.middleware.events"},
		{&m.healthCheckResultCounter, "health.check.results"},
		{&m.databaseStartupCounter, "database.startup.events"},
		{&m.repositoryOpsCounter, "repository.operations"},
		{&m.toolCommandRuns, "tool.command.runs"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name)
		if err != nil {
			return nil, fmt.Errorf("create counter %s: %w", c.name, err)
		}
		*c.dest = counter
	}

	histograms := []struct {
		dest *metric.Float64Histogram
		name string
		desc string
	}{
		{&m.authReqDuration, "auth.request.duration", "Duration of auth endpoint requests in seconds"},
		{&m.otpDispatchDuration, "enrollment.otp.dispatch.duration", "Time from code issue to dispatch completion in seconds"},
		{&m.healthCheckDuration, "health.check.duration", "Duration of readiness dependency checks in seconds"},
		{&m.databaseStartupDuration, "database.startup.duration", "Duration of database startup stages in seconds"},
		{&m.toolCommandDuration, "tool.command.duration", "Duration of tool command runs in seconds"},
	}
	for _, h := range histograms {
		hist, err := meter.Float64Histogram(h.name, metric.WithUnit("s"), metric.WithDescription(h.desc))
		if err != nil {
			return nil, fmt.Errorf("create histogram %s: %w", h.name, err)
		}
		*h.dest = hist
	}
	return m, nil
}

func currentMetrics() *AppMetrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return appMetrics
}

func RecordAuthSignIn(ctx context.Context, entry, status string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.authSignInCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entry", entry),
		attribute.String("status", status),
	))
}

func RecordAuthSignUp(ctx context.Context, status string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.authSignUpCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

func RecordAuthSignOut(ctx context.Context, status string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.authSignOutCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

func RecordAuthRequestDuration(ctx context.Context, operation, status string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.authReqDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
}

func RecordEnrollmentTransition(ctx context.Context, from, to string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.enrollmentTransitionCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
	))
}

func RecordEnrollmentValidationFailure(ctx context.Context, stage, field string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.enrollmentValidationFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("field", field),
	))
}

// RecordOTPDispatch counts dispatch completions. outcome is one of delivered, failed, stale.
func RecordOTPDispatch(ctx context.Context, outcome string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.otpDispatchCounter.Add(ctx, 1, attrs)
	m.otpDispatchDuration.Record(ctx, duration.Seconds(), attrs)
}

func RecordSessionRegistryEvent(ctx context.Context, action string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.sessionRegistryCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("action", action)))
}

func RecordMiddlewareEvent(ctx context.Context, middleware, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.middlewareEventCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("middleware", middleware),
		attribute.String("outcome", outcome),
	))
}

func RecordHealthCheckResult(ctx context.Context, check, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.healthCheckResultCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("check", check),
		attribute.String("outcome", outcome),
	))
}

func RecordHealthCheckDuration(ctx context.Context, check string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.healthCheckDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("check", check),
	))
}

func RecordDatabaseStartupEvent(ctx context.Context, stage, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.databaseStartupCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.String("outcome", outcome),
	))
}

func RecordDatabaseStartupDuration(ctx context.Context, stage string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.databaseStartupDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
	))
}

func RecordRepositoryOperation(ctx context.Context, repository, operation, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.repositoryOpsCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("repository", repository),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

func RecordToolCommandRun(ctx context.Context, tool, command, outcome string) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.toolCommandRuns.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("command", command),
		attribute.String("outcome", outcome),
	))
}

func RecordToolCommandDuration(ctx context.Context, tool, command, outcome string, duration time.Duration) {
	m := currentMetrics()
	if m == nil {
		return
	}
	m.toolCommandDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("command", command),
		attribute.String("outcome", outcome),
	))
}
