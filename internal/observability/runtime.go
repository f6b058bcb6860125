package observability

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sandeepkv93/fraudguard/internal/config"

	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Runtime owns the OTel providers for the process. LoggerProvider is nil when OTLP
// logs are off; the meter and tracer providers always exist so instruments and spans
// stay valid without an exporter.
type Runtime struct {
	LoggerProvider *sdklog.LoggerProvider
	MeterProvider  *sdkmetric.MeterProvider
	TracerProvider *sdktrace.TracerProvider
}

type shutdownFunc struct {
	name string
	fn   func(context.Context) error
}

func InitRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	rt := &Runtime{}
	var err error

	if rt.LoggerProvider, err = InitLogs(ctx, cfg, logger); err != nil {
		return nil, err
	}
	if rt.MeterProvider, err = InitMetrics(ctx, cfg, logger); err != nil {
		_ = rt.Shutdown(ctx)
		return nil, err
	}
	if rt.TracerProvider, err = InitTracing(ctx, cfg, logger); err != nil {
		_ = rt.Shutdown(ctx)
		return nil, err
	}
	return rt, nil
}

// Shutdown flushes spans first and logs last, so records emitted while the other
// pipelines drain still have somewhere to go.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, s := range r.shutdownOrder() {
		if err := s.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s provider: %w", s.name, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Runtime) shutdownOrder() []shutdownFunc {
	var order []shutdownFunc
	if r.TracerProvider != nil {
		order = append(order, shutdownFunc{"tracer", r.TracerProvider.Shutdown})
	}
	if r.MeterProvider != nil {
		order = append(order, shutdownFunc{"meter", r.MeterProvider.Shutdown})
	}
	if r.LoggerProvider != nil {
		order = append(order, shutdownFunc{"logger", r.LoggerProvider.Shutdown})
	}
	return order
}
