package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/sandeepkv93/fraudguard/internal/config"
	"github.com/sandeepkv93/fraudguard/internal/health"
	"github.com/sandeepkv93/fraudguard/internal/observability"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

const defaultSweepInterval = time.Minute

type App struct {
	Config        *config.Config
	Logger        *slog.Logger
	Server        *http.Server
	Observability *observability.Runtime
	Registry      *service.SessionRegistry
	Readiness     *health.ProbeRunner
	// DB is nil when the in-memory store driver is selected.
	DB *gorm.DB

	SweepInterval time.Duration
}

func New(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	registry *service.SessionRegistry,
	readiness *health.ProbeRunner,
	db *gorm.DB,
) *App {
	return &App{
		Config:        cfg,
		Logger:        logger,
		Server:        server,
		Observability: runtime,
		Registry:      registry,
		Readiness:     readiness,
		DB:            db,
		SweepInterval: sweepIntervalFor(cfg),
	}
}

// Run serves HTTP and evicts idle sessions until ctx is cancelled, then drains the server.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("server starting", "addr", a.Server.Addr, "store_driver", a.Config.StoreDriver)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		a.runSweeper(gctx)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		timeout := a.Config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("failed to shutdown http server", "error", err)
			return err
		}
		return nil
	})

	return g.Wait()
}

func (a *App) runSweeper(ctx context.Context) {
	if a.Registry == nil {
		return
	}
	interval := a.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := a.Registry.Sweep(ctx); evicted > 0 {
				a.Logger.Info("idle sessions evicted", "evicted", evicted, "active", a.Registry.Len())
			}
		}
	}
}

// Close releases the observability pipeline and the database handle. It runs after Run returns.
func (a *App) Close(ctx context.Context) {
	if a.Observability != nil {
		if err := a.Observability.Shutdown(ctx); err != nil {
			a.Logger.Error("failed to shutdown observability", "error", err)
		}
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.Logger.Error("failed to close database connection", "error", err)
			}
		}
	}
}

func sweepIntervalFor(cfg *config.Config) time.Duration {
	if cfg == nil || cfg.SessionIdleTTL <= 0 {
		return defaultSweepInterval
	}
	interval := cfg.SessionIdleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}
	if interval > defaultSweepInterval {
		interval = defaultSweepInterval
	}
	return interval
}
