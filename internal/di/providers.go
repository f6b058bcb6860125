package di

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/sandeepkv93/fraudguard/internal/app"
	"github.com/sandeepkv93/fraudguard/internal/config"
	"github.com/sandeepkv93/fraudguard/internal/database"
	"github.com/sandeepkv93/fraudguard/internal/health"
	"github.com/sandeepkv93/fraudguard/internal/http/handler"
	"github.com/sandeepkv93/fraudguard/internal/http/middleware"
	"github.com/sandeepkv93/fraudguard/internal/http/router"
	"github.com/sandeepkv93/fraudguard/internal/observability"
	"github.com/sandeepkv93/fraudguard/internal/repository"
	"github.com/sandeepkv93/fraudguard/internal/security"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

const sessionTokenIssuer = "fraudguard"

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideDatabase,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	provideCredentialStore,
	provideEnrolledCardStore,
	provideSeedReport,
)

var SecuritySet = wire.NewSet(
	providePasswordHasher,
	provideSessionTokenManager,
	provideCookieManager,
)

var ServiceSet = wire.NewSet(
	service.NewLogNotifier,
	wire.Bind(new(service.Notifier), new(*service.LogNotifier)),
	provideCodeDispatcher,
	wire.Bind(new(service.CodeDispatcher), new(*service.DevSMSDispatcher)),
	provideSessionManager,
	provideEnrollmentService,
	provideSessionRegistry,
	wire.Bind(new(service.SessionManagerInterface), new(*service.SessionManager)),
	wire.Bind(new(service.EnrollmentServiceInterface), new(*service.EnrollmentService)),
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewAdminHandler,
	handler.NewEnrollmentHandler,
	handler.NewPageHandler,
	provideSessionLoader,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(app.New)

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

// provideDatabase opens and migrates sqlite when it backs the stores. The in-memory driver needs
// no database and yields nil, which every consumer tolerates.
func provideDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.StoreDriver != config.StoreDriverSQLite {
		return nil, nil
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return db, nil
}

func provideCredentialStore(db *gorm.DB) repository.CredentialStore {
	if db == nil {
		return repository.NewInMemoryCredentialStore()
	}
	return repository.NewGormCredentialStore(db)
}

func provideEnrolledCardStore(db *gorm.DB) repository.EnrolledCardStore {
	if db == nil {
		return repository.NewInMemoryEnrolledCardStore()
	}
	return repository.NewGormEnrolledCardStore(db)
}

func provideSeedReport(cfg *config.Config, store repository.CredentialStore, hasher *security.PasswordHasher, logger *slog.Logger) (*database.SeedReport, error) {
	report, err := database.Seed(context.Background(), store, hasher, database.DemoAccounts(cfg.DemoAdminPassword, cfg.DemoUserPassword))
	if err != nil {
		return nil, err
	}
	logger.Info("demo accounts ready", "created", report.CreatedAccounts, "noop", report.Noop)
	return report, nil
}

func providePasswordHasher() *security.PasswordHasher {
	return security.NewPasswordHasher(security.DefaultArgon2Params)
}

func provideSessionTokenManager(cfg *config.Config) *security.SessionTokenManager {
	return security.NewSessionTokenManager(sessionTokenIssuer, cfg.SessionSigningSecret, cfg.SessionIdleTTL)
}

func provideCookieManager(cfg *config.Config) *security.CookieManager {
	return security.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure, cfg.CookieSameSite)
}

func provideCodeDispatcher(cfg *config.Config, logger *slog.Logger) *service.DevSMSDispatcher {
	return service.NewDevSMSDispatcher(logger, cfg.OTPDispatchLatency)
}

// provideSessionManager takes the seed report only to order seeding ahead of the first sign-in.
func provideSessionManager(
	store repository.CredentialStore,
	hasher *security.PasswordHasher,
	notifier service.Notifier,
	logger *slog.Logger,
	_ *database.SeedReport,
) *service.SessionManager {
	return service.NewSessionManager(store, hasher, notifier, logger)
}

func provideEnrollmentService(cards repository.EnrolledCardStore, dispatcher service.CodeDispatcher, logger *slog.Logger) *service.EnrollmentService {
	return service.NewEnrollmentService(cards, dispatcher, logger)
}

func provideSessionRegistry(cfg *config.Config, logger *slog.Logger) *service.SessionRegistry {
	return service.NewSessionRegistry(cfg.SessionIdleTTL, logger)
}

func provideSessionLoader(
	cfg *config.Config,
	registry *service.SessionRegistry,
	tokens *security.SessionTokenManager,
	cookies *security.CookieManager,
	logger *slog.Logger,
) *middleware.SessionLoader {
	return middleware.NewSessionLoader(registry, tokens, cookies, cfg.SessionCookieName, logger)
}

func provideRouterDependencies(
	authHandler *handler.AuthHandler,
	adminHandler *handler.AdminHandler,
	enrollmentHandler *handler.EnrollmentHandler,
	pageHandler *handler.PageHandler,
	sessionLoader *middleware.SessionLoader,
	readiness *health.ProbeRunner,
	logger *slog.Logger,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		AuthHandler:       authHandler,
		AdminHandler:      adminHandler,
		EnrollmentHandler: enrollmentHandler,
		PageHandler:       pageHandler,
		SessionLoader:     sessionLoader,
		Readiness:         readiness,
		Logger:            logger,
		CORSOrigins:       cfg.CORSAllowedOrigins,
		EnableOTelHTTP:    cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB, store repository.CredentialStore) *health.ProbeRunner {
	return health.NewProbeRunner(
		cfg.ReadinessProbeTimeout,
		0,
		health.NewDBChecker(db),
		health.NewCredentialStoreChecker(store),
	)
}
