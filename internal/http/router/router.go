package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sandeepkv93/fraudguard/internal/health"
	"github.com/sandeepkv93/fraudguard/internal/http/handler"
	"github.com/sandeepkv93/fraudguard/internal/http/middleware"
	"github.com/sandeepkv93/fraudguard/internal/http/response"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	AdminHandler      *handler.AdminHandler
	EnrollmentHandler *handler.EnrollmentHandler
	PageHandler       *handler.PageHandler
	SessionLoader     *middleware.SessionLoader
	Readiness         *health.ProbeRunner
	Logger            *slog.Logger
	CORSOrigins       []string
	EnableOTelHTTP    bool
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredRequestLogger(dep.Logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(dep.CORSOrigins))
	r.Use(middleware.BodyLimit(64 << 10))

	r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		ready, results := dep.Readiness.Ready(r.Context())
		if results == nil {
			results = []health.CheckResult{}
		}
		if ready {
			response.JSON(w, r, http.StatusOK, map[string]any{"status": "ready", "checks": results})
			return
		}
		response.Error(w, r, http.StatusServiceUnavailable, "DEPENDENCY_UNREADY", "dependencies are not ready", map[string]any{"checks": results})
	})

	r.Group(func(r chi.Router) {
		r.Use(dep.SessionLoader.Middleware)

		r.Get("/", dep.PageHandler.Home)
		r.Get(service.PathLogin, dep.PageHandler.Page("login"))
		r.Get(service.PathAdminLogin, dep.PageHandler.Page("admin_login"))
		r.With(middleware.RequireDestination(service.GateAuthenticated)).Get(service.PathDashboard, dep.PageHandler.Page("dashboard"))
		r.With(middleware.RequireDestination(service.GateAdmin)).Get(service.PathAdmin, dep.PageHandler.Page("admin"))

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/auth", func(r chi.Router) {
				r.Post("/login", dep.AuthHandler.Login)
				r.Post("/admin/login", dep.AuthHandler.AdminLogin)
				r.Post("/signup", dep.AuthHandler.SignUp)
				r.Post("/logout", dep.AuthHandler.Logout)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAPIRole(service.GateAuthenticated))
				r.Get("/me", dep.AuthHandler.Me)
				r.Get("/me/cards", dep.EnrollmentHandler.Cards)

				r.Route("/enrollment", func(r chi.Router) {
					r.Post("/", dep.EnrollmentHandler.Start)
					r.Get("/", dep.EnrollmentHandler.Get)
					r.Delete("/", dep.EnrollmentHandler.Abandon)
					r.Post("/card", dep.EnrollmentHandler.SubmitCard)
					r.Post("/phone", dep.EnrollmentHandler.SubmitPhone)
					r.Post("/resend", dep.EnrollmentHandler.ResendCode)
					r.Post("/change-phone", dep.EnrollmentHandler.ChangePhone)
					r.Post("/code", dep.EnrollmentHandler.SubmitCode)
				})
			})

			r.With(middleware.RequireAPIRole(service.GateAdmin)).Get("/admin/accounts", dep.AdminHandler.ListAccounts)
		})
	})

	var h http.Handler = r
	if dep.EnableOTelHTTP {
		h = otelhttp.NewHandler(r, "http.server")
	}
	return h
}
