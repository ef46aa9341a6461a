package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pratik-mahalle/numera/internal/api/handlers"
	"github.com/pratik-mahalle/numera/internal/api/middleware"
	"github.com/pratik-mahalle/numera/internal/config"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/metrics"
	"github.com/pratik-mahalle/numera/internal/pkg/utils"
	"github.com/pratik-mahalle/numera/internal/ratelimit"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pratik-mahalle/numera/docs"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Tool      *handlers.ToolHandler
}

// Deps carries the non-handler collaborators of the router.
// Nil limiters disable throttling for that scope.
type Deps struct {
	Tokens        middleware.TokenVerifier
	GlobalLimiter ratelimit.Limiter
	AuthLimiter   ratelimit.Limiter
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.CleanPath)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURLs))
	r.Use(metrics.Middleware)
	if deps.GlobalLimiter != nil {
		r.Use(middleware.RateLimit(deps.GlobalLimiter, "global", log))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, errors.NotFound("Route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, errors.MethodNotAllowed(r.Method))
	})

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Health checks
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)

		r.Handle("/metrics", metrics.Handler())
	})

	api := apiRoutes(log, h, deps)
	r.Mount("/api", api)
	r.Mount("/api/v1", api)

	return r
}

func apiRoutes(log *logger.Logger, h *Handlers, deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.Health.Healthz)

	// Auth endpoints resolve an identity when one is offered but never demand it
	r.Route("/auth", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(deps.Tokens))
		if deps.AuthLimiter != nil {
			r.Use(middleware.RateLimit(deps.AuthLimiter, "auth", log))
		}

		r.Post("/signup", h.Auth.Signup)
		r.Post("/login", h.Auth.Login)
		r.Post("/forgot-password", h.Auth.ForgotPassword)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Tokens))

		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/stats", h.Dashboard.Stats)
			r.Get("/history", h.Dashboard.History)
			r.Delete("/history/{id}", h.Dashboard.DeleteReport)
			r.Get("/profile", h.Dashboard.Profile)
			r.Put("/profile", h.Dashboard.UpdateProfile)
		})

		r.Route("/tool", func(r chi.Router) {
			r.Post("/generate", h.Tool.Generate)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, errors.NotFound("Route"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, errors.MethodNotAllowed(r.Method))
	})

	return r
}
