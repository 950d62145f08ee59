package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/dailydiet/dailydiet/internal/handler"
	"github.com/dailydiet/dailydiet/internal/middleware"
)

// RouterConfig carries everything the router mounts.
type RouterConfig struct {
	Logger *slog.Logger

	Health  *handler.HealthHandler
	Metrics *handler.MetricsHandler
	Users   *handler.UserHandler
	Meals   *handler.MealHandler

	Session   middleware.SessionConfig
	RateLimit middleware.RateLimitConfig
	CORS      middleware.CORSConfig
	Security  middleware.SecurityConfig

	MaxRequestBodySize int64
}

// NewRouter builds the chi router with global middleware and all routes.
func NewRouter(cfg RouterConfig) *chi.Mux {
	h := handler.New()
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.Security(cfg.Security))
	r.Use(middleware.CORS(cfg.CORS))
	if cfg.MaxRequestBodySize > 0 {
		r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
	}

	// Operational endpoints, never rate limited
	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	r.Get("/metrics", cfg.Metrics.Metrics)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit))

		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.Users.Register)
			r.Get("/", cfg.Users.List)
		})

		r.Route("/meals", func(r chi.Router) {
			r.Use(middleware.RequireSession(cfg.Session))

			r.Get("/", cfg.Meals.List)
			r.Post("/", cfg.Meals.Create)
			// Static segment wins over {id} in chi's radix tree.
			r.Get("/metrics", cfg.Meals.Metrics)
			r.Get("/{id}", cfg.Meals.Get)
			r.Put("/{id}", cfg.Meals.Update)
			r.Delete("/{id}", cfg.Meals.Delete)
		})
	})

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}
