package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ecobin/rewards-backend/internal/config"
	"github.com/ecobin/rewards-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, string, error)
}

type metricsExporter interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Health      *HealthHandler
	Deposit     *DepositHandler
	Account     *AccountHandler
	Leaderboard *LeaderboardHandler
	Bin         *BinHandler
	Collector   *CollectorHandler
}

// RouterDeps holds everything NewRouter needs. RateLimiter and Metrics are
// optional.
type RouterDeps struct {
	Handlers    Handlers
	Tokens      tokenValidator
	Logger      *slog.Logger
	CORS        config.CORSConfig
	RateLimiter *middleware.RateLimiter
	Metrics     metricsExporter
	MetricsPath string
}

// NewRouter builds the HTTP surface: probes and metrics at the root, the API
// under /api/v1.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	var observe middleware.Middleware
	if d.Metrics != nil {
		observe = d.Metrics.Middleware
	}
	r.Use(middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		observe,
		middleware.CORS(d.CORS),
	))

	r.Get("/live", d.Handlers.Health.Live)
	r.Get("/ready", d.Handlers.Health.Ready)
	r.Get("/health", d.Handlers.Health.Health)
	if d.Metrics != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, d.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Tokens))
		if d.RateLimiter != nil {
			r.Use(d.RateLimiter.Handler)
		}

		r.Route("/deposits", func(r chi.Router) {
			r.Post("/", d.Handlers.Deposit.Create)
			r.Get("/", d.Handlers.Deposit.History)
			r.Get("/quote", d.Handlers.Deposit.Quote)
		})

		r.Get("/me", d.Handlers.Account.Me)
		r.Get("/leaderboard", d.Handlers.Leaderboard.Top)

		r.Route("/bins", func(r chi.Router) {
			r.Get("/", d.Handlers.Bin.List)
			r.Get("/summary", d.Handlers.Bin.Summary)
			r.Get("/{code}", d.Handlers.Bin.Get)
		})

		r.Post("/collector/applications", d.Handlers.Collector.Apply)
		r.Get("/collector/application", d.Handlers.Collector.Mine)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminOnly)

			r.Get("/collector/applications", d.Handlers.Collector.List)
			r.Get("/collector/applications/{id}", d.Handlers.Collector.Get)
			r.Post("/collector/applications/{id}/approve", d.Handlers.Collector.Approve)
			r.Post("/collector/applications/{id}/reject", d.Handlers.Collector.Reject)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	return r
}
