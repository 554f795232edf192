package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/preston-bernstein/nba-shot-selection/internal/http/handlers"
	"github.com/preston-bernstein/nba-shot-selection/internal/http/middleware"
	"github.com/preston-bernstein/nba-shot-selection/internal/metrics"
)

// RouterOptions carries the cross-cutting pieces of the router.
type RouterOptions struct {
	Logger   *slog.Logger
	Recorder *metrics.Recorder
	// AllowedOrigins feeds CORS; empty allows none.
	AllowedOrigins []string
	// Metrics is mounted at /metrics when set.
	Metrics nethttp.Handler
}

// NewRouter registers HTTP routes. Admin routes are mounted only when admin is non-nil.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler, opts RouterOptions) nethttp.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(opts.Logger, opts.Recorder, next)
	})
	r.Use(corslib.New(corslib.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodHead, nethttp.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
	}).Handler)

	r.Get("/health", h.Health)
	if opts.Metrics != nil {
		r.Method(nethttp.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Get("/teams", h.Teams)
		r.Get("/players", h.Players)
		r.Get("/comparison", h.Comparison)
		r.Get("/shots", h.Shots)
		r.Get("/shots/chart.svg", h.ShotChart)
	})

	if admin != nil {
		r.Route("/admin/cache", func(r chi.Router) {
			r.Get("/", admin.ListCache)
			r.Delete("/", admin.PurgeCache)
		})
	}
	return r
}
