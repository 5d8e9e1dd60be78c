package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ginaisthando/sound/pkg/health"
	"github.com/ginaisthando/sound/pkg/middleware"
)

const serviceName = "storefront"

// RouterConfig bundles the handlers and cross-cutting config the router
// mounts.
type RouterConfig struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Creator  *CreatorHandler
	Health   *health.Handler

	Logger         *slog.Logger
	CORS           middleware.CORSConfig
	RequestTimeout time.Duration
	TracingEnabled bool

	// RateLimitRPS of 0 disables per-IP rate limiting.
	RateLimitRPS   int
	RateLimitBurst int
}

// NewRouter assembles the full middleware chain and mounts every route.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.RealIP)
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Logger))
	}
	r.Use(chimw.Compress(5))
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	if cfg.TracingEnabled {
		r.Use(middleware.Tracing(serviceName))
	}
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		cfg.Catalog.RegisterRoutes(api)
		cfg.Cart.RegisterRoutes(api)
		cfg.Checkout.RegisterRoutes(api)
		cfg.Creator.RegisterRoutes(api)
	})

	return r
}
