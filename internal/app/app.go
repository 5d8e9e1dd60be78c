package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ginaisthando/sound/internal/catalog"
	"github.com/ginaisthando/sound/internal/config"
	"github.com/ginaisthando/sound/internal/event"
	handlerhttp "github.com/ginaisthando/sound/internal/handler/http"
	"github.com/ginaisthando/sound/internal/payment"
	postgresrepo "github.com/ginaisthando/sound/internal/repository/postgres"
	redisrepo "github.com/ginaisthando/sound/internal/repository/redis"
	"github.com/ginaisthando/sound/internal/service"
	"github.com/ginaisthando/sound/pkg/database"
	"github.com/ginaisthando/sound/pkg/health"
	pkgkafka "github.com/ginaisthando/sound/pkg/kafka"
	"github.com/ginaisthando/sound/pkg/middleware"
	"github.com/ginaisthando/sound/pkg/tracing"
)

// App wires every component of the storefront service together and owns
// their lifecycles.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	redis    *redis.Client
	pgPool   *pgxpool.Pool
	producer *pkgkafka.Producer

	server          *http.Server
	tracingShutdown func(context.Context) error
}

// New builds the full dependency graph. It connects to Redis and Postgres
// eagerly so a misconfigured service fails at startup rather than on first
// request.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	if cfg.Tracing.Enabled {
		tracingCfg := tracing.DefaultConfig("storefront")
		tracingCfg.Enabled = true
		tracingCfg.Environment = cfg.Environment
		tracingCfg.OTLPEndpoint = cfg.Tracing.Endpoint
		tracingCfg.SampleRate = cfg.Tracing.SampleRate
		shutdown, err := tracing.InitTracer(ctx, tracingCfg)
		if err != nil {
			return nil, fmt.Errorf("initializing tracer: %w", err)
		}
		a.tracingShutdown = shutdown
	}

	var err error
	a.redis, err = database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	poolCfg := database.DefaultPoolConfig(cfg.Postgres.DSN())
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	a.pgPool, err = database.NewPostgresPool(ctx, poolCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	database.RegisterPoolMetrics(a.pgPool, "storefront")
	database.SetSlowQueryLogging(cfg.Postgres.SlowQueryThreshold, logger)

	a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.Kafka.Brokers), logger)
	events := event.NewProducer(a.producer, logger)

	feed := catalog.Default()
	if cfg.Catalog.FeedPath != "" {
		feed, err = catalog.LoadFile(cfg.Catalog.FeedPath)
		if err != nil {
			return nil, fmt.Errorf("loading catalog feed: %w", err)
		}
	}

	cartRepo := redisrepo.NewCartRepository(a.redis, cfg.Redis.CartTTL)
	creatorRepo := postgresrepo.NewCreatorRepository(a.pgPool)

	processor := payment.NewBreakerProcessor(
		payment.NewSimulated(cfg.Payment.ChargeDelay, logger),
		payment.DefaultBreakerConfig(),
		logger,
	)

	catalogSvc := service.NewCatalogService(feed, logger)
	cartSvc := service.NewCartService(cartRepo, events, logger)
	checkoutSvc := service.NewCheckoutService(cartSvc, processor, events, logger, cfg.Payment.Currency)
	creatorSvc := service.NewCreatorService(creatorRepo, events, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return a.redis.Ping(ctx).Err()
	})
	healthHandler.Register("postgres", a.pgPool.Ping)
	healthHandler.Register("kafka", a.producer.Ping)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.HTTP.CORSOrigins

	router := handlerhttp.NewRouter(handlerhttp.RouterConfig{
		Catalog:        handlerhttp.NewCatalogHandler(catalogSvc, logger),
		Cart:           handlerhttp.NewCartHandler(cartSvc, catalogSvc, logger),
		Checkout:       handlerhttp.NewCheckoutHandler(checkoutSvc, logger),
		Creator:        handlerhttp.NewCreatorHandler(creatorSvc, logger),
		Health:         healthHandler,
		Logger:         logger,
		CORS:           corsCfg,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		TracingEnabled: cfg.Tracing.Enabled,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
	})

	a.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return a, nil
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	return a.Shutdown()
}

// Shutdown stops the HTTP server and closes every connection.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("http shutdown: %w", err)
	}

	if err := a.producer.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing kafka producer: %w", err)
	}

	a.pgPool.Close()

	if err := a.redis.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing redis client: %w", err)
	}

	if a.tracingShutdown != nil {
		if err := a.tracingShutdown(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("tracer shutdown: %w", err)
		}
	}

	a.logger.Info("shutdown complete")
	return firstErr
}
