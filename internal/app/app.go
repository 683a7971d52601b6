// Package app wires the storefront's dependency graph and runs the
// HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jengamart/storefront/internal/backend"
	"github.com/jengamart/storefront/internal/checkout"
	"github.com/jengamart/storefront/internal/config"
	"github.com/jengamart/storefront/internal/event"
	handler "github.com/jengamart/storefront/internal/handler/http"
	redisrepo "github.com/jengamart/storefront/internal/repository/redis"
	"github.com/jengamart/storefront/internal/store"
	"github.com/jengamart/storefront/pkg/database"
	"github.com/jengamart/storefront/pkg/health"
	"github.com/jengamart/storefront/pkg/httpclient"
	pkgkafka "github.com/jengamart/storefront/pkg/kafka"
	"github.com/jengamart/storefront/pkg/middleware"
	"github.com/jengamart/storefront/pkg/tracing"
)

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	sessions   *checkout.SessionStore
	httpServer *http.Server

	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "storefront",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TraceSample,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	// Initialize Redis client.
	rdb, err := database.NewRedisClient(ctx, database.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Initialize Kafka producer.
	kafkaCfg := pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers)
	producer := pkgkafka.NewProducer(kafkaCfg, logger)
	logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))

	// Backend API client behind retries and a circuit breaker.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = time.Duration(cfg.BackendTimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.BackendMaxRetries

	cbCfg := httpclient.DefaultCircuitBreakerConfig("backend")
	cbCfg.FailureRatio = cfg.BreakerFailureRatio

	cbClient := httpclient.NewCircuitBreakerClient(httpclient.New(httpCfg), cbCfg, logger)
	backendClient := backend.New(cbClient, cfg.BackendURL, logger)

	// Build the dependency graph.
	eventProducer := event.NewProducer(producer, logger)
	cartStore := store.NewCartStore(backendClient, eventProducer, logger, cfg.Currency)
	wishlistRepo := redisrepo.NewWishlistRepository(rdb)
	wishlistStore := store.NewWishlistStore(wishlistRepo, cartStore, logger)

	sessions := checkout.NewSessionStore(time.Duration(cfg.SessionSweepMinutes) * time.Minute)
	checkoutService := checkout.NewService(sessions, cartStore, backendClient, eventProducer, logger, cfg.Currency)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	healthHandler.Register("kafka", func(ctx context.Context) error {
		return producer.Ping(ctx)
	})

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.CORSAllowedOrigins

	router := handler.NewRouter(handler.RouterDeps{
		Cart:          cartStore,
		Wishlist:      wishlistStore,
		Checkout:      checkoutService,
		Catalog:       backendClient,
		Auth:          backendClient,
		Orders:        backendClient,
		Media:         backendClient,
		Health:        healthHandler,
		Logger:        logger,
		TokenValidate: middleware.JWTValidator(cfg.JWTSecret),
		CORS:          corsCfg,
		RateLimitRPS:  cfg.RateLimitRPS,
		RateBurst:     cfg.RateLimitBurst,
		PprofCIDRs:    cfg.PprofCIDRs,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		rdb:            rdb,
		producer:       producer,
		sessions:       sessions,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	// Stop the checkout session sweep.
	a.sessions.Close()

	// Close Kafka producer.
	if err := a.producer.Close(); err != nil {
		a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
	}

	// Close Redis client.
	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	// Flush pending spans.
	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
