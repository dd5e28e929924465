// Package app wires the menu service together and runs it.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jalmosquera/digitalletter/pkg/health"
	"github.com/jalmosquera/digitalletter/pkg/httpclient"
	pkgkafka "github.com/jalmosquera/digitalletter/pkg/kafka"
	"github.com/jalmosquera/digitalletter/pkg/middleware"

	"github.com/jalmosquera/digitalletter/internal/cart"
	"github.com/jalmosquera/digitalletter/internal/cart/redisstore"
	"github.com/jalmosquera/digitalletter/internal/checkout"
	"github.com/jalmosquera/digitalletter/internal/config"
	"github.com/jalmosquera/digitalletter/internal/event"
	handler "github.com/jalmosquera/digitalletter/internal/handler/http"
	"github.com/jalmosquera/digitalletter/internal/notify"
	"github.com/jalmosquera/digitalletter/internal/order"
	"github.com/jalmosquera/digitalletter/internal/settings"
)

// App wires together all dependencies and runs the menu service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *redis.Client
	producer   *pkgkafka.Producer
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Redis holds the cart snapshots.
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("connected to Redis",
		slog.String("addr", cfg.RedisAddr),
		slog.Int("db", cfg.RedisDB),
	)

	// Kafka is optional: without brokers, domain events are dropped.
	var producer *pkgkafka.Producer
	if cfg.KafkaEnabled() {
		producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("kafka disabled, domain events will not be published")
	}

	// Build the dependency graph.
	cartTTL := time.Duration(cfg.CartTTL) * time.Hour
	store := redisstore.New(rdb, cartTTL)
	eventProducer := event.NewProducer(producer, logger)
	cartService := cart.NewService(store, eventProducer, logger)

	// Order submission never retries: a duplicate POST is a duplicate order.
	// The circuit breaker still shields the backend during outages.
	orderClient := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpclient.NoRetryConfig()),
		httpclient.DefaultCircuitBreakerConfig("orders-backend"),
		logger,
	)
	gateway := order.NewGateway(orderClient, cfg.OrdersAPIURL, order.NewBearerToken(cfg.OrdersAPIToken), logger)

	dispatcher := notify.NewDispatcher(cfg.WhatsAppHost, notify.NewLogOpener(logger), logger)
	provider := settings.NewStatic(cfg.WhatsAppPhone)

	checkoutService := checkout.NewService(cartService, gateway, dispatcher, provider, eventProducer, logger)

	// Health checks.
	healthHandler := health.NewHandler()
	healthHandler.Register("redis", func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	})
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	// HTTP router.
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.AllowedOrigins
	router := handler.NewRouter(
		handler.NewCartHandler(cartService, logger),
		handler.NewCheckoutHandler(checkoutService, logger),
		healthHandler,
		corsCfg,
		logger,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		rdb:        rdb,
		producer:   producer,
		httpServer: httpServer,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
	}

	if err := a.rdb.Close(); err != nil {
		a.logger.Error("redis close error", slog.String("error", err.Error()))
	}

	a.logger.Info("application shutdown complete")
	return nil
}
