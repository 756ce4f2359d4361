package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rafaelleal24/stockledger/internal/adapters/config"
	"github.com/rafaelleal24/stockledger/internal/adapters/http"
	"github.com/rafaelleal24/stockledger/internal/adapters/http/controllers"
	"github.com/rafaelleal24/stockledger/internal/adapters/memory"
	"github.com/rafaelleal24/stockledger/internal/adapters/outbox"
	"github.com/rafaelleal24/stockledger/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/stockledger/internal/adapters/redis"
	"github.com/rafaelleal24/stockledger/internal/adapters/seed"
	"github.com/rafaelleal24/stockledger/internal/core/domain"
	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/port"
	"github.com/rafaelleal24/stockledger/internal/core/service"
)

// @title       Stock Ledger API
// @version     1.0
// @description Inventory catalog, sales and purchase orders

// @host     localhost:8080
// @BasePath /

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// run wires the ledger and serves until SIGINT or SIGTERM.
func run() error {
	cfg := config.NewConfig()
	if err := logger.Initialize(logger.Options{
		Endpoint:     cfg.Logger.Endpoint,
		ServiceName:  cfg.Logger.ServiceName,
		Level:        logger.ParseLevel(cfg.Logger.Level),
		IsProduction: cfg.Logger.IsProduction,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ledger state
	settingsDefaults := domain.DefaultSettings()
	settingsDefaults.LowStockThreshold = cfg.Ledger.LowStockThreshold
	if domain.IsSupportedCurrency(cfg.Ledger.Currency) {
		settingsDefaults.Currency = cfg.Ledger.Currency
	}

	productRepository := memory.NewProductRepository()
	orderRepository := memory.NewOrderRepository()
	userRepository := memory.NewUserRepository()
	settingsRepository := memory.NewSettingsRepository(settingsDefaults)
	txManager := memory.NewTransactionManager()

	data, err := seed.Load(cfg.Ledger.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to load seed data from %s: %w", cfg.Ledger.SeedFile, err)
	}
	if err := seed.Apply(ctx, data, seed.Targets{
		Products: productRepository,
		Orders:   orderRepository,
		Users:    userRepository,
	}); err != nil {
		return fmt.Errorf("failed to seed ledger: %w", err)
	}

	healthCheckers := []controllers.HealthChecker{
		{Name: "ledger", Check: func(ctx context.Context) error {
			_, err := productRepository.GetAll(ctx)
			return err
		}},
	}

	// idempotency caches and rate limiter: shared through redis when configured
	var (
		saleIdempotencyCache port.CachePort[service.IdempotencyEntry[domain.Sale]]
		poIdempotencyCache   port.CachePort[service.IdempotencyEntry[domain.PurchaseOrder]]
		rateLimiter          port.RateLimiter
	)
	if cfg.Redis.Enabled() {
		redisClient, err := redis.NewConnection(cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer redisClient.Close()
		logger.Info(ctx, "Connected to Redis", nil)

		saleIdempotencyCache = redis.NewCache[service.IdempotencyEntry[domain.Sale]](redisClient, "idempotency:sale")
		poIdempotencyCache = redis.NewCache[service.IdempotencyEntry[domain.PurchaseOrder]](redisClient, "idempotency:purchase_order")
		rateLimiter = redis.NewRateLimiter(redisClient)
		healthCheckers = append(healthCheckers, controllers.HealthChecker{Name: "redis", Check: redisClient.HealthCheck})
	} else {
		saleIdempotencyCache = memory.NewCache[service.IdempotencyEntry[domain.Sale]]("idempotency:sale")
		poIdempotencyCache = memory.NewCache[service.IdempotencyEntry[domain.PurchaseOrder]]("idempotency:purchase_order")
		rateLimiter = memory.NewRateLimiter()
	}

	// events: relayed to rabbitmq through the outbox when configured
	var (
		sinks         []port.EventSink
		outboxHandler *outbox.Handler
	)
	if cfg.RabbitMQ.Enabled() {
		broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
		if err != nil {
			return fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		defer broker.Close()
		logger.Info(ctx, "Connected to RabbitMQ", nil)

		outboxRepository := memory.NewOutboxRepository()
		sinks = append(sinks, outbox.NewRecorder(outboxRepository))
		outboxHandler = outbox.NewHandler(outboxRepository, broker, cfg.Outbox)
		healthCheckers = append(healthCheckers, controllers.HealthChecker{Name: "rabbitmq", Check: broker.HealthCheck})
	}
	events := service.NewEventFanout(sinks...)

	// services
	idem := cfg.Idempotency
	catalogService := service.NewCatalogService(productRepository, settingsRepository, events, txManager)
	orderBookService := service.NewOrderBookService(
		orderRepository,
		productRepository,
		catalogService,
		events,
		txManager,
		service.NewIdempotencyService(saleIdempotencyCache, idem.TTL, idem.PollInterval, idem.PollTimeout),
		service.NewIdempotencyService(poIdempotencyCache, idem.TTL, idem.PollInterval, idem.PollTimeout),
	)
	queryService := service.NewQueryService(productRepository, orderRepository)

	router := http.NewRouter(http.Controllers{
		Health:        controllers.NewHealthController(healthCheckers),
		Product:       controllers.NewProductController(catalogService, queryService),
		Sale:          controllers.NewSaleController(orderBookService, queryService),
		PurchaseOrder: controllers.NewPurchaseOrderController(orderBookService, queryService),
		Dashboard:     controllers.NewDashboardController(service.NewDashboardService(productRepository, orderRepository)),
		User: controllers.NewUserController(
			service.NewUserService(userRepository),
			service.NewSettingsService(settingsRepository),
		),
	}, rateLimiter, cfg.RateLimit)

	g, gctx := errgroup.WithContext(ctx)

	if outboxHandler != nil {
		g.Go(func() error {
			logger.Info(gctx, "Outbox handler started", map[string]any{
				"interval":   cfg.Outbox.Interval.String(),
				"batch_size": cfg.Outbox.BatchSize,
			})
			outboxHandler.Start(gctx)
			// relay what the last requests recorded
			published := outboxHandler.Drain(context.WithoutCancel(gctx))
			logger.Info(gctx, "Outbox handler stopped", map[string]any{"published_on_shutdown": published})
			return nil
		})
	}

	g.Go(func() error {
		logger.Info(gctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
		return router.ListenAndServe(gctx, cfg.HTTP)
	})

	err = g.Wait()
	logger.Info(context.Background(), "Shutting down", nil)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
