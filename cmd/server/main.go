package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/kehilianouar/gymdada-api/internal/api"
	"github.com/kehilianouar/gymdada-api/internal/cart"
	"github.com/kehilianouar/gymdada-api/internal/config"
	"github.com/kehilianouar/gymdada-api/internal/events"
	"github.com/kehilianouar/gymdada-api/internal/repository/postgres"
	"github.com/kehilianouar/gymdada-api/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting store API server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Initialize database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	repos := postgres.NewRepositories(db, logger)

	// Cart snapshot store: Redis when configured, in-memory otherwise
	var snaps cart.SnapshotStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			cancel()
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cancel()
		defer rdb.Close()
		snaps = cart.NewRedisSnapshotStore(rdb, cfg.Cart.SnapshotTTL)
		logger.Info("Cart snapshots stored in Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		snaps = cart.NewMemorySnapshotStore()
		logger.Warn("REDIS_ADDR not set, cart snapshots are in-memory only")
	}
	carts := cart.NewManager(snaps, logger)

	// Order event publisher (no-op when AMQP_URL is unset)
	publisher := events.NewPublisher(cfg.AMQP.URL, logger)
	defer publisher.Close()

	// Initialize services
	settingsSvc := service.NewSettingsService(repos.Settings, logger)
	svcs := &api.Services{
		Settings: settingsSvc,
		Checkout: service.NewCheckoutService(repos, settingsSvc, publisher, logger),
		Orders:   service.NewOrderService(repos, publisher, logger),
	}

	// Initialize router
	router := api.NewRouter(cfg, repos, carts, svcs, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
