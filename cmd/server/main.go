package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"skillmarket/internal/api/routes"
	"skillmarket/internal/config"
	"skillmarket/internal/core/jobs"
	"skillmarket/internal/core/reviews"
	"skillmarket/internal/events"
	"skillmarket/internal/logging"
	"skillmarket/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting SkillMarket API", map[string]interface{}{
		"host": cfg.Server.Host,
		"port": cfg.Server.Port,
	})

	ctx := context.Background()

	// Apply schema migrations
	if cfg.Database.MigrateOnStart {
		if err := storage.Migrate(cfg.Database.URL); err != nil {
			logger.Fatal("Failed to apply migrations", map[string]interface{}{"error": err.Error()})
		}
		logger.Info("Schema migrations applied")
	}

	// Connect to postgres
	pool, err := storage.NewPostgresPool(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to postgres", map[string]interface{}{"error": err.Error()})
	}
	defer pool.Close()

	// Connect to redis for domain events; the service runs fine without it
	var rdb *redis.Client
	var publisher events.Publisher
	if cfg.Redis.Enabled {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			logger.Fatal("Invalid redis URL", map[string]interface{}{"error": err.Error()})
		}
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		opts.DB = cfg.Redis.DB
		rdb = redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, cfg.Redis.Timeout)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("Redis unreachable, domain events disabled", map[string]interface{}{"error": err.Error()})
			rdb = nil
		} else {
			publisher = events.NewRedisPublisher(rdb)
		}
		cancel()
	}

	// Wire stores and domain services
	jobStore := storage.NewJobStore(pool)
	userStore := storage.NewUserStore(pool)
	reviewStore := storage.NewReviewStore(pool)

	engine := jobs.NewEngine(jobStore, userStore, publisher)
	aggregator := reviews.NewAggregator(reviewStore, publisher)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	routes.SetupRoutes(e, routes.Deps{
		Config:     cfg,
		Engine:     engine,
		Aggregator: aggregator,
		Users:      userStore,
		Pool:       pool,
		Redis:      rdb,
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		if rdb != nil {
			if err := rdb.Close(); err != nil {
				logger.Error("Error closing redis client", map[string]interface{}{"error": err.Error()})
			}
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}
