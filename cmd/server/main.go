// Package main is the entry point for the payments service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payments/internal/config"
	"payments/internal/handlers"
	applogger "payments/internal/logger"
	"payments/internal/middleware"
	"payments/internal/models"
	"payments/internal/repositories"
	"payments/internal/routes"
	"payments/internal/services/notification"
	"payments/internal/services/transfer"
	"payments/internal/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := applogger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := telemetry.NewMetrics(registry)

	accounts := repositories.NewAccountRepository()
	for id, balance := range cfg.SeedAccounts {
		if err := accounts.Create(&models.Account{ID: id, Balance: balance}); err != nil {
			zlog.Fatal("failed to seed account", zap.String("account_id", id), zap.Error(err))
		}
	}
	zlog.Info("accounts seeded", zap.Int("count", len(cfg.SeedAccounts)))

	sinks := notification.Multi{notification.NewService(zlog)}
	healthChecks := map[string]handlers.HealthCheckFunc{}

	var redisClient *redis.Client
	if cfg.RedisEnabled {
		redisClient = notification.NewRedisClient(&notification.RedisConfig{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		publisher := notification.NewRedisPublisher(redisClient, cfg.NotifyChannel, cfg.NotifyTimeout)
		if err := publisher.HealthCheck(context.Background()); err != nil {
			zlog.Warn("redis unreachable at startup", zap.Error(err))
		}
		sinks = append(sinks, publisher)
		healthChecks["redis"] = publisher.HealthCheck
	}

	notifier := notification.NewAsync(sinks, cfg.NotifyQueueSize, zlog, metrics)

	locker, err := transfer.NewLocker(cfg.LockMode)
	if err != nil {
		zlog.Fatal("invalid lock mode", zap.Error(err))
	}
	transferService := transfer.NewService(accounts, notifier, locker, zlog, metrics)

	app := fiber.New(fiber.Config{
		AppName:      "payments",
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	})

	app.Use(recover.New())
	app.Use(middleware.Prometheus(metrics))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,DELETE",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	if cfg.RateLimitMax > 0 {
		app.Use("/v1", limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	routes.SetupRoutes(app, routes.Dependencies{
		Accounts:     accounts,
		Transfers:    transferService,
		Gatherer:     registry,
		HealthChecks: healthChecks,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Error("server stopped", zap.Error(err))
		}
	}()
	zlog.Info("payments service started",
		zap.String("port", cfg.Port),
		zap.String("lock_mode", locker.Mode()),
		zap.Bool("redis", cfg.RedisEnabled),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		zlog.Error("failed to shut down http server", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := notifier.Close(ctx); err != nil {
		zlog.Warn("pending notifications dropped", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zlog.Warn("failed to close redis client", zap.Error(err))
		}
	}
}
