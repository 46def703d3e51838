package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"coffeeapi/internal/config"
	handlers "coffeeapi/internal/http/handler"
	"coffeeapi/internal/http/middleware"
	"coffeeapi/internal/logger"
	"coffeeapi/internal/model"
	"coffeeapi/internal/otel"
	"coffeeapi/internal/repository/backend"
	"coffeeapi/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Coffee API
// @version 1.0
// @description CRUD service for a collection of coffees.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid APP_TIMEZONE %q: %v", cfg.Timezone, err)
	}

	zl, err := logger.New(os.Stdout, cfg.LogLevel, loc)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, zl)
	if err != nil {
		zl.Fatal("tracing_init_failed", zap.Error(err))
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	repo, closeStore, err := backend.Open(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("store_open_failed", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	defer closeStore()

	coffeeSvc := service.NewCoffeeService(repo)

	if cfg.Store.SeedDefaults {
		n, err := coffeeSvc.Seed(ctx, model.DefaultCoffeeNames)
		if err != nil {
			zl.Fatal("seed_failed", zap.Error(err))
		}
		zl.Info("seed_complete", zap.Int("seeded", n))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		zl.Fatal("metrics_init_failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:               "coffeeapi",
		Immutable:             true,
		ErrorHandler:          handlers.ErrorHandler(zl),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Logger(zl))

	handlers.RegisterRoutes(app, repo, coffeeSvc)
	app.Get(middleware.MetricsPath, middleware.MetricsHandler(reg))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", handlers.Swagger(cfg.AppHost))

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(sctx); err != nil {
			zl.Error("server_shutdown_failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	zl.Info("server_starting", zap.String("addr", addr), zap.String("backend", cfg.Store.Backend))
	if err := app.Listen(addr); err != nil {
		zl.Error("server_failed", zap.Error(err))
		return
	}
	zl.Info("server_stopped")
}
