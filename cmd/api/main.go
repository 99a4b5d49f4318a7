package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mfarias/rutasur/internal/adapters/http"
	natsadapter "github.com/mfarias/rutasur/internal/adapters/nats"
	"github.com/mfarias/rutasur/internal/adapters/ors"
	"github.com/mfarias/rutasur/internal/adapters/telemetryfile"
	"github.com/mfarias/rutasur/internal/adapters/valkey"
	"github.com/mfarias/rutasur/internal/core/ports"
	"github.com/mfarias/rutasur/internal/core/usecases"
	"github.com/mfarias/rutasur/internal/pkg/config"
	"github.com/mfarias/rutasur/internal/pkg/logging"
	"github.com/mfarias/rutasur/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("rutasur-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing
	if cfg.Tracing.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.TempoAddr)
		if err != nil {
			slog.Warn("tracing init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Cache
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable, directions will not be cached", "error", err)
		cache = nil
	} else {
		cacheSvc = cache
		defer cache.Close()
	}

	// NATS
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
		publisher = nil
	} else {
		defer publisher.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
		natsConn = nil
	}

	// Route definitions
	defs, err := config.LoadRouteDefinitions(cfg.Fleet.RoutesFile)
	if err != nil {
		log.Fatalf("route definitions: %v", err)
	}

	// Catalog build: one startup pass, per-route failures are contained
	source := telemetryfile.New(cfg.Fleet.TelemetryFile)
	provider := ors.NewClient(cfg.ORS.BaseURL, cfg.ORS.APIKey,
		time.Duration(cfg.ORS.TimeoutSeconds)*time.Second)

	builder := usecases.NewCatalogBuilder(source, provider, cacheSvc,
		time.Duration(cfg.Resolver.CacheTTLSeconds)*time.Second,
		cfg.Resolver.Concurrency)

	catalog, err := builder.Build(ctx, defs)
	if err != nil {
		log.Fatalf("catalog build: %v", err)
	}

	if publisher != nil {
		if err := publisher.PublishCatalogBuilt(ctx, catalog.Names()); err != nil {
			slog.Warn("catalog event publish failed", "error", err)
		}
	}

	deps := &http.Dependencies{
		Catalog:   usecases.NewCatalogService(catalog),
		Playback:  usecases.NewPlaybackService(catalog),
		Positions: usecases.NewPositionsService(source),
		NATS:      natsConn,
		Cache:     cache,
		StaticDir: cfg.Server.StaticDir,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "RutaSur API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "routes", catalog.Len())
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
