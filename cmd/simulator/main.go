package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	natsadapter "github.com/mfarias/rutasur/internal/adapters/nats"
	"github.com/mfarias/rutasur/internal/adapters/ors"
	"github.com/mfarias/rutasur/internal/adapters/telemetryfile"
	"github.com/mfarias/rutasur/internal/adapters/valkey"
	"github.com/mfarias/rutasur/internal/core/ports"
	"github.com/mfarias/rutasur/internal/core/usecases"
	"github.com/mfarias/rutasur/internal/pkg/config"
	"github.com/mfarias/rutasur/internal/pkg/logging"
	"github.com/mfarias/rutasur/internal/pkg/metrics"
)

// The simulator drives a fake vehicle over the whole catalog and publishes
// each step to NATS, where the API's WebSocket relay picks it up.
func main() {
	cfg, err := config.Load("rutasur-simulator")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// NATS is the whole point here, so its absence is fatal
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer publisher.Close()

	// Cache makes the second catalog build (after the API's) free
	var cacheSvc ports.CacheService
	if cache, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable, directions will not be cached", "error", err)
	} else {
		cacheSvc = cache
		defer cache.Close()
	}

	defs, err := config.LoadRouteDefinitions(cfg.Fleet.RoutesFile)
	if err != nil {
		log.Fatalf("route definitions: %v", err)
	}

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
	if catalog.Len() == 0 {
		log.Fatal("no routes resolved, nothing to simulate")
	}

	playback := usecases.NewPlaybackService(catalog)

	slog.Info("simulator starting",
		"vehicle", cfg.Fleet.VehicleID,
		"cycle_points", playback.Len(),
		"interval_seconds", cfg.Simulator.IntervalSeconds)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(cfg.Simulator.IntervalSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			coord, err := playback.Next()
			if err != nil {
				log.Fatalf("playback: %v", err)
			}
			if err := publisher.PublishLivePosition(ctx, cfg.Fleet.VehicleID, coord); err != nil {
				slog.Warn("publish failed", "error", err)
				continue
			}
			metrics.LivePositionsPublished.Inc()

		case sig := <-quit:
			slog.Info("simulator stopping", "signal", sig.String())
			return
		}
	}
}
