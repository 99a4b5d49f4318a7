package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mfarias/rutasur/internal/core/domain"
	"github.com/mfarias/rutasur/internal/core/ports"
	"github.com/mfarias/rutasur/internal/pkg/geospatial"
	"github.com/mfarias/rutasur/internal/pkg/metrics"
)

// CatalogBuilder turns route definitions plus the telemetry history into a
// catalog of drivable polylines. It runs once at startup; a failed route is
// logged and skipped, never fatal.
type CatalogBuilder struct {
	source      ports.TelemetrySource
	provider    ports.DirectionsProvider
	cache       ports.CacheService // nil disables caching
	cacheTTL    time.Duration
	concurrency int
}

// NewCatalogBuilder creates a CatalogBuilder. cache may be nil.
func NewCatalogBuilder(source ports.TelemetrySource, provider ports.DirectionsProvider, cache ports.CacheService, cacheTTL time.Duration, concurrency int) *CatalogBuilder {
	if concurrency < 1 {
		concurrency = 1
	}
	return &CatalogBuilder{
		source:      source,
		provider:    provider,
		cache:       cache,
		cacheTTL:    cacheTTL,
		concurrency: concurrency,
	}
}

// MatchFirst scans records in order and returns the location of the first one
// whose position satisfies the predicate.
func MatchFirst(records []domain.TelemetryRecord, p domain.Predicate) (domain.GeoPoint, bool) {
	for _, r := range records {
		if p.Matches(r.PositionStatus) {
			return r.PositionStatus.Point(), true
		}
	}
	return domain.GeoPoint{}, false
}

// Build loads the telemetry history, locates each definition's endpoints and
// resolves the connecting polylines. Routes enter the catalog in definition
// order regardless of resolution order; definitions whose endpoints never
// appear in the history, or whose directions call fails, are skipped.
func (b *CatalogBuilder) Build(ctx context.Context, defs []domain.RouteDefinition) (*domain.Catalog, error) {
	records, err := b.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load telemetry: %w", err)
	}
	metrics.TelemetryRecordsLoaded.Add(float64(len(records)))

	results := make([]domain.Polyline, len(defs))
	sem := make(chan struct{}, b.concurrency)
	var wg sync.WaitGroup

	for i, def := range defs {
		start, okStart := MatchFirst(records, def.Start)
		end, okEnd := MatchFirst(records, def.End)
		if !okStart || !okEnd {
			slog.Warn("route endpoints not found in telemetry",
				"route", def.Name, "start_matched", okStart, "end_matched", okEnd)
			metrics.RouteResolutionFailures.WithLabelValues("endpoint_not_matched").Inc()
			continue
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(i int, name string, start, end domain.GeoPoint) {
			defer wg.Done()
			defer func() { <-sem }()

			polyline, err := b.directions(ctx, start, end)
			if err != nil {
				slog.Warn("route resolution failed", "route", name, "error", err)
				metrics.RouteResolutionFailures.WithLabelValues("provider_error").Inc()
				return
			}
			results[i] = polyline
		}(i, def.Name, start, end)
	}
	wg.Wait()

	catalog := domain.NewCatalog()
	for i, def := range defs {
		if results[i] == nil {
			continue
		}
		catalog.Put(def.Name, results[i])
		metrics.RoutesResolved.Inc()
		slog.Info("route resolved",
			"route", def.Name,
			"points", len(results[i]),
			"length_meters", pathLength(results[i]))
	}

	slog.Info("catalog built", "routes", catalog.Len(), "definitions", len(defs))
	return catalog, nil
}

func (b *CatalogBuilder) directions(ctx context.Context, start, end domain.GeoPoint) (domain.Polyline, error) {
	key := fmt.Sprintf("directions:%g,%g:%g,%g", start.Lon, start.Lat, end.Lon, end.Lat)

	if b.cache != nil {
		if raw, err := b.cache.Get(ctx, key); err == nil && raw != nil {
			var p domain.Polyline
			if err := json.Unmarshal(raw, &p); err == nil {
				metrics.CacheHits.WithLabelValues("directions").Inc()
				return p, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("directions").Inc()
	}

	timer := time.Now()
	polyline, err := b.provider.Directions(ctx, start, end)
	metrics.ProviderRequestDuration.Observe(time.Since(timer).Seconds())
	if err != nil {
		return nil, err
	}

	if b.cache != nil {
		if raw, err := json.Marshal(polyline); err == nil {
			if err := b.cache.Set(ctx, key, raw, b.cacheTTL); err != nil {
				slog.Warn("directions cache write failed", "key", key, "error", err)
			}
		}
	}
	return polyline, nil
}

func pathLength(p domain.Polyline) float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += geospatial.Haversine(p[i-1].Lat(), p[i-1].Lon(), p[i].Lat(), p[i].Lon())
	}
	return total
}
