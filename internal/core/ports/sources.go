package ports

import (
	"context"

	"github.com/mfarias/rutasur/internal/core/domain"
)

// TelemetrySource loads the full telemetry batch, flattened and in
// chronological order. Implementations re-read the backing source on every
// call; the records themselves are immutable.
type TelemetrySource interface {
	Load(ctx context.Context) ([]domain.TelemetryRecord, error)
}

// DirectionsProvider resolves a drivable path between two waypoints by
// consulting an external routing service.
type DirectionsProvider interface {
	Directions(ctx context.Context, start, end domain.GeoPoint) (domain.Polyline, error)
}
