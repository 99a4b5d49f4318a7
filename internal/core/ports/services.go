package ports

import (
	"context"
	"time"

	"github.com/mfarias/rutasur/internal/core/domain"
)

// CacheService provides read-through caching. A nil CacheService is valid
// everywhere it is accepted; callers fall back to the underlying source.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher publishes fleet events to a message broker.
type EventPublisher interface {
	PublishLivePosition(ctx context.Context, vehicleID string, coord domain.Coordinate) error
	PublishCatalogBuilt(ctx context.Context, names []string) error
}
