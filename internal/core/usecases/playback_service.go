package usecases

import (
	"sync/atomic"

	"github.com/mfarias/rutasur/internal/core/domain"
	"github.com/mfarias/rutasur/internal/pkg/metrics"
)

// PlaybackService simulates a vehicle driving the whole catalog. Every call
// hands out the next vertex of the flattened coordinate cycle; the cursor is
// shared by all clients and wraps around forever.
type PlaybackService struct {
	coords []domain.Coordinate
	cursor atomic.Uint64
}

// NewPlaybackService creates a PlaybackService over the catalog's flattened
// coordinates. The snapshot is taken once; later catalog mutations are not
// expected nor observed.
func NewPlaybackService(catalog *domain.Catalog) *PlaybackService {
	return &PlaybackService{coords: catalog.Coordinates()}
}

// Next advances the shared cursor and returns the coordinate it passed over.
// Concurrent callers each receive a distinct step.
func (s *PlaybackService) Next() (domain.Coordinate, error) {
	if len(s.coords) == 0 {
		return domain.Coordinate{}, domain.ErrEmptyCatalog
	}
	idx := s.cursor.Add(1) - 1
	metrics.PlaybackSteps.Inc()
	return s.coords[idx%uint64(len(s.coords))], nil
}

// Len returns the number of coordinates in the playback cycle.
func (s *PlaybackService) Len() int { return len(s.coords) }
