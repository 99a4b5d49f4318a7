package usecases

import (
	"context"
	"fmt"
	"sort"

	"github.com/mfarias/rutasur/internal/core/domain"
	"github.com/mfarias/rutasur/internal/core/ports"
)

// PositionsService serves the raw telemetry history. It re-reads the source
// on every call so edits to the backing file show up without a restart.
type PositionsService struct {
	source ports.TelemetrySource
}

// NewPositionsService creates a new PositionsService.
func NewPositionsService(source ports.TelemetrySource) *PositionsService {
	return &PositionsService{source: source}
}

// History returns the full telemetry batch in chronological order.
func (s *PositionsService) History(ctx context.Context) ([]domain.TelemetryRecord, error) {
	return s.source.Load(ctx)
}

// LatestFirst returns the telemetry batch newest-first with the display
// address filled in. Records whose messageId does not parse sort as sequence
// zero, so they land at the end; ties keep their relative order.
func (s *PositionsService) LatestFirst(ctx context.Context) ([]domain.TelemetryRecord, error) {
	records, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.TelemetryRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].SequenceID()
		b, _ := out[j].SequenceID()
		return a > b
	})

	for i := range out {
		out[i].PositionStatus.FullAddress = fullAddress(out[i].PositionStatus)
	}
	return out, nil
}

// fullAddress renders the display address. Empty segments keep their slot so
// the separator count is stable for the viewer.
func fullAddress(ps domain.PositionStatus) string {
	return fmt.Sprintf("%s, %s, %s", ps.Street, ps.City, ps.State)
}
