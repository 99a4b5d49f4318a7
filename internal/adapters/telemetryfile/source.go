// Package telemetryfile reads the fleet telemetry history from a JSON file.
package telemetryfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/mfarias/rutasur/internal/core/domain"
)

// Source loads telemetry records from a JSON history file. The file is read
// again on every Load, so replacing it on disk takes effect immediately.
type Source struct {
	path string
}

// New creates a Source for the given file path.
func New(path string) *Source {
	return &Source{path: path}
}

// batch is the envelope some exports wrap their records in.
type batch struct {
	Data []json.RawMessage `json:"data"`
}

// Load reads and flattens the history file. The top level must be a JSON
// array; each element is either a record or a {"data": [...]} batch of
// records. Elements that are neither are logged and dropped. The flattened
// records come back sorted by messageId ascending unless most ids fail to
// parse, in which case file order is kept.
func (s *Source) Load(ctx context.Context) ([]domain.TelemetryRecord, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read telemetry file: %w", err)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("parse telemetry file %s: %w", s.path, err)
	}

	var records []domain.TelemetryRecord
	for i, element := range elements {
		var b batch
		if err := json.Unmarshal(element, &b); err == nil && b.Data != nil {
			for j, item := range b.Data {
				var rec domain.TelemetryRecord
				if err := json.Unmarshal(item, &rec); err != nil {
					slog.Warn("skipping malformed batched record",
						"element", i, "item", j, "error", err)
					continue
				}
				records = append(records, rec)
			}
			continue
		}

		var rec domain.TelemetryRecord
		if err := json.Unmarshal(element, &rec); err != nil {
			slog.Warn("skipping malformed telemetry element", "element", i, "error", err)
			continue
		}
		records = append(records, rec)
	}

	sortChronological(records)
	return records, nil
}

// sortChronological orders records by messageId ascending, treating ids that
// do not parse as zero. If parseable ids are not the majority the sort is
// skipped entirely and file order stands.
func sortChronological(records []domain.TelemetryRecord) {
	parseable := 0
	for _, r := range records {
		if _, ok := r.SequenceID(); ok {
			parseable++
		}
	}
	if parseable*2 < len(records) {
		slog.Warn("most message ids are not numeric, keeping file order",
			"parseable", parseable, "total", len(records))
		return
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, _ := records[i].SequenceID()
		b, _ := records[j].SequenceID()
		return a < b
	})
}
