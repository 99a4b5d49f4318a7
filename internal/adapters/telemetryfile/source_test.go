package telemetryfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mfarias/rutasur/internal/adapters/telemetryfile"
)

func writeHistory(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSource_Load_FlatRecords(t *testing.T) {
	path := writeHistory(t, `[
		{"messageId": "3", "positionStatus": {"latitude": -41.47, "longitude": -72.94, "street": "RUTA 5"}},
		{"messageId": "1", "positionStatus": {"latitude": -40.57, "longitude": -73.11, "street": "RUTA 215"}},
		{"messageId": "2", "positionStatus": {"latitude": -41.31, "longitude": -72.98, "street": "RUTA 225"}}
	]`)

	records, err := telemetryfile.New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"1", "2", "3"} {
		if records[i].MessageID != want {
			t.Errorf("position %d: expected id %s, got %s", i, want, records[i].MessageID)
		}
	}
}

func TestSource_Load_BatchedRecords(t *testing.T) {
	path := writeHistory(t, `[
		{"data": [
			{"messageId": "2", "positionStatus": {"latitude": 1, "longitude": 1, "street": "A"}},
			{"messageId": "1", "positionStatus": {"latitude": 2, "longitude": 2, "street": "B"}}
		]},
		{"messageId": "3", "positionStatus": {"latitude": 3, "longitude": 3, "street": "C"}}
	]`)

	records, err := telemetryfile.New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 flattened records, got %d", len(records))
	}
	if records[0].MessageID != "1" || records[2].MessageID != "3" {
		t.Errorf("expected ascending ids across batch boundaries, got %s..%s",
			records[0].MessageID, records[2].MessageID)
	}
}

func TestSource_Load_MalformedIDSortsFirst(t *testing.T) {
	path := writeHistory(t, `[
		{"messageId": "5", "positionStatus": {"latitude": 1, "longitude": 1, "street": "A"}},
		{"messageId": "oops", "positionStatus": {"latitude": 2, "longitude": 2, "street": "B"}},
		{"messageId": "2", "positionStatus": {"latitude": 3, "longitude": 3, "street": "C"}}
	]`)

	records, err := telemetryfile.New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// "oops" parses as sequence zero and lands ahead of every numeric id.
	if records[0].MessageID != "oops" {
		t.Errorf("expected the malformed id first, got %s", records[0].MessageID)
	}
	if records[1].MessageID != "2" || records[2].MessageID != "5" {
		t.Errorf("expected 2 then 5, got %s then %s", records[1].MessageID, records[2].MessageID)
	}
}

func TestSource_Load_MostlyMalformedKeepsFileOrder(t *testing.T) {
	path := writeHistory(t, `[
		{"messageId": "z", "positionStatus": {"latitude": 1, "longitude": 1, "street": "A"}},
		{"messageId": "9", "positionStatus": {"latitude": 2, "longitude": 2, "street": "B"}},
		{"messageId": "y", "positionStatus": {"latitude": 3, "longitude": 3, "street": "C"}}
	]`)

	records, err := telemetryfile.New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"z", "9", "y"} {
		if records[i].MessageID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, records[i].MessageID)
		}
	}
}

func TestSource_Load_SkipsMalformedElements(t *testing.T) {
	path := writeHistory(t, `[
		"not a record",
		{"messageId": "1", "positionStatus": {"latitude": 1, "longitude": 1, "street": "A"}},
		42
	]`)

	records, err := telemetryfile.New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].MessageID != "1" {
		t.Fatalf("expected the single valid record, got %d records", len(records))
	}
}

func TestSource_Load_TopLevelGarbageIsFatal(t *testing.T) {
	path := writeHistory(t, `{"this": "is not an array"}`)

	if _, err := telemetryfile.New(path).Load(context.Background()); err == nil {
		t.Fatal("expected an error for a non-array history file")
	}
}

func TestSource_Load_MissingFile(t *testing.T) {
	src := telemetryfile.New(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
