package usecases_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mfarias/rutasur/internal/core/usecases"
)

func TestPositionsService_LatestFirst_Order(t *testing.T) {
	source := fixedSource(
		record("10", "A", "CA", "SA", 1, 1),
		record("30", "B", "CB", "SB", 2, 2),
		record("20", "C", "CC", "SC", 3, 3),
	)

	svc := usecases.NewPositionsService(source)
	records, err := svc.LatestFirst(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := []string{records[0].MessageID, records[1].MessageID, records[2].MessageID}
	want := []string{"30", "20", "10"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v newest-first, got %v", want, got)
		}
	}
}

func TestPositionsService_LatestFirst_MalformedIDSortsLast(t *testing.T) {
	source := fixedSource(
		record("abc", "A", "CA", "SA", 1, 1),
		record("5", "B", "CB", "SB", 2, 2),
		record("", "C", "CC", "SC", 3, 3),
	)

	svc := usecases.NewPositionsService(source)
	records, err := svc.LatestFirst(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if records[0].MessageID != "5" {
		t.Errorf("expected the numeric id first, got %q", records[0].MessageID)
	}
	// Both malformed ids sort as zero and keep their relative order.
	if records[1].MessageID != "abc" || records[2].MessageID != "" {
		t.Errorf("expected malformed ids last in input order, got %q then %q",
			records[1].MessageID, records[2].MessageID)
	}
}

func TestPositionsService_LatestFirst_FullAddress(t *testing.T) {
	source := fixedSource(record("1", "RUTA 5", "", "LOS LAGOS", -41.47, -72.94))

	svc := usecases.NewPositionsService(source)
	records, err := svc.LatestFirst(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := records[0].PositionStatus.FullAddress; got != "RUTA 5, , LOS LAGOS" {
		t.Errorf("expected %q, got %q", "RUTA 5, , LOS LAGOS", got)
	}
}

func TestPositionsService_History_PreservesSensorPayloads(t *testing.T) {
	rec := record("1", "A", "CA", "SA", 1, 1)
	rec.ReeferStatus = json.RawMessage(`{"setpoint":-18.5,"mode":"frozen"}`)
	source := fixedSource(rec)

	svc := usecases.NewPositionsService(source)
	records, err := svc.History(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(records[0].ReeferStatus) != `{"setpoint":-18.5,"mode":"frozen"}` {
		t.Errorf("sensor payload altered: %s", records[0].ReeferStatus)
	}
	if records[0].PositionStatus.FullAddress != "" {
		t.Errorf("history must not synthesize fullAddress, got %q",
			records[0].PositionStatus.FullAddress)
	}
}
