package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/mfarias/rutasur/internal/core/domain"
)

// SubjectLive is the subject prefix carrying simulated vehicle positions.
// The WebSocket relay subscribes to "fleet.live.>".
const SubjectLive = "fleet.live."

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS, enables JetStream and ensures the fleet
// streams exist.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	streams := []nats.StreamConfig{
		{
			Name:      "LIVE_POSITIONS",
			Subjects:  []string{"fleet.live.>"},
			Retention: nats.LimitsPolicy,
			MaxAge:    1 * time.Hour,
			Storage:   nats.FileStorage,
		},
		{
			Name:      "FLEET_EVENTS",
			Subjects:  []string{"fleet.catalog.>"},
			Retention: nats.InterestPolicy,
			MaxAge:    24 * time.Hour,
			Storage:   nats.FileStorage,
		},
	}

	for _, cfg := range streams {
		if _, err := js.AddStream(&cfg); err != nil {
			// Stream may already exist — try update
			if _, err := js.UpdateStream(&cfg); err != nil {
				return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
			}
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

type livePositionEvent struct {
	Vehicle     string            `json:"vehicle"`
	Coordinates domain.Coordinate `json:"coordinates"`
	Timestamp   time.Time         `json:"ts"`
}

// PublishLivePosition emits one playback step for a simulated vehicle.
func (p *Publisher) PublishLivePosition(ctx context.Context, vehicleID string, coord domain.Coordinate) error {
	data, err := json.Marshal(livePositionEvent{
		Vehicle:     vehicleID,
		Coordinates: coord,
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = p.js.Publish(SubjectLive+vehicleID, data)
	return err
}

// PublishCatalogBuilt announces a finished catalog build with the resolved
// route names.
func (p *Publisher) PublishCatalogBuilt(ctx context.Context, names []string) error {
	data, err := json.Marshal(map[string]any{
		"routes": names,
		"ts":     time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	_, err = p.js.Publish("fleet.catalog.built", data)
	return err
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
