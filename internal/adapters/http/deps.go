package http

import (
	"github.com/nats-io/nats.go"

	"github.com/mfarias/rutasur/internal/adapters/valkey"
	"github.com/mfarias/rutasur/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Catalog   *usecases.CatalogService
	Playback  *usecases.PlaybackService
	Positions *usecases.PositionsService
	NATS      *nats.Conn
	Cache     *valkey.Cache
	StaticDir string
}
