package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/mfarias/rutasur/internal/core/domain"
)

// HistoryHandler returns the resolved route names in catalog order.
// Response shape is fixed for the map viewer: {"history": [name, ...]}.
func HistoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		names := deps.Catalog.Names()
		if names == nil {
			names = []string{}
		}
		return c.JSON(fiber.Map{"history": names})
	}
}

// TrackHandler returns the polyline for one named route as [[lng,lat], ...].
// Route names carry spaces and commas, so the path segment arrives
// percent-encoded and must be decoded before lookup.
func TrackHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			name = c.Params("name")
		}

		polyline, err := deps.Catalog.Track(name)
		if err != nil {
			if errors.Is(err, domain.ErrRouteNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "Ruta no encontrada"})
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"route": polyline})
	}
}

// LiveRouteHandler advances the shared playback cursor one step and returns
// the coordinate as {"coords": [lng, lat]}.
func LiveRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		coord, err := deps.Playback.Next()
		if err != nil {
			if errors.Is(err, domain.ErrEmptyCatalog) {
				return newError(c, 503, "empty_catalog", "no routes resolved, nothing to play back")
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(fiber.Map{"coords": coord})
	}
}

// PositionsHandler re-reads the telemetry source and returns the records
// newest-first with the derived fullAddress, wrapped as {"data": [...]}.
// A read failure answers with the legacy flat error shape.
func PositionsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		records, err := deps.Positions.LatestFirst(c.UserContext())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if records == nil {
			records = []domain.TelemetryRecord{}
		}
		return c.JSON(fiber.Map{"data": records})
	}
}

// ListRoutesHandler returns paginated route summaries.
func ListRoutesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summaries := deps.Catalog.Summaries()

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(summaries)
		if offset >= total {
			summaries = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			summaries = summaries[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: summaries, Pagination: pg})
	}
}

// GetRouteHandler returns a single route summary.
func GetRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name, err := url.PathUnescape(c.Params("name"))
		if err != nil {
			name = c.Params("name")
		}

		summary, err := deps.Catalog.Summary(name)
		if err != nil {
			if errors.Is(err, domain.ErrRouteNotFound) {
				return errNotFound(c, "route not found: "+name)
			}
			return errInternal(c, err.Error())
		}
		return c.JSON(summary)
	}
}
