package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rutasur",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rutasur",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rutasur",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Fleet-specific metrics
	TelemetryRecordsLoaded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rutasur",
		Subsystem: "fleet",
		Name:      "telemetry_records_loaded_total",
		Help:      "Total telemetry records loaded from the input source",
	})

	RoutesResolved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rutasur",
		Subsystem: "fleet",
		Name:      "routes_resolved_total",
		Help:      "Total route definitions resolved into polylines",
	})

	RouteResolutionFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rutasur",
		Subsystem: "fleet",
		Name:      "route_resolution_failures_total",
		Help:      "Total route definitions that could not be resolved",
	}, []string{"reason"})

	ProviderRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rutasur",
		Subsystem: "fleet",
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of routing-provider directions calls",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	})

	PlaybackSteps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rutasur",
		Subsystem: "fleet",
		Name:      "playback_steps_total",
		Help:      "Total live playback cursor advances served",
	})

	LivePositionsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rutasur",
		Subsystem: "fleet",
		Name:      "live_positions_published_total",
		Help:      "Total simulated live positions published to the broker",
	})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "rutasur",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rutasur",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rutasur",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
