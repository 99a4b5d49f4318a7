// Package ors calls the openrouteservice directions API.
package ors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mfarias/rutasur/internal/core/domain"
)

// Client resolves driving directions against an openrouteservice deployment.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a directions client. timeout bounds each request.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []domain.Coordinate `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Directions fetches the driving polyline between two waypoints. The wire
// format is longitude-first on both the query string and the response
// geometry; the response coordinates are returned untouched.
func (c *Client) Directions(ctx context.Context, start, end domain.GeoPoint) (domain.Polyline, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("start", formatPoint(start))
	q.Set("end", formatPoint(end))

	endpoint := c.baseURL + "/v2/directions/driving-car?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build directions request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("directions request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read directions response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("directions request returned %d: %s", resp.StatusCode, body)
	}

	var parsed directionsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse directions response: %w", err)
	}
	if len(parsed.Features) == 0 || len(parsed.Features[0].Geometry.Coordinates) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoRouteGeometry, body)
	}

	return parsed.Features[0].Geometry.Coordinates, nil
}

// formatPoint renders "lng,lat" with the shortest exact decimal form, so
// -72.94 stays "-72.94" rather than "-72.940000".
func formatPoint(p domain.GeoPoint) string {
	return strconv.FormatFloat(p.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}
