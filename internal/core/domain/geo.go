package domain

// GeoPoint represents a geographic coordinate (WGS 84), latitude first.
// This is the internal order; only the routing-provider boundary speaks
// longitude-first.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Coordinate is a single polyline vertex in the provider's wire order:
// longitude first, then latitude. The map viewer consumes it unchanged.
type Coordinate [2]float64

// Lon returns the longitude component.
func (c Coordinate) Lon() float64 { return c[0] }

// Lat returns the latitude component.
func (c Coordinate) Lat() float64 { return c[1] }

// Polyline is an ordered sequence of coordinates describing a drivable path
// between two waypoints. Order is traversal order; vertices are not
// deduplicated.
type Polyline []Coordinate
