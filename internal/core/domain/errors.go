package domain

import "errors"

var (
	// ErrRouteNotFound is returned when a catalog lookup names an unknown
	// route. It is a normal client-facing miss, not a server fault.
	ErrRouteNotFound = errors.New("route not found")

	// ErrEmptyCatalog is returned by the live playback when no route
	// resolved at startup, so there is nothing to cycle over.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrNoRouteGeometry marks a routing-provider response that carried no
	// usable geometry. Wrapped errors include the response detail.
	ErrNoRouteGeometry = errors.New("no route geometry in provider response")
)
