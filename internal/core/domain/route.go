package domain

// Predicate is a set of positionStatus attribute filters. A record qualifies
// only when every listed field matches exactly (case-sensitive). A field the
// record does not carry never matches.
type Predicate map[string]string

// Matches reports whether the position satisfies every field of the predicate.
func (p Predicate) Matches(ps PositionStatus) bool {
	for field, want := range p {
		got, ok := ps.Field(field)
		if !ok || got != want {
			return false
		}
	}
	return true
}

// RouteDefinition names a historical route and describes how to recognize its
// endpoints in the telemetry stream. Definitions are configuration data loaded
// at startup, not code.
type RouteDefinition struct {
	Name  string    `json:"name"`
	Start Predicate `json:"start"`
	End   Predicate `json:"end"`
}

// RouteSummary is the lightweight listing form of a resolved route.
type RouteSummary struct {
	Name         string  `json:"name"`
	Points       int     `json:"points"`
	LengthMeters float64 `json:"length_meters"`
}
