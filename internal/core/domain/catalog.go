package domain

// Catalog maps route names to resolved polylines. It preserves insertion
// order and is built exactly once at startup; after that it is shared
// read-only state, so readers need no locking.
type Catalog struct {
	names  []string
	routes map[string]Polyline
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{routes: make(map[string]Polyline)}
}

// Put stores a resolved route. A duplicate name overwrites the earlier
// polyline but keeps its original position in the listing order
// (last-write-wins, first-position-kept).
func (c *Catalog) Put(name string, p Polyline) {
	if _, exists := c.routes[name]; !exists {
		c.names = append(c.names, name)
	}
	c.routes[name] = p
}

// Get returns the polyline for a route name.
func (c *Catalog) Get(name string) (Polyline, bool) {
	p, ok := c.routes[name]
	return p, ok
}

// Names returns the route names in catalog order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Len returns the number of routes in the catalog.
func (c *Catalog) Len() int { return len(c.names) }

// Coordinates flattens every polyline, in catalog order, into one sequence.
// This is the cycle the live playback walks.
func (c *Catalog) Coordinates() []Coordinate {
	var out []Coordinate
	for _, name := range c.names {
		out = append(out, c.routes[name]...)
	}
	return out
}
