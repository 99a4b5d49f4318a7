package usecases

import (
	"github.com/mfarias/rutasur/internal/core/domain"
)

// CatalogService answers read queries against the built catalog.
type CatalogService struct {
	catalog *domain.Catalog
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalog *domain.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

// Names returns every resolved route name in catalog order.
func (s *CatalogService) Names() []string {
	return s.catalog.Names()
}

// Track returns the polyline for a named route.
func (s *CatalogService) Track(name string) (domain.Polyline, error) {
	p, ok := s.catalog.Get(name)
	if !ok {
		return nil, domain.ErrRouteNotFound
	}
	return p, nil
}

// Summary returns the listing form of one route.
func (s *CatalogService) Summary(name string) (domain.RouteSummary, error) {
	p, ok := s.catalog.Get(name)
	if !ok {
		return domain.RouteSummary{}, domain.ErrRouteNotFound
	}
	return domain.RouteSummary{
		Name:         name,
		Points:       len(p),
		LengthMeters: pathLength(p),
	}, nil
}

// Summaries returns every route's listing form, in catalog order.
func (s *CatalogService) Summaries() []domain.RouteSummary {
	names := s.catalog.Names()
	out := make([]domain.RouteSummary, 0, len(names))
	for _, name := range names {
		summary, err := s.Summary(name)
		if err != nil {
			continue
		}
		out = append(out, summary)
	}
	return out
}
