package service

import (
	"context"
	"fmt"

	"github.com/itinerary-designer/backend/internal/domain"
	"github.com/itinerary-designer/backend/internal/repo"
)

// CatalogService exposes the read-only location and template catalogs that
// users choose from when building an itinerary.
type CatalogService struct {
	locations repo.LocationRepo
	templates repo.TemplateRepo
}

// NewCatalogService constructs a CatalogService backed by the provided repos.
func NewCatalogService(locations repo.LocationRepo, templates repo.TemplateRepo) *CatalogService {
	return &CatalogService{locations: locations, templates: templates}
}

// Categories returns the distinct catalog categories. The wildcard category
// is not included; clients offer it alongside these.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.locations.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Categories: %w", err)
	}
	if cats == nil {
		return []string{}, nil
	}
	return cats, nil
}

// Locations returns one page of catalog entries, optionally restricted to a
// category. The wildcard category, like an empty one, means all categories.
func (s *CatalogService) Locations(ctx context.Context, category string, p domain.PaginationParams) (domain.Page[domain.Location], error) {
	if category == domain.WildcardCategory {
		category = ""
	}
	page, err := s.locations.ListPaged(ctx, category, p)
	if err != nil {
		return domain.Page[domain.Location]{}, fmt.Errorf("service.CatalogService.Locations: %w", err)
	}
	if page.Items == nil {
		page.Items = []domain.Location{}
	}
	return page, nil
}

// Templates returns every pre-made itinerary.
func (s *CatalogService) Templates(ctx context.Context) ([]domain.Template, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CatalogService.Templates: %w", err)
	}
	return templates, nil
}
