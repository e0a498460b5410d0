package handler

import (
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/itinerary-designer/backend/internal/domain"
)

// ListCategories handles GET /categories.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.serviceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// ListLocations handles GET /locations.
// Supports ?category=, ?page= and ?limit= (defaults: all categories, page=1, limit=20, max=100).
func (s *Server) ListLocations(w http.ResponseWriter, r *http.Request) {
	var (
		category    *string
		page, limit *int
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "category", q, &category); err != nil {
		requestError(w, "invalid category: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		requestError(w, "invalid page: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		requestError(w, "invalid limit: "+err.Error())
		return
	}

	params := domain.NewPaginationParams(page, limit)
	var cat string
	if category != nil {
		cat = *category
	}
	result, err := s.catalog.Locations(r.Context(), cat, params)
	if err != nil {
		s.serviceError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, LocationList{
		Data: locationsToResponse(result.Items),
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(result.Total),
		},
	})
}

// ListTemplates handles GET /templates.
func (s *Server) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.catalog.Templates(r.Context())
	if err != nil {
		s.serviceError(w, r, err, "")
		return
	}
	out := make([]Template, len(templates))
	for i, t := range templates {
		out[i] = templateToResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}
