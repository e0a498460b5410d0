package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/itinerary-designer/backend/internal/service"
)

const itineraryNotFound = "itinerary not found"

// CreateItinerary handles POST /itineraries.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var body CreateItineraryRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.itineraries.Create(r.Context(), owner, service.CreateInput{
		Name:           body.Name,
		Date:           body.Date,
		Selection:      body.Selection.toDomain(),
		NumberOfPeople: body.NumberOfPeople,
		NumberOfPets:   body.NumberOfPets,
	})
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, itineraryToResponse(created))
}

// CreateFromTemplates handles POST /itineraries/from-templates.
// Unknown template ids are skipped; the response lists what was created.
func (s *Server) CreateFromTemplates(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var body CreateFromTemplatesRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.itineraries.CreateFromTemplates(r.Context(), owner, body.TemplateIds)
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, itinerariesToResponse(created))
}

// ListItineraries handles GET /itineraries.
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	its, err := s.itineraries.List(r.Context(), owner)
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, itinerariesToResponse(its))
}

// GetItinerary handles GET /itineraries/{id}.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	it, err := s.itineraries.Get(r.Context(), owner, id)
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// EditItinerary handles PUT /itineraries/{id}.
func (s *Server) EditItinerary(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body EditItineraryRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.itineraries.Edit(r.Context(), owner, id, service.EditInput{
		Name:      body.Name,
		Date:      body.Date,
		Selection: body.Selection.toDomain(),
	})
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(updated))
}

// RecalculateCost handles POST /itineraries/{id}/cost.
func (s *Server) RecalculateCost(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body RecalculateCostRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.itineraries.RecalculateCost(r.Context(), owner, id, body.NumberOfPeople)
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(updated))
}

// DeleteItineraries handles POST /itineraries/delete.
// Ids the caller does not own are skipped; the response reports how many
// itineraries were actually removed.
func (s *Server) DeleteItineraries(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var body DeleteItinerariesRequest
	if !decodeBody(w, r, &body) {
		return
	}

	n, err := s.itineraries.Delete(r.Context(), owner, body.Ids)
	if err != nil {
		s.serviceError(w, r, err, itineraryNotFound)
		return
	}
	writeJSON(w, http.StatusOK, DeleteItinerariesResponse{Deleted: n})
}

// currentUser returns the authenticated owner, writing 401 when there is none.
func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := s.identity.CurrentUserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return "", false
	}
	return id, true
}

// pathID binds the {id} path parameter as a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		requestError(w, "invalid format for parameter id: "+err.Error())
		return openapi_types.UUID{}, false
	}
	return id, true
}
