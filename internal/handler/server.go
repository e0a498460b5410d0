// Package handler implements the HTTP handlers for the itinerary API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, catalog.go, itinerary.go, export.go) but share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/itinerary-designer/backend/internal/domain"
	"github.com/itinerary-designer/backend/internal/service"
	"github.com/itinerary-designer/backend/spec"
)

// ItineraryServicer defines the lifecycle operations the itinerary handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without touching the database or service layer.
type ItineraryServicer interface {
	Create(ctx context.Context, ownerUserID string, in service.CreateInput) (domain.Itinerary, error)
	CreateFromTemplates(ctx context.Context, ownerUserID string, templateIDs []int) ([]domain.Itinerary, error)
	Edit(ctx context.Context, ownerUserID string, id uuid.UUID, in service.EditInput) (domain.Itinerary, error)
	RecalculateCost(ctx context.Context, ownerUserID string, id uuid.UUID, numberOfPeople int) (domain.Itinerary, error)
	Delete(ctx context.Context, ownerUserID string, ids []uuid.UUID) (int, error)
	List(ctx context.Context, ownerUserID string) ([]domain.Itinerary, error)
	Get(ctx context.Context, ownerUserID string, id uuid.UUID) (domain.Itinerary, error)
}

// CatalogServicer defines the read-only catalog operations.
type CatalogServicer interface {
	Categories(ctx context.Context) ([]string, error)
	Locations(ctx context.Context, category string, p domain.PaginationParams) (domain.Page[domain.Location], error)
	Templates(ctx context.Context) ([]domain.Template, error)
}

// ExportServicer defines the export operation.
type ExportServicer interface {
	Export(ctx context.Context, ownerUserID string) ([]domain.ExportRow, error)
}

// IdentityProvider reports the authenticated user for a request context.
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	itineraries ItineraryServicer
	catalog     CatalogServicer
	export      ExportServicer
	identity    IdentityProvider
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(
	itineraries ItineraryServicer,
	catalog CatalogServicer,
	export ExportServicer,
	identity IdentityProvider,
	log *slog.Logger,
) *Server {
	return &Server{
		itineraries: itineraries,
		catalog:     catalog,
		export:      export,
		identity:    identity,
		log:         log,
	}
}

// Routes returns the API router. Catalog and health routes are public;
// itinerary routes run behind requireAuth.
func (s *Server) Routes(requireAuth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Get("/categories", s.ListCategories)
	r.Get("/locations", s.ListLocations)
	r.Get("/templates", s.ListTemplates)

	r.Route("/itineraries", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", s.ListItineraries)
		r.Post("/", s.CreateItinerary)
		r.Post("/from-templates", s.CreateFromTemplates)
		r.Post("/delete", s.DeleteItineraries)
		r.Get("/export", s.GetExport)
		r.Get("/{id}", s.GetItinerary)
		r.Put("/{id}", s.EditItinerary)
		r.Post("/{id}/cost", s.RecalculateCost)
	})

	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
