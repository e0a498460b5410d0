package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/itinerary-designer/backend/internal/domain"
	"github.com/itinerary-designer/backend/internal/handler"
	"github.com/itinerary-designer/backend/internal/middleware"
	"github.com/itinerary-designer/backend/internal/service"
)

// mockItineraryServicer is a test double for handler.ItineraryServicer.
// Set only the method fields your test needs.
type mockItineraryServicer struct {
	create              func(ctx context.Context, owner string, in service.CreateInput) (domain.Itinerary, error)
	createFromTemplates func(ctx context.Context, owner string, ids []int) ([]domain.Itinerary, error)
	edit                func(ctx context.Context, owner string, id uuid.UUID, in service.EditInput) (domain.Itinerary, error)
	recalculateCost     func(ctx context.Context, owner string, id uuid.UUID, people int) (domain.Itinerary, error)
	delete              func(ctx context.Context, owner string, ids []uuid.UUID) (int, error)
	list                func(ctx context.Context, owner string) ([]domain.Itinerary, error)
	get                 func(ctx context.Context, owner string, id uuid.UUID) (domain.Itinerary, error)
}

func (m *mockItineraryServicer) Create(ctx context.Context, owner string, in service.CreateInput) (domain.Itinerary, error) {
	return m.create(ctx, owner, in)
}
func (m *mockItineraryServicer) CreateFromTemplates(ctx context.Context, owner string, ids []int) ([]domain.Itinerary, error) {
	return m.createFromTemplates(ctx, owner, ids)
}
func (m *mockItineraryServicer) Edit(ctx context.Context, owner string, id uuid.UUID, in service.EditInput) (domain.Itinerary, error) {
	return m.edit(ctx, owner, id, in)
}
func (m *mockItineraryServicer) RecalculateCost(ctx context.Context, owner string, id uuid.UUID, people int) (domain.Itinerary, error) {
	return m.recalculateCost(ctx, owner, id, people)
}
func (m *mockItineraryServicer) Delete(ctx context.Context, owner string, ids []uuid.UUID) (int, error) {
	return m.delete(ctx, owner, ids)
}
func (m *mockItineraryServicer) List(ctx context.Context, owner string) ([]domain.Itinerary, error) {
	return m.list(ctx, owner)
}
func (m *mockItineraryServicer) Get(ctx context.Context, owner string, id uuid.UUID) (domain.Itinerary, error) {
	return m.get(ctx, owner, id)
}

// compile-time check: mockItineraryServicer must satisfy handler.ItineraryServicer.
var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

type mockCatalogServicer struct {
	categories func(ctx context.Context) ([]string, error)
	locations  func(ctx context.Context, category string, p domain.PaginationParams) (domain.Page[domain.Location], error)
	templates  func(ctx context.Context) ([]domain.Template, error)
}

func (m *mockCatalogServicer) Categories(ctx context.Context) ([]string, error) {
	return m.categories(ctx)
}
func (m *mockCatalogServicer) Locations(ctx context.Context, category string, p domain.PaginationParams) (domain.Page[domain.Location], error) {
	return m.locations(ctx, category, p)
}
func (m *mockCatalogServicer) Templates(ctx context.Context) ([]domain.Template, error) {
	return m.templates(ctx)
}

var _ handler.CatalogServicer = (*mockCatalogServicer)(nil)

type mockExportServicer struct {
	export func(ctx context.Context, owner string) ([]domain.ExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, owner string) ([]domain.ExportRow, error) {
	return m.export(ctx, owner)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- helpers ---------------------------------------------------------------

const testUser = "user-1"

// userHeader stands in for a bearer token: fakeAuth trusts it verbatim.
const userHeader = "X-Test-User"

// fakeAuth authenticates from userHeader and rejects requests without it,
// mirroring the contract of middleware.Authenticator.Require.
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(userHeader)
		if id == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(middleware.WithUserID(r.Context(), id)))
	})
}

// deps collects the mocks a test wires into the server. Nil fields stay nil.
type deps struct {
	itineraries handler.ItineraryServicer
	catalog     handler.CatalogServicer
	export      handler.ExportServicer
}

// newHTTPHandler wires a Server the same way main.go does, minus the real
// token verification.
func newHTTPHandler(d deps) http.Handler {
	srv := handler.NewServer(d.itineraries, d.catalog, d.export, middleware.ContextIdentity{}, slog.New(slog.DiscardHandler))
	return srv.Routes(fakeAuth)
}

// authed returns req with the test user attached.
func authed(req *http.Request) *http.Request {
	req.Header.Set(userHeader, testUser)
	return req
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func itineraryFixture() domain.Itinerary {
	it := domain.Itinerary{
		ID:             uuid.New(),
		OwnerUserID:    testUser,
		Name:           "Venice Weekend",
		Date:           time.Date(2025, 9, 12, 0, 0, 0, 0, time.UTC),
		NumberOfPeople: 2,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	it.LinkLocations([]domain.Location{
		{ID: 1, Name: "Gondola Ride", Category: "Tour", PricePerPerson: decimal.RequireFromString("80.00")},
		{ID: 9, Name: "Murano Boat", Category: "Boat", PricePerPerson: decimal.RequireFromString("35.50")},
	})
	it.ApplyCosts()
	return it
}

// errorCode decodes an ErrorResponse body and returns its code.
func errorCode(t *testing.T, body *bytes.Buffer) string {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error.Code
}
