package service_test

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/itinerary-designer/backend/internal/domain"
	"github.com/itinerary-designer/backend/internal/repo"
)

// mockLocationRepo is a hand-written test double for repo.LocationRepo.
// Each method is a function field; set only the ones your test needs.
type mockLocationRepo struct {
	list       func(ctx context.Context) ([]domain.Location, error)
	listPaged  func(ctx context.Context, category string, p domain.PaginationParams) (domain.Page[domain.Location], error)
	getByID    func(ctx context.Context, id int64) (domain.Location, error)
	categories func(ctx context.Context) ([]string, error)
}

func (m *mockLocationRepo) List(ctx context.Context) ([]domain.Location, error) {
	return m.list(ctx)
}
func (m *mockLocationRepo) ListPaged(ctx context.Context, category string, p domain.PaginationParams) (domain.Page[domain.Location], error) {
	return m.listPaged(ctx, category, p)
}
func (m *mockLocationRepo) GetByID(ctx context.Context, id int64) (domain.Location, error) {
	return m.getByID(ctx, id)
}
func (m *mockLocationRepo) Categories(ctx context.Context) ([]string, error) {
	return m.categories(ctx)
}

var _ repo.LocationRepo = (*mockLocationRepo)(nil)

// catalogRepo returns a mockLocationRepo serving List and GetByID from locs.
func catalogRepo(locs ...domain.Location) *mockLocationRepo {
	return &mockLocationRepo{
		list: func(context.Context) ([]domain.Location, error) {
			return slices.Clone(locs), nil
		},
		getByID: func(_ context.Context, id int64) (domain.Location, error) {
			for _, l := range locs {
				if l.ID == id {
					return l, nil
				}
			}
			return domain.Location{}, domain.ErrNotFound
		},
	}
}

// mockTemplateRepo is a hand-written test double for repo.TemplateRepo.
type mockTemplateRepo struct {
	list    func(ctx context.Context) ([]domain.Template, error)
	getByID func(ctx context.Context, id int) (domain.Template, error)
}

func (m *mockTemplateRepo) List(ctx context.Context) ([]domain.Template, error) {
	return m.list(ctx)
}
func (m *mockTemplateRepo) GetByID(ctx context.Context, id int) (domain.Template, error) {
	return m.getByID(ctx, id)
}

var _ repo.TemplateRepo = (*mockTemplateRepo)(nil)

// templateRepo returns a mockTemplateRepo serving GetByID from templates.
func templateRepo(templates ...domain.Template) *mockTemplateRepo {
	return &mockTemplateRepo{
		list: func(context.Context) ([]domain.Template, error) { return templates, nil },
		getByID: func(_ context.Context, id int) (domain.Template, error) {
			for _, t := range templates {
				if t.ID == id {
					return t, nil
				}
			}
			return domain.Template{}, domain.ErrNotFound
		},
	}
}

// memStore is an in-memory ItineraryRepo and Transactor. Work done inside
// WithinTx is applied to a copy and only published when fn succeeds, which
// lets tests observe the one-commit-per-call boundary.
type memStore struct {
	items   map[uuid.UUID]domain.Itinerary
	commits int
	// failDelete, when set, makes Delete return it for that id.
	failDelete map[uuid.UUID]error
}

func newMemStore() *memStore {
	return &memStore{items: map[uuid.UUID]domain.Itinerary{}}
}

func (s *memStore) WithinTx(ctx context.Context, fn func(repo.ItineraryRepo) error) error {
	staged := maps.Clone(s.items)
	if err := fn(&memRepo{items: staged, failDelete: s.failDelete}); err != nil {
		return err
	}
	s.items = staged
	s.commits++
	return nil
}

func (s *memStore) view() *memRepo { return &memRepo{items: s.items} }

func (s *memStore) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return s.view().Create(ctx, it)
}
func (s *memStore) GetByID(ctx context.Context, owner string, id uuid.UUID) (domain.Itinerary, error) {
	return s.view().GetByID(ctx, owner, id)
}
func (s *memStore) ListByOwner(ctx context.Context, owner string) ([]domain.Itinerary, error) {
	return s.view().ListByOwner(ctx, owner)
}
func (s *memStore) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	return s.view().Update(ctx, it)
}
func (s *memStore) Delete(ctx context.Context, owner string, id uuid.UUID) error {
	return s.view().Delete(ctx, owner, id)
}

var (
	_ repo.ItineraryRepo = (*memStore)(nil)
	_ repo.Transactor    = (*memStore)(nil)
)

type memRepo struct {
	items      map[uuid.UUID]domain.Itinerary
	failDelete map[uuid.UUID]error
}

func (r *memRepo) Create(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	it.ID = uuid.New()
	it.CreatedAt = time.Now().UTC()
	it.UpdatedAt = it.CreatedAt
	r.items[it.ID] = it
	return it, nil
}

func (r *memRepo) GetByID(_ context.Context, owner string, id uuid.UUID) (domain.Itinerary, error) {
	it, ok := r.items[id]
	if !ok || it.OwnerUserID != owner {
		return domain.Itinerary{}, domain.ErrNotFound
	}
	return it, nil
}

func (r *memRepo) ListByOwner(_ context.Context, owner string) ([]domain.Itinerary, error) {
	var out []domain.Itinerary
	for _, it := range r.items {
		if it.OwnerUserID == owner {
			out = append(out, it)
		}
	}
	slices.SortFunc(out, func(a, b domain.Itinerary) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

func (r *memRepo) Update(_ context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	cur, ok := r.items[it.ID]
	if !ok || cur.OwnerUserID != it.OwnerUserID {
		return domain.Itinerary{}, domain.ErrNotFound
	}
	it.UpdatedAt = time.Now().UTC()
	r.items[it.ID] = it
	return it, nil
}

func (r *memRepo) Delete(_ context.Context, owner string, id uuid.UUID) error {
	if err := r.failDelete[id]; err != nil {
		return err
	}
	it, ok := r.items[id]
	if !ok || it.OwnerUserID != owner {
		return fmt.Errorf("memRepo.Delete: %w", domain.ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// ---- fixtures --------------------------------------------------------------

func loc(id int64, category, price string) domain.Location {
	return domain.Location{
		ID:             id,
		Name:           fmt.Sprintf("%s #%d", category, id),
		Category:       category,
		PricePerPerson: decimal.RequireFromString(price),
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
