package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itinerary-designer/backend/internal/domain"
	"github.com/itinerary-designer/backend/internal/repo"
	"github.com/itinerary-designer/backend/internal/validation"
)

// CreateInput is the user-supplied data for a new itinerary.
// Date is parsed by the service so that an unparsable value is reported as a
// validation error rather than a transport error.
type CreateInput struct {
	Name           string           `json:"name" validate:"required"`
	Date           string           `json:"date" validate:"required"`
	Selection      domain.Selection `json:"-"`
	NumberOfPeople int              `json:"number_of_people" validate:"gte=0"`
	NumberOfPets   int              `json:"number_of_pets" validate:"gte=0"`
}

// EditInput is the user-supplied data for editing an itinerary. The party
// size is not part of an edit; see RecalculateCost.
type EditInput struct {
	Name      string           `json:"name" validate:"required"`
	Date      string           `json:"date" validate:"required"`
	Selection domain.Selection `json:"-"`
}

// ItineraryService implements the itinerary lifecycle: create (from a
// selection or from templates), edit, recalculate, delete, list and get.
//
// Every operation is scoped to ownerUserID. Every mutating operation runs in
// exactly one transaction, so a batch either commits as a whole or not at all.
type ItineraryService struct {
	tx          repo.Transactor
	itineraries repo.ItineraryRepo
	locations   repo.LocationRepo
	templates   repo.TemplateRepo
	validate    *validation.Validator
	log         *slog.Logger
	now         func() time.Time
}

// NewItineraryService constructs an ItineraryService. itineraries serves the
// read-only List and Get; writes go through tx.
func NewItineraryService(
	tx repo.Transactor,
	itineraries repo.ItineraryRepo,
	locations repo.LocationRepo,
	templates repo.TemplateRepo,
	log *slog.Logger,
) *ItineraryService {
	return &ItineraryService{
		tx:          tx,
		itineraries: itineraries,
		locations:   locations,
		templates:   templates,
		validate:    validation.New(),
		log:         log,
		now:         time.Now,
	}
}

// WithClock overrides the clock used to date template-based itineraries.
func (s *ItineraryService) WithClock(now func() time.Time) *ItineraryService {
	s.now = now
	return s
}

// Create resolves the selection, builds the itinerary with its links and
// totals, and persists it.
// Returns domain.ErrValidation if the name is blank, the date is unparsable,
// or a count is negative. A zero party size defaults to one person.
// An empty selection is valid and yields a zero-cost itinerary.
func (s *ItineraryService) Create(ctx context.Context, ownerUserID string, in CreateInput) (domain.Itinerary, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return domain.Itinerary{}, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return domain.Itinerary{}, err
	}
	people := in.NumberOfPeople
	if people == 0 {
		people = domain.DefaultNumberOfPeople
	}

	catalog, err := s.locations.List(ctx)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}
	res := ResolveSelection(catalog, in.Selection, people)

	it := domain.Itinerary{
		OwnerUserID:    ownerUserID,
		Name:           in.Name,
		Date:           date,
		NumberOfPeople: people,
		NumberOfPets:   in.NumberOfPets,
	}
	it.LinkLocations(res.Locations)
	it.SetCosts(res.Costs)

	var created domain.Itinerary
	err = s.tx.WithinTx(ctx, func(r repo.ItineraryRepo) error {
		var err error
		created, err = r.Create(ctx, it)
		return err
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Create: %w", err)
	}

	s.log.InfoContext(ctx, "itinerary created",
		"itinerary_id", created.ID,
		"locations", len(created.Links),
		"total_cost_for_all_people", created.TotalCostForAllPeople.String(),
	)
	return created, nil
}

// CreateFromTemplates creates one itinerary per known template id and
// commits them together. Unknown template ids are skipped without error, and
// template locations that are no longer in the catalog are dropped. Totals
// are computed from the linked catalog entries for a party of one.
// Always returns a non-nil slice.
func (s *ItineraryService) CreateFromTemplates(ctx context.Context, ownerUserID string, templateIDs []int) ([]domain.Itinerary, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)

	drafts := make([]domain.Itinerary, 0, len(templateIDs))
	for _, id := range templateIDs {
		tpl, err := s.templates.GetByID(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			s.log.DebugContext(ctx, "template not found, skipping", "template_id", id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("service.ItineraryService.CreateFromTemplates: %w", err)
		}

		locs, err := s.catalogEntries(ctx, tpl.Locations)
		if err != nil {
			return nil, fmt.Errorf("service.ItineraryService.CreateFromTemplates: %w", err)
		}

		it := domain.Itinerary{
			OwnerUserID:    ownerUserID,
			Name:           tpl.Name,
			Date:           today,
			NumberOfPeople: domain.DefaultNumberOfPeople,
		}
		it.LinkLocations(locs)
		it.ApplyCosts()
		drafts = append(drafts, it)
	}

	created := make([]domain.Itinerary, 0, len(drafts))
	err := s.tx.WithinTx(ctx, func(r repo.ItineraryRepo) error {
		for _, it := range drafts {
			c, err := r.Create(ctx, it)
			if err != nil {
				return err
			}
			created = append(created, c)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.CreateFromTemplates: %w", err)
	}

	s.log.InfoContext(ctx, "itineraries created from templates",
		"requested", len(templateIDs),
		"created", len(created),
	)
	return created, nil
}

// CreateFromTemplate is the single-template form of CreateFromTemplates.
// ok is false when the template does not exist; that is not an error.
func (s *ItineraryService) CreateFromTemplate(ctx context.Context, ownerUserID string, templateID int) (it domain.Itinerary, ok bool, err error) {
	created, err := s.CreateFromTemplates(ctx, ownerUserID, []int{templateID})
	if err != nil || len(created) == 0 {
		return domain.Itinerary{}, false, err
	}
	return created[0], true, nil
}

// Edit replaces the name, date and location links of an owned itinerary and
// recomputes its totals using the itinerary's existing party size.
// Returns domain.ErrValidation for a blank name or unparsable date, and
// domain.ErrNotFound if ownerUserID owns no itinerary with that id.
func (s *ItineraryService) Edit(ctx context.Context, ownerUserID string, id uuid.UUID, in EditInput) (domain.Itinerary, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return domain.Itinerary{}, err
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return domain.Itinerary{}, err
	}

	catalog, err := s.locations.List(ctx)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Edit: %w", err)
	}

	var updated domain.Itinerary
	err = s.tx.WithinTx(ctx, func(r repo.ItineraryRepo) error {
		it, err := r.GetByID(ctx, ownerUserID, id)
		if err != nil {
			return err
		}
		it.Name = in.Name
		it.Date = date

		res := ResolveSelection(catalog, in.Selection, it.NumberOfPeople)
		it.LinkLocations(res.Locations)
		it.SetCosts(res.Costs)

		updated, err = r.Update(ctx, it)
		return err
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Edit: %w", err)
	}

	s.log.InfoContext(ctx, "itinerary edited", "itinerary_id", id, "locations", len(updated.Links))
	return updated, nil
}

// RecalculateCost sets a new party size on an owned itinerary and recomputes
// TotalCostForAllLocations and TotalCostForAllPeople from its current links.
// Returns domain.ErrValidation if numberOfPeople < 1 and domain.ErrNotFound
// if ownerUserID owns no itinerary with that id.
func (s *ItineraryService) RecalculateCost(ctx context.Context, ownerUserID string, id uuid.UUID, numberOfPeople int) (domain.Itinerary, error) {
	if err := s.validate.Var("number_of_people", numberOfPeople, "gte=1"); err != nil {
		return domain.Itinerary{}, err
	}

	var updated domain.Itinerary
	err := s.tx.WithinTx(ctx, func(r repo.ItineraryRepo) error {
		it, err := r.GetByID(ctx, ownerUserID, id)
		if err != nil {
			return err
		}
		it.Recalculate(numberOfPeople)
		updated, err = r.Update(ctx, it)
		return err
	})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.RecalculateCost: %w", err)
	}
	return updated, nil
}

// Delete removes every listed itinerary owned by ownerUserID in one
// transaction. Ids that do not exist or belong to someone else are skipped
// silently. Returns the number of itineraries removed.
func (s *ItineraryService) Delete(ctx context.Context, ownerUserID string, ids []uuid.UUID) (int, error) {
	deleted := 0
	err := s.tx.WithinTx(ctx, func(r repo.ItineraryRepo) error {
		deleted = 0
		for _, id := range ids {
			err := r.Delete(ctx, ownerUserID, id)
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("service.ItineraryService.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "itineraries deleted", "requested", len(ids), "deleted", deleted)
	return deleted, nil
}

// List returns every itinerary owned by ownerUserID with links loaded.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ItineraryService) List(ctx context.Context, ownerUserID string) ([]domain.Itinerary, error) {
	its, err := s.itineraries.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.List: %w", err)
	}
	if its == nil {
		return []domain.Itinerary{}, nil
	}
	return its, nil
}

// Get returns one itinerary owned by ownerUserID with links loaded.
// Returns domain.ErrNotFound if the id is unknown or owned by someone else.
func (s *ItineraryService) Get(ctx context.Context, ownerUserID string, id uuid.UUID) (domain.Itinerary, error) {
	it, err := s.itineraries.GetByID(ctx, ownerUserID, id)
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("service.ItineraryService.Get: %w", err)
	}
	return it, nil
}

// catalogEntries looks up each template snapshot in the live catalog by id.
// Entries missing from the catalog, and repeated ids, are dropped.
func (s *ItineraryService) catalogEntries(ctx context.Context, snapshot []domain.Location) ([]domain.Location, error) {
	seen := make(map[int64]bool, len(snapshot))
	out := make([]domain.Location, 0, len(snapshot))
	for _, snap := range snapshot {
		if seen[snap.ID] {
			continue
		}
		seen[snap.ID] = true

		loc, err := s.locations.GetByID(ctx, snap.ID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, nil
}

// dateLayouts are tried in order when parsing an itinerary date.
var dateLayouts = []string{time.DateOnly, time.RFC3339}

// parseDate parses a calendar date and truncates it to midnight UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date must be formatted as YYYY-MM-DD", domain.ErrValidation)
}
