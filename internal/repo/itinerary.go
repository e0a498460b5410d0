package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/itinerary-designer/backend/internal/domain"
)

// ItineraryRepo defines the persistence operations for Itineraries.
// Every read and write is scoped by ownerUserID; an itinerary owned by a
// different user is indistinguishable from one that does not exist.
// Links and their catalog locations are always loaded eagerly.
type ItineraryRepo interface {
	// Create inserts the itinerary row and its links and returns the persisted
	// record (with DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// GetByID returns one itinerary owned by ownerUserID.
	// Returns domain.ErrNotFound if no such itinerary exists for that owner.
	GetByID(ctx context.Context, ownerUserID string, id uuid.UUID) (domain.Itinerary, error)

	// ListByOwner returns all itineraries of ownerUserID ordered by date
	// descending, then creation time descending.
	ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Itinerary, error)

	// Update overwrites the mutable fields and replaces the full link set.
	// Returns domain.ErrNotFound if no such itinerary exists for that owner.
	Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error)

	// Delete removes an itinerary and (via ON DELETE CASCADE) its links.
	// Returns domain.ErrNotFound if no such itinerary exists for that owner.
	Delete(ctx context.Context, ownerUserID string, id uuid.UUID) error
}

type pgItineraryRepo struct {
	db db
}

// NewItineraryRepo constructs an ItineraryRepo backed by the provided db connection.
// In production pass a pgx.Tx obtained from a Transactor so each service call
// commits once; in tests pass a pgx.Tx that is rolled back.
func NewItineraryRepo(db db) ItineraryRepo {
	return &pgItineraryRepo{db: db}
}

const itineraryColumns = `
	id, owner_user_id, name, date, number_of_people, number_of_pets,
	total_cost_per_itinerary, total_cost_for_all_locations, total_cost_for_all_people,
	created_at, updated_at`

func (r *pgItineraryRepo) Create(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		INSERT INTO itineraries (
			owner_user_id, name, date, number_of_people, number_of_pets,
			total_cost_per_itinerary, total_cost_for_all_locations, total_cost_for_all_people)
		VALUES (
			@owner_user_id, @name, @date, @number_of_people, @number_of_pets,
			@total_cost_per_itinerary, @total_cost_for_all_locations, @total_cost_for_all_people)
		RETURNING ` + itineraryColumns

	result, err := scanItinerary(r.db.QueryRow(ctx, q, itineraryArgs(it)))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	if err := r.insertLinks(ctx, result.ID, it.Links); err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Create: %w", err)
	}
	result.Links = it.Links
	return result, nil
}

func (r *pgItineraryRepo) GetByID(ctx context.Context, ownerUserID string, id uuid.UUID) (domain.Itinerary, error) {
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE id = @id AND owner_user_id = @owner_user_id`

	result, err := scanItinerary(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "owner_user_id": ownerUserID}))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	links, err := r.loadLinks(ctx, []uuid.UUID{result.ID})
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.GetByID: %w", err)
	}
	result.Links = links[result.ID]
	return result, nil
}

func (r *pgItineraryRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]domain.Itinerary, error) {
	const q = `
		SELECT ` + itineraryColumns + `
		FROM itineraries
		WHERE owner_user_id = @owner_user_id
		ORDER BY date DESC, created_at DESC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"owner_user_id": ownerUserID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	var (
		its []domain.Itinerary
		ids []uuid.UUID
	)
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItineraryRepo.ListByOwner: scan: %w", err)
		}
		its = append(its, it)
		ids = append(ids, it.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByOwner: rows: %w", err)
	}
	rows.Close()

	if len(its) == 0 {
		return its, nil
	}
	links, err := r.loadLinks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("repo.ItineraryRepo.ListByOwner: %w", err)
	}
	for i := range its {
		its[i].Links = links[its[i].ID]
	}
	return its, nil
}

func (r *pgItineraryRepo) Update(ctx context.Context, it domain.Itinerary) (domain.Itinerary, error) {
	const q = `
		UPDATE itineraries
		SET name                         = @name,
		    date                         = @date,
		    number_of_people             = @number_of_people,
		    number_of_pets               = @number_of_pets,
		    total_cost_per_itinerary     = @total_cost_per_itinerary,
		    total_cost_for_all_locations = @total_cost_for_all_locations,
		    total_cost_for_all_people    = @total_cost_for_all_people,
		    updated_at                   = now()
		WHERE id = @id AND owner_user_id = @owner_user_id
		RETURNING ` + itineraryColumns

	args := itineraryArgs(it)
	args["id"] = it.ID

	result, err := scanItinerary(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}

	const clear = `DELETE FROM itinerary_locations WHERE itinerary_id = @id`
	if _, err := r.db.Exec(ctx, clear, pgx.NamedArgs{"id": it.ID}); err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: clear links: %w", err)
	}
	if err := r.insertLinks(ctx, it.ID, it.Links); err != nil {
		return domain.Itinerary{}, fmt.Errorf("repo.ItineraryRepo.Update: %w", err)
	}
	result.Links = it.Links
	return result, nil
}

func (r *pgItineraryRepo) Delete(ctx context.Context, ownerUserID string, id uuid.UUID) error {
	const q = `DELETE FROM itineraries WHERE id = @id AND owner_user_id = @owner_user_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "owner_user_id": ownerUserID})
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItineraryRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// insertLinks writes one itinerary_locations row per link in a single statement.
func (r *pgItineraryRepo) insertLinks(ctx context.Context, itineraryID uuid.UUID, links []domain.Link) error {
	if len(links) == 0 {
		return nil
	}
	const q = `
		INSERT INTO itinerary_locations (itinerary_id, location_id)
		SELECT @itinerary_id::uuid, unnest(@location_ids::bigint[])
		ON CONFLICT (itinerary_id, location_id) DO NOTHING`

	ids := make([]int64, len(links))
	for i, l := range links {
		ids[i] = l.LocationID
	}
	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"itinerary_id": itineraryID, "location_ids": ids}); err != nil {
		return fmt.Errorf("insert links: %w", err)
	}
	return nil
}

// loadLinks fetches the links of every given itinerary joined with their
// catalog locations, keyed by itinerary id. Links are ordered by location id.
func (r *pgItineraryRepo) loadLinks(ctx context.Context, itineraryIDs []uuid.UUID) (map[uuid.UUID][]domain.Link, error) {
	const q = `
		SELECT il.itinerary_id, l.id, l.name, l.category, l.price_per_person, l.is_pet_friendly
		FROM itinerary_locations il
		JOIN locations l ON l.id = il.location_id
		WHERE il.itinerary_id = ANY(@ids::uuid[])
		ORDER BY il.itinerary_id, l.id`

	ids := make([]string, len(itineraryIDs))
	for i, id := range itineraryIDs {
		ids[i] = id.String()
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": ids})
	if err != nil {
		return nil, fmt.Errorf("load links: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.Link, len(itineraryIDs))
	for rows.Next() {
		var (
			itID pgtype.UUID
			loc  domain.Location
		)
		if err := rows.Scan(&itID, &loc.ID, &loc.Name, &loc.Category, &loc.PricePerPerson, &loc.IsPetFriendly); err != nil {
			return nil, fmt.Errorf("load links: scan: %w", err)
		}
		key := uuid.UUID(itID.Bytes)
		out[key] = append(out[key], domain.Link{LocationID: loc.ID, Location: loc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load links: rows: %w", err)
	}
	return out, nil
}

// itineraryArgs builds the named arguments shared by Create and Update.
func itineraryArgs(it domain.Itinerary) pgx.NamedArgs {
	return pgx.NamedArgs{
		"owner_user_id":                it.OwnerUserID,
		"name":                         it.Name,
		"date":                         it.Date,
		"number_of_people":             it.NumberOfPeople,
		"number_of_pets":               it.NumberOfPets,
		"total_cost_per_itinerary":     it.TotalCostPerItinerary,
		"total_cost_for_all_locations": it.TotalCostForAllLocations,
		"total_cost_for_all_people":    it.TotalCostForAllPeople,
	}
}

// scanItinerary maps a single row selected with itineraryColumns.
// Links are left empty; callers attach them with loadLinks.
func scanItinerary(s scanner) (domain.Itinerary, error) {
	var (
		it   domain.Itinerary
		id   pgtype.UUID
		date pgtype.Date
	)
	err := s.Scan(
		&id, &it.OwnerUserID, &it.Name, &date, &it.NumberOfPeople, &it.NumberOfPets,
		&it.TotalCostPerItinerary, &it.TotalCostForAllLocations, &it.TotalCostForAllPeople,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Itinerary{}, domain.ErrNotFound
		}
		return domain.Itinerary{}, err
	}
	it.ID = uuid.UUID(id.Bytes)
	it.Date = date.Time
	return it, nil
}
