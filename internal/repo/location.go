// Package repo contains all data access for the itinerary planner.
// Each resource has its own file with an interface and an implementation.
// No business logic lives here, only SQL, YAML decoding, and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/itinerary-designer/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// LocationRepo is the read-only catalog of bookable locations.
type LocationRepo interface {
	// List returns every catalog entry ordered by id.
	List(ctx context.Context) ([]domain.Location, error)

	// ListPaged returns one page of entries, optionally restricted to a
	// category (empty string means all categories), ordered by id.
	ListPaged(ctx context.Context, category string, p domain.PaginationParams) (domain.Page[domain.Location], error)

	// GetByID returns a single entry. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id int64) (domain.Location, error)

	// Categories returns the distinct categories present in the catalog, sorted.
	Categories(ctx context.Context) ([]string, error)
}

type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

const locationColumns = `id, name, category, price_per_person, is_pet_friendly`

func (r *pgLocationRepo) List(ctx context.Context) ([]domain.Location, error) {
	const q = `SELECT ` + locationColumns + ` FROM locations ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.List: %w", err)
	}
	locs, err := collectLocations(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.List: %w", err)
	}
	return locs, nil
}

func (r *pgLocationRepo) ListPaged(ctx context.Context, category string, p domain.PaginationParams) (domain.Page[domain.Location], error) {
	const countQ = `
		SELECT count(*)
		FROM locations
		WHERE @category = '' OR category = @category`
	const q = `
		SELECT ` + locationColumns + `
		FROM locations
		WHERE @category = '' OR category = @category
		ORDER BY id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"category": category}).Scan(&total); err != nil {
		return domain.Page[domain.Location]{}, fmt.Errorf("repo.LocationRepo.ListPaged: count: %w", err)
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"category": category,
		"limit":    p.Limit,
		"offset":   p.Offset(),
	})
	if err != nil {
		return domain.Page[domain.Location]{}, fmt.Errorf("repo.LocationRepo.ListPaged: %w", err)
	}
	locs, err := collectLocations(rows)
	if err != nil {
		return domain.Page[domain.Location]{}, fmt.Errorf("repo.LocationRepo.ListPaged: %w", err)
	}
	return domain.Page[domain.Location]{Items: locs, Total: total}, nil
}

func (r *pgLocationRepo) GetByID(ctx context.Context, id int64) (domain.Location, error) {
	const q = `SELECT ` + locationColumns + ` FROM locations WHERE id = @id`

	loc, err := scanLocation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.GetByID: %w", err)
	}
	return loc, nil
}

func (r *pgLocationRepo) Categories(ctx context.Context) ([]string, error) {
	const q = `SELECT DISTINCT category FROM locations ORDER BY category`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.Categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.Categories: %w", err)
	}
	return categories, nil
}

// collectLocations drains rows into a non-nil slice and closes them.
func collectLocations(rows pgx.Rows) ([]domain.Location, error) {
	defer rows.Close()

	locs := []domain.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		locs = append(locs, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return locs, nil
}

// scanLocation maps a single row selected with locationColumns.
func scanLocation(s scanner) (domain.Location, error) {
	var l domain.Location
	err := s.Scan(&l.ID, &l.Name, &l.Category, &l.PricePerPerson, &l.IsPetFriendly)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, domain.ErrNotFound
		}
		return domain.Location{}, err
	}
	return l, nil
}
