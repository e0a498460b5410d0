package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// beginner is satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx (nested
// Begin on a pgx.Tx opens a savepoint).
type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Transactor runs a unit of work against itineraries inside one database
// transaction. The transaction commits exactly once when fn returns nil and
// rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(itineraries ItineraryRepo) error) error
}

type pgTransactor struct {
	db beginner
}

// NewTransactor constructs a Transactor over the given pool or connection.
func NewTransactor(db beginner) Transactor {
	return &pgTransactor{db: db}
}

func (t *pgTransactor) WithinTx(ctx context.Context, fn func(ItineraryRepo) error) error {
	err := pgx.BeginFunc(ctx, t.db, func(tx pgx.Tx) error {
		return fn(NewItineraryRepo(tx))
	})
	if err != nil {
		return fmt.Errorf("repo.Transactor.WithinTx: %w", err)
	}
	return nil
}
