package repository

import (
	"context"
	"fmt"

	"github.com/hidrocoding/cotizador/internal/db"
)

// SQLSequenceRepo allocates per-(owner, year) quotation counters atomically
// using the quotation_sequences table.
type SQLSequenceRepo struct {
	db db.DBTX
}

// NewSQLSequenceRepo creates a new SQLSequenceRepo.
func NewSQLSequenceRepo(conn db.DBTX) *SQLSequenceRepo {
	return &SQLSequenceRepo{db: conn}
}

// Next increments and returns the counter for (ownerID, year). The first call
// for a pair returns 1. The increment is a single statement, so concurrent
// callers never receive the same value.
func (r *SQLSequenceRepo) Next(ctx context.Context, ownerID string, year int) (int, error) {
	query := r.db.Rebind(`INSERT INTO quotation_sequences (owner_id, year, counter)
		VALUES (?, ?, 1)
		ON CONFLICT (owner_id, year) DO UPDATE SET counter = quotation_sequences.counter + 1
		RETURNING counter`)
	var next int
	if err := r.db.QueryRowxContext(ctx, query, ownerID, year).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating quotation number for %s/%d: %w", ownerID, year, err)
	}
	return next, nil
}

// EnsureAtLeast raises the counter for (ownerID, year) to counter. It never
// lowers it.
func (r *SQLSequenceRepo) EnsureAtLeast(ctx context.Context, ownerID string, year, counter int) error {
	query := r.db.Rebind(`INSERT INTO quotation_sequences (owner_id, year, counter)
		VALUES (?, ?, ?)
		ON CONFLICT (owner_id, year) DO UPDATE SET counter = CASE
			WHEN excluded.counter > quotation_sequences.counter THEN excluded.counter
			ELSE quotation_sequences.counter END`)
	if _, err := r.db.ExecContext(ctx, query, ownerID, year, counter); err != nil {
		return fmt.Errorf("raising quotation sequence for %s/%d: %w", ownerID, year, err)
	}
	return nil
}
