package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/jmoiron/sqlx"
)

// SQLClientRepo implements ClientRepo on SQLite or Postgres.
type SQLClientRepo struct {
	db db.DBTX
}

// NewSQLClientRepo creates a new SQLClientRepo.
func NewSQLClientRepo(conn db.DBTX) *SQLClientRepo {
	return &SQLClientRepo{db: conn}
}

type clientRow struct {
	ID        string `db:"id"`
	OwnerID   string `db:"owner_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Company   string `db:"company"`
	Address   string `db:"address"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

const clientColumns = `id, owner_id, name, email, phone, company, address, created_at, updated_at`

func (r *SQLClientRepo) Create(ctx context.Context, c *domain.Client) error {
	query := r.db.Rebind(`INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, clientArgs(c)...); err != nil {
		return fmt.Errorf("inserting client: %w", err)
	}
	return nil
}

func (r *SQLClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	var row clientRow
	query := r.db.Rebind(`SELECT ` + clientColumns + ` FROM clients WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		return nil, notFound(err, "client", id)
	}
	return row.toDomain()
}

// List returns an owner's clients ordered by name.
func (r *SQLClientRepo) List(ctx context.Context, ownerID string) ([]*domain.Client, error) {
	query := r.db.Rebind(`SELECT ` + clientColumns + ` FROM clients WHERE owner_id = ? ORDER BY name, id`)
	return r.selectClients(ctx, "listing clients", query, ownerID)
}

// Search matches term against name, email and company, ignoring case.
func (r *SQLClientRepo) Search(ctx context.Context, ownerID, term string) ([]*domain.Client, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	query := r.db.Rebind(`SELECT ` + clientColumns + ` FROM clients
		WHERE owner_id = ?
		  AND (LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?)
		ORDER BY name, id`)
	return r.selectClients(ctx, "searching clients", query, ownerID, pattern, pattern, pattern)
}

func (r *SQLClientRepo) selectClients(ctx context.Context, op, query string, args ...any) ([]*domain.Client, error) {
	var rows []clientRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]*domain.Client, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *SQLClientRepo) Update(ctx context.Context, c *domain.Client) error {
	query := r.db.Rebind(`UPDATE clients SET name = ?, email = ?, phone = ?, company = ?, address = ?, updated_at = ?
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone, c.Company, c.Address, formatTimestamp(c.UpdatedAt), c.ID)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}
	return expectAffected(res, "client", c.ID)
}

// Upsert inserts c or overwrites the owner's row with the same ID. A client
// with that ID owned by someone else fails with domain.ErrOwnerMismatch.
func (r *SQLClientRepo) Upsert(ctx context.Context, c *domain.Client) error {
	query := r.db.Rebind(`INSERT INTO clients (` + clientColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, email = excluded.email,
			phone = excluded.phone, company = excluded.company, address = excluded.address,
			updated_at = excluded.updated_at
		WHERE clients.owner_id = excluded.owner_id`)
	res, err := r.db.ExecContext(ctx, query, clientArgs(c)...)
	if err != nil {
		return fmt.Errorf("upserting client %s: %w", c.ID, err)
	}
	return expectOwned(res, "client", c.ID)
}

func (r *SQLClientRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM clients WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}
	return expectAffected(res, "client", id)
}

func clientArgs(c *domain.Client) []any {
	return []any{
		c.ID, c.OwnerID, c.Name, c.Email, c.Phone, c.Company, c.Address,
		formatTimestamp(c.CreatedAt), formatTimestamp(c.UpdatedAt),
	}
}

func (row *clientRow) toDomain() (*domain.Client, error) {
	c := &domain.Client{
		ID:      row.ID,
		OwnerID: row.OwnerID,
		Name:    row.Name,
		Email:   row.Email,
		Phone:   row.Phone,
		Company: row.Company,
		Address: row.Address,
	}
	var err error
	if c.CreatedAt, err = parseTimestamp(row.CreatedAt, "client created_at"); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTimestamp(row.UpdatedAt, "client updated_at"); err != nil {
		return nil, err
	}
	return c, nil
}
