package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/jmoiron/sqlx"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// whole set is re-applied on each open.
func Migrate(db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateQuotationTax(db); err != nil {
		return fmt.Errorf("adding quotation tax settings: %w", err)
	}
	if err := migrateBackfillQuotationSequences(db); err != nil {
		return fmt.Errorf("backfilling quotation sequences: %w", err)
	}
	return nil
}

// migrateQuotationTax adds the per-quotation tax columns to databases created
// before quotations kept their own tax settings. Existing rows take the
// owner's configured rate and apply tax when a tax amount was stored.
func migrateQuotationTax(db *sqlx.DB) error {
	if _, err := db.Exec(`ALTER TABLE quotations ADD COLUMN tax_rate TEXT NOT NULL DEFAULT '16'`); err != nil {
		if isDuplicateColumn(err) {
			return nil
		}
		return err
	}
	if _, err := db.Exec(`ALTER TABLE quotations ADD COLUMN apply_tax INTEGER NOT NULL DEFAULT 0`); err != nil && !isDuplicateColumn(err) {
		return err
	}
	_, err := db.Exec(`UPDATE quotations SET
		tax_rate = COALESCE((SELECT c.tax_rate FROM company_configs c WHERE c.owner_id = quotations.owner_id), '16'),
		apply_tax = CASE WHEN tax IN ('0', '0.00') THEN 0 ELSE 1 END`)
	return err
}

// isDuplicateColumn matches the SQLite and Postgres errors for a column that
// is already there.
func isDuplicateColumn(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate column name") || strings.Contains(msg, "already exists")
}

// migrateBackfillQuotationSequences makes sure no counter is behind the
// numbers already stored, for example after rows were copied in by hand.
func migrateBackfillQuotationSequences(db *sqlx.DB) error {
	ctx := context.Background()

	var rows []struct {
		OwnerID string `db:"owner_id"`
		Number  string `db:"number"`
	}
	if err := db.SelectContext(ctx, &rows, `SELECT owner_id, number FROM quotations`); err != nil {
		return fmt.Errorf("loading quotation numbers: %w", err)
	}

	type key struct {
		owner string
		year  int
	}
	highest := map[key]int{}
	for _, r := range rows {
		year, counter, err := domain.ParseNumber(r.Number)
		if err != nil {
			continue
		}
		k := key{r.OwnerID, year}
		if counter > highest[k] {
			highest[k] = counter
		}
	}

	query := db.Rebind(`INSERT INTO quotation_sequences (owner_id, year, counter)
		VALUES (?, ?, ?)
		ON CONFLICT (owner_id, year) DO UPDATE SET counter = CASE
			WHEN excluded.counter > quotation_sequences.counter THEN excluded.counter
			ELSE quotation_sequences.counter END`)
	for k, n := range highest {
		if _, err := db.ExecContext(ctx, query, k.owner, k.year, n); err != nil {
			return fmt.Errorf("raising sequence %s/%d: %w", k.owner, k.year, err)
		}
	}
	return nil
}

// Dates are stored as TEXT (YYYY-MM-DD for calendar days, RFC3339 for
// timestamps) and amounts as decimal TEXT so both SQLite and Postgres
// round-trip them exactly.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id         TEXT PRIMARY KEY,
		owner_id   TEXT NOT NULL,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		company    TEXT NOT NULL DEFAULT '',
		address    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS quotations (
		id               TEXT PRIMARY KEY,
		owner_id         TEXT NOT NULL,
		number           TEXT NOT NULL,
		client_id        TEXT NOT NULL DEFAULT '',
		client_name      TEXT NOT NULL,
		client_email     TEXT NOT NULL,
		client_phone     TEXT NOT NULL DEFAULT '',
		client_company   TEXT NOT NULL DEFAULT '',
		client_address   TEXT NOT NULL DEFAULT '',
		issue_date       TEXT NOT NULL,
		expiration_date  TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'draft'
		                 CHECK(status IN ('draft','sent','approved','rejected','expired')),
		discount_percent TEXT NOT NULL DEFAULT '0',
		tax_rate         TEXT NOT NULL DEFAULT '16',
		apply_tax        INTEGER NOT NULL DEFAULT 0,
		subtotal         TEXT NOT NULL DEFAULT '0',
		discount_amount  TEXT NOT NULL DEFAULT '0',
		tax              TEXT NOT NULL DEFAULT '0',
		total            TEXT NOT NULL DEFAULT '0',
		payment_methods  TEXT NOT NULL DEFAULT '[]',
		terms            TEXT NOT NULL DEFAULT '{}',
		issuer           TEXT NOT NULL DEFAULT '{}',
		notes            TEXT NOT NULL DEFAULT '',
		share_token      TEXT UNIQUE,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL,
		UNIQUE (owner_id, number)
	)`,

	`CREATE TABLE IF NOT EXISTS quotation_lines (
		quotation_id TEXT NOT NULL REFERENCES quotations(id) ON DELETE CASCADE,
		position     INTEGER NOT NULL,
		line_id      TEXT NOT NULL DEFAULT '',
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		unit_price   TEXT NOT NULL,
		category     TEXT NOT NULL,
		unit         TEXT NOT NULL,
		quantity     INTEGER NOT NULL CHECK(quantity >= 0),
		duration     TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (quotation_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS quotation_sequences (
		owner_id TEXT NOT NULL,
		year     INTEGER NOT NULL,
		counter  INTEGER NOT NULL CHECK(counter >= 0),
		PRIMARY KEY (owner_id, year)
	)`,

	`CREATE TABLE IF NOT EXISTS company_configs (
		owner_id        TEXT PRIMARY KEY,
		name            TEXT NOT NULL DEFAULT '',
		email           TEXT NOT NULL DEFAULT '',
		phone           TEXT NOT NULL DEFAULT '',
		address         TEXT NOT NULL DEFAULT '',
		website         TEXT NOT NULL DEFAULT '',
		logo_url        TEXT NOT NULL DEFAULT '',
		issuer          TEXT NOT NULL DEFAULT '{}',
		default_terms   TEXT NOT NULL DEFAULT '{}',
		tax_rate        TEXT NOT NULL DEFAULT '16',
		apply_tax       INTEGER NOT NULL DEFAULT 0,
		payment_methods TEXT NOT NULL DEFAULT '[]',
		validity_days   INTEGER NOT NULL DEFAULT 30,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_clients_owner ON clients(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_quotations_owner ON quotations(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_quotations_status ON quotations(status)`,
	`CREATE INDEX IF NOT EXISTS idx_quotations_issue_date ON quotations(issue_date)`,
}
