package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
	"github.com/jmoiron/sqlx"
)

// SQLConfigRepo implements ConfigRepo on SQLite or Postgres.
type SQLConfigRepo struct {
	db db.DBTX
}

// NewSQLConfigRepo creates a new SQLConfigRepo.
func NewSQLConfigRepo(conn db.DBTX) *SQLConfigRepo {
	return &SQLConfigRepo{db: conn}
}

type configRow struct {
	OwnerID        string        `db:"owner_id"`
	Name           string        `db:"name"`
	Email          string        `db:"email"`
	Phone          string        `db:"phone"`
	Address        string        `db:"address"`
	Website        string        `db:"website"`
	LogoURL        string        `db:"logo_url"`
	Issuer         string        `db:"issuer"`
	DefaultTerms   string        `db:"default_terms"`
	TaxRate        money.Percent `db:"tax_rate"`
	ApplyTax       int           `db:"apply_tax"`
	PaymentMethods string        `db:"payment_methods"`
	ValidityDays   int           `db:"validity_days"`
	UpdatedAt      string        `db:"updated_at"`
}

func (r *SQLConfigRepo) Get(ctx context.Context, ownerID string) (*domain.CompanyConfig, error) {
	var row configRow
	query := r.db.Rebind(`SELECT owner_id, name, email, phone, address, website, logo_url, issuer,
		default_terms, tax_rate, apply_tax, payment_methods, validity_days, updated_at
		FROM company_configs WHERE owner_id = ?`)
	if err := sqlx.GetContext(ctx, r.db, &row, query, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading configuration for %s: %w", ownerID, err)
	}

	c := &domain.CompanyConfig{
		OwnerID:      row.OwnerID,
		Name:         row.Name,
		Email:        row.Email,
		Phone:        row.Phone,
		Address:      row.Address,
		Website:      row.Website,
		LogoURL:      row.LogoURL,
		Tax:          domain.TaxSettings{RatePercent: row.TaxRate, Apply: intToBool(row.ApplyTax)},
		ValidityDays: row.ValidityDays,
	}
	var err error
	if c.UpdatedAt, err = parseTimestamp(row.UpdatedAt, "config updated_at"); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.Issuer, &c.Issuer, "issuer"); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.DefaultTerms, &c.DefaultTerms, "default_terms"); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.PaymentMethods, &c.DefaultPaymentMethods, "payment_methods"); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLConfigRepo) Upsert(ctx context.Context, c *domain.CompanyConfig) error {
	issuer, err := encodeJSON(c.Issuer, "issuer")
	if err != nil {
		return err
	}
	terms, err := encodeJSON(c.DefaultTerms, "default terms")
	if err != nil {
		return err
	}
	methods, err := encodeJSON(c.DefaultPaymentMethods, "payment methods")
	if err != nil {
		return err
	}

	query := r.db.Rebind(`INSERT INTO company_configs (owner_id, name, email, phone, address, website,
		logo_url, issuer, default_terms, tax_rate, apply_tax, payment_methods, validity_days, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_id) DO UPDATE SET
			name = excluded.name, email = excluded.email, phone = excluded.phone,
			address = excluded.address, website = excluded.website, logo_url = excluded.logo_url,
			issuer = excluded.issuer, default_terms = excluded.default_terms,
			tax_rate = excluded.tax_rate, apply_tax = excluded.apply_tax,
			payment_methods = excluded.payment_methods, validity_days = excluded.validity_days,
			updated_at = excluded.updated_at`)
	_, err = r.db.ExecContext(ctx, query,
		c.OwnerID, c.Name, c.Email, c.Phone, c.Address, c.Website, c.LogoURL,
		issuer, terms, c.Tax.RatePercent, boolToInt(c.Tax.Apply), methods, c.ValidityDays,
		formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("saving configuration for %s: %w", c.OwnerID, err)
	}
	return nil
}
