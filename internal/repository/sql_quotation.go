package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
	"github.com/jmoiron/sqlx"
)

// SQLQuotationRepo implements QuotationRepo on SQLite or Postgres.
type SQLQuotationRepo struct {
	db db.DBTX
}

// NewSQLQuotationRepo creates a new SQLQuotationRepo.
func NewSQLQuotationRepo(conn db.DBTX) *SQLQuotationRepo {
	return &SQLQuotationRepo{db: conn}
}

const quotationColumns = `id, owner_id, number, client_id, client_name, client_email, client_phone,
	client_company, client_address, issue_date, expiration_date, status, discount_percent,
	tax_rate, apply_tax, subtotal, discount_amount, tax, total, payment_methods, terms, issuer, notes, share_token,
	created_at, updated_at`

type quotationRow struct {
	ID              string         `db:"id"`
	OwnerID         string         `db:"owner_id"`
	Number          string         `db:"number"`
	ClientID        string         `db:"client_id"`
	ClientName      string         `db:"client_name"`
	ClientEmail     string         `db:"client_email"`
	ClientPhone     string         `db:"client_phone"`
	ClientCompany   string         `db:"client_company"`
	ClientAddress   string         `db:"client_address"`
	IssueDate       string         `db:"issue_date"`
	ExpirationDate  string         `db:"expiration_date"`
	Status          string         `db:"status"`
	DiscountPercent money.Percent  `db:"discount_percent"`
	TaxRate         money.Percent  `db:"tax_rate"`
	ApplyTax        int            `db:"apply_tax"`
	Subtotal        money.Money    `db:"subtotal"`
	DiscountAmount  money.Money    `db:"discount_amount"`
	Tax             money.Money    `db:"tax"`
	Total           money.Money    `db:"total"`
	PaymentMethods  string         `db:"payment_methods"`
	Terms           string         `db:"terms"`
	Issuer          string         `db:"issuer"`
	Notes           string         `db:"notes"`
	ShareToken      sql.NullString `db:"share_token"`
	CreatedAt       string         `db:"created_at"`
	UpdatedAt       string         `db:"updated_at"`
}

type lineRow struct {
	QuotationID string      `db:"quotation_id"`
	Position    int         `db:"position"`
	LineID      string      `db:"line_id"`
	Name        string      `db:"name"`
	Description string      `db:"description"`
	UnitPrice   money.Money `db:"unit_price"`
	Category    string      `db:"category"`
	Unit        string      `db:"unit"`
	Quantity    int         `db:"quantity"`
	Duration    string      `db:"duration"`
}

func (r *SQLQuotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	args, err := quotationArgs(q)
	if err != nil {
		return err
	}
	query := r.db.Rebind(`INSERT INTO quotations (` + quotationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting quotation: %w", err)
	}
	return r.insertLines(ctx, q)
}

func (r *SQLQuotationRepo) GetByID(ctx context.Context, id string) (*domain.Quotation, error) {
	return r.getOne(ctx, `WHERE id = ?`, id, "quotation")
}

func (r *SQLQuotationRepo) GetByShareToken(ctx context.Context, token string) (*domain.Quotation, error) {
	if token == "" {
		return nil, fmt.Errorf("share token is empty: %w", domain.ErrNotFound)
	}
	return r.getOne(ctx, `WHERE share_token = ?`, token, "share token")
}

func (r *SQLQuotationRepo) getOne(ctx context.Context, where, key, what string) (*domain.Quotation, error) {
	var row quotationRow
	query := r.db.Rebind(`SELECT ` + quotationColumns + ` FROM quotations ` + where)
	if err := sqlx.GetContext(ctx, r.db, &row, query, key); err != nil {
		return nil, notFound(err, what, key)
	}

	var lines []lineRow
	linesQuery := r.db.Rebind(`SELECT quotation_id, position, line_id, name, description, unit_price,
		category, unit, quantity, duration
		FROM quotation_lines WHERE quotation_id = ? ORDER BY position`)
	if err := sqlx.SelectContext(ctx, r.db, &lines, linesQuery, row.ID); err != nil {
		return nil, fmt.Errorf("loading lines of quotation %s: %w", row.ID, err)
	}
	return row.toDomain(lines)
}

// List returns an owner's quotations, newest first.
func (r *SQLQuotationRepo) List(ctx context.Context, ownerID string) ([]*domain.Quotation, error) {
	var rows []quotationRow
	query := r.db.Rebind(`SELECT ` + quotationColumns + ` FROM quotations
		WHERE owner_id = ? ORDER BY created_at DESC, number DESC`)
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("listing quotations: %w", err)
	}

	var lines []lineRow
	linesQuery := r.db.Rebind(`SELECT l.quotation_id, l.position, l.line_id, l.name, l.description,
		l.unit_price, l.category, l.unit, l.quantity, l.duration
		FROM quotation_lines l JOIN quotations q ON q.id = l.quotation_id
		WHERE q.owner_id = ? ORDER BY l.quotation_id, l.position`)
	if err := sqlx.SelectContext(ctx, r.db, &lines, linesQuery, ownerID); err != nil {
		return nil, fmt.Errorf("listing quotation lines: %w", err)
	}
	byQuotation := make(map[string][]lineRow, len(rows))
	for _, l := range lines {
		byQuotation[l.QuotationID] = append(byQuotation[l.QuotationID], l)
	}

	out := make([]*domain.Quotation, 0, len(rows))
	for i := range rows {
		q, err := rows[i].toDomain(byQuotation[rows[i].ID])
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// Update rewrites the header and replaces all lines. The share token is
// left untouched; use SetShareToken for it.
func (r *SQLQuotationRepo) Update(ctx context.Context, q *domain.Quotation) error {
	args, err := quotationArgs(q)
	if err != nil {
		return err
	}
	// Drop id (first) and share_token/created_at (positions 23, 24); keep updated_at.
	set := append(append([]any{}, args[1:23]...), args[25], q.ID)
	query := r.db.Rebind(`UPDATE quotations SET owner_id = ?, number = ?, client_id = ?, client_name = ?,
		client_email = ?, client_phone = ?, client_company = ?, client_address = ?, issue_date = ?,
		expiration_date = ?, status = ?, discount_percent = ?, tax_rate = ?, apply_tax = ?,
		subtotal = ?, discount_amount = ?, tax = ?, total = ?, payment_methods = ?, terms = ?,
		issuer = ?, notes = ?, updated_at = ?
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, set...)
	if err != nil {
		return fmt.Errorf("updating quotation: %w", err)
	}
	if err := expectAffected(res, "quotation", q.ID); err != nil {
		return err
	}
	return r.replaceLines(ctx, q)
}

// UpdateStatus writes status and updated_at in one statement.
func (r *SQLQuotationRepo) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	query := r.db.Rebind(`UPDATE quotations SET status = ?, updated_at = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, string(status), formatTimestamp(updatedAt), id)
	if err != nil {
		return fmt.Errorf("updating quotation status: %w", err)
	}
	return expectAffected(res, "quotation", id)
}

func (r *SQLQuotationRepo) SetShareToken(ctx context.Context, id, token string) error {
	query := r.db.Rebind(`UPDATE quotations SET share_token = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, nullableString(token), id)
	if err != nil {
		return fmt.Errorf("setting share token: %w", err)
	}
	return expectAffected(res, "quotation", id)
}

// Upsert inserts q or overwrites the row with the same ID, lines included.
// A row with that ID owned by someone else is left alone and the call fails
// with domain.ErrOwnerMismatch. A number already taken by a different
// quotation of the owner fails with the store's unique-constraint error.
func (r *SQLQuotationRepo) Upsert(ctx context.Context, q *domain.Quotation) error {
	args, err := quotationArgs(q)
	if err != nil {
		return err
	}
	query := r.db.Rebind(`INSERT INTO quotations (` + quotationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			number = excluded.number, client_id = excluded.client_id,
			client_name = excluded.client_name, client_email = excluded.client_email,
			client_phone = excluded.client_phone, client_company = excluded.client_company,
			client_address = excluded.client_address, issue_date = excluded.issue_date,
			expiration_date = excluded.expiration_date, status = excluded.status,
			discount_percent = excluded.discount_percent, tax_rate = excluded.tax_rate,
			apply_tax = excluded.apply_tax, subtotal = excluded.subtotal,
			discount_amount = excluded.discount_amount, tax = excluded.tax, total = excluded.total,
			payment_methods = excluded.payment_methods, terms = excluded.terms, issuer = excluded.issuer,
			notes = excluded.notes, share_token = excluded.share_token,
			created_at = excluded.created_at, updated_at = excluded.updated_at
		WHERE quotations.owner_id = excluded.owner_id`)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("upserting quotation %s: %w", q.Number, err)
	}
	if err := expectOwned(res, "quotation", q.ID); err != nil {
		return err
	}
	return r.replaceLines(ctx, q)
}

func (r *SQLQuotationRepo) Delete(ctx context.Context, id string) error {
	// Lines go first so deletion does not depend on foreign-key cascades.
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM quotation_lines WHERE quotation_id = ?`), id); err != nil {
		return fmt.Errorf("deleting quotation lines: %w", err)
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM quotations WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("deleting quotation: %w", err)
	}
	return expectAffected(res, "quotation", id)
}

func (r *SQLQuotationRepo) replaceLines(ctx context.Context, q *domain.Quotation) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM quotation_lines WHERE quotation_id = ?`), q.ID); err != nil {
		return fmt.Errorf("clearing lines of quotation %s: %w", q.ID, err)
	}
	return r.insertLines(ctx, q)
}

func (r *SQLQuotationRepo) insertLines(ctx context.Context, q *domain.Quotation) error {
	query := r.db.Rebind(`INSERT INTO quotation_lines (quotation_id, position, line_id, name, description,
		unit_price, category, unit, quantity, duration)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for i, l := range q.Lines {
		_, err := r.db.ExecContext(ctx, query,
			q.ID, i, l.ID, l.Name, l.Description, l.UnitPrice,
			string(l.Category), string(l.Unit), l.Quantity, l.Duration,
		)
		if err != nil {
			return fmt.Errorf("inserting line %d of quotation %s: %w", i+1, q.ID, err)
		}
	}
	return nil
}

// quotationArgs returns values in quotationColumns order.
func quotationArgs(q *domain.Quotation) ([]any, error) {
	methods, err := encodeJSON(q.PaymentMethods, "payment methods")
	if err != nil {
		return nil, err
	}
	terms, err := encodeJSON(q.Terms, "terms")
	if err != nil {
		return nil, err
	}
	issuer, err := encodeJSON(q.Issuer, "issuer")
	if err != nil {
		return nil, err
	}
	c := q.Client
	return []any{
		q.ID, q.OwnerID, q.Number,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address,
		q.IssueDate.Format(dateLayout),
		q.ExpirationDate.Format(dateLayout),
		string(q.Status),
		q.DiscountPercent,
		q.Tax.RatePercent, boolToInt(q.Tax.Apply),
		q.Totals.Subtotal, q.Totals.DiscountAmount, q.Totals.Tax, q.Totals.Total,
		methods, terms, issuer,
		q.Notes,
		nullableString(q.ShareToken),
		formatTimestamp(q.CreatedAt),
		formatTimestamp(q.UpdatedAt),
	}, nil
}

func (row *quotationRow) toDomain(lines []lineRow) (*domain.Quotation, error) {
	q := &domain.Quotation{
		ID:      row.ID,
		OwnerID: row.OwnerID,
		Number:  row.Number,
		Client: domain.ClientSnapshot{
			ID:      row.ClientID,
			Name:    row.ClientName,
			Email:   row.ClientEmail,
			Phone:   row.ClientPhone,
			Company: row.ClientCompany,
			Address: row.ClientAddress,
		},
		Status:          domain.Status(row.Status),
		DiscountPercent: row.DiscountPercent,
		Tax:             domain.TaxSettings{RatePercent: row.TaxRate, Apply: intToBool(row.ApplyTax)},
		Totals: domain.Totals{
			Subtotal:       row.Subtotal,
			DiscountAmount: row.DiscountAmount,
			TaxableBase:    row.Subtotal.Sub(row.DiscountAmount),
			Tax:            row.Tax,
			Total:          row.Total,
		},
		Notes:      row.Notes,
		ShareToken: row.ShareToken.String,
	}

	var err error
	if q.IssueDate, err = parseDate(row.IssueDate, "issue_date"); err != nil {
		return nil, err
	}
	if q.ExpirationDate, err = parseDate(row.ExpirationDate, "expiration_date"); err != nil {
		return nil, err
	}
	if q.CreatedAt, err = parseTimestamp(row.CreatedAt, "created_at"); err != nil {
		return nil, err
	}
	if q.UpdatedAt, err = parseTimestamp(row.UpdatedAt, "updated_at"); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.PaymentMethods, &q.PaymentMethods, "payment_methods"); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.Terms, &q.Terms, "terms"); err != nil {
		return nil, err
	}
	if err := decodeJSON(row.Issuer, &q.Issuer, "issuer"); err != nil {
		return nil, err
	}

	q.Lines = make([]domain.ServiceLine, len(lines))
	for i, l := range lines {
		q.Lines[i] = domain.ServiceLine{
			ID:          l.LineID,
			Name:        l.Name,
			Description: l.Description,
			UnitPrice:   l.UnitPrice,
			Category:    domain.Category(l.Category),
			Unit:        domain.Unit(l.Unit),
			Quantity:    l.Quantity,
			Duration:    l.Duration,
		}
	}
	return q, nil
}
