package backup

import (
	"cmp"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hidrocoding/cotizador/internal/domain"
)

const timestampLayout = time.RFC3339

// FromQuotation builds the exported form of q.
func FromQuotation(q *domain.Quotation) QuotationRecord {
	lines := make([]LineRecord, len(q.Lines))
	for i, l := range q.Lines {
		lines[i] = LineRecord{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			UnitPrice:   l.UnitPrice,
			Category:    string(l.Category),
			Unit:        string(l.Unit),
			Quantity:    l.Quantity,
			Duration:    l.Duration,
		}
	}
	rate, apply := q.Tax.RatePercent, q.Tax.Apply
	return QuotationRecord{
		ID:     q.ID,
		Number: q.Number,
		Client: ClientSnapshotRecord{
			ID:      q.Client.ID,
			Name:    q.Client.Name,
			Email:   q.Client.Email,
			Phone:   q.Client.Phone,
			Company: q.Client.Company,
			Address: q.Client.Address,
		},
		IssueDate:       q.IssueDate.Format(domain.DateLayout),
		ExpirationDate:  q.ExpirationDate.Format(domain.DateLayout),
		Status:          string(q.Status),
		Lines:           lines,
		DiscountPercent: q.DiscountPercent,
		TaxRate:         &rate,
		ApplyTax:        &apply,
		Subtotal:        q.Totals.Subtotal,
		DiscountAmount:  q.Totals.DiscountAmount,
		Tax:             q.Totals.Tax,
		Total:           q.Totals.Total,
		PaymentMethods:  q.PaymentMethods,
		Terms:           q.Terms,
		Notes:           q.Notes,
		Issuer:          q.Issuer,
		ShareToken:      q.ShareToken,
		CreatedAt:       q.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt:       q.UpdatedAt.UTC().Format(timestampLayout),
	}
}

// ToQuotation converts a validated record into a quotation owned by owner.
// Missing IDs and timestamps are filled in; legacy Spanish status, category
// and unit values are accepted. Totals are left for the caller to price.
//
// Records without tax settings take the rate from def and apply tax when the
// exported tax amount is non-zero, so their totals survive the import.
func (r *QuotationRecord) ToQuotation(owner string, now time.Time, def domain.TaxSettings) (*domain.Quotation, error) {
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return nil, fmt.Errorf("quotation %s: %w", r.Number, err)
	}
	issue, err := time.Parse(domain.DateLayout, r.IssueDate)
	if err != nil {
		return nil, fmt.Errorf("quotation %s: parsing issue_date: %w", r.Number, err)
	}
	exp, err := time.Parse(domain.DateLayout, r.ExpirationDate)
	if err != nil {
		return nil, fmt.Errorf("quotation %s: parsing expiration_date: %w", r.Number, err)
	}

	lines := make([]domain.ServiceLine, len(r.Lines))
	for i, l := range r.Lines {
		cat, err := domain.ParseCategory(l.Category)
		if err != nil {
			return nil, fmt.Errorf("quotation %s line %d: %w", r.Number, i+1, err)
		}
		unit, err := domain.ParseUnit(l.Unit)
		if err != nil {
			return nil, fmt.Errorf("quotation %s line %d: %w", r.Number, i+1, err)
		}
		lines[i] = domain.ServiceLine{
			ID:          cmp.Or(l.ID, uuid.New().String()),
			Name:        l.Name,
			Description: l.Description,
			UnitPrice:   l.UnitPrice,
			Category:    cat,
			Unit:        unit,
			Quantity:    l.Quantity,
			Duration:    l.Duration,
		}
	}

	tax := domain.TaxSettings{
		RatePercent: valueOr(r.TaxRate, def.RatePercent),
		Apply:       valueOr(r.ApplyTax, !r.Tax.IsZero()),
	}
	created := parseTimestampOr(r.CreatedAt, now)
	return &domain.Quotation{
		ID:      cmp.Or(r.ID, uuid.New().String()),
		OwnerID: owner,
		Number:  r.Number,
		Client: domain.ClientSnapshot{
			ID:      r.Client.ID,
			Name:    r.Client.Name,
			Email:   r.Client.Email,
			Phone:   r.Client.Phone,
			Company: r.Client.Company,
			Address: r.Client.Address,
		},
		IssueDate:       issue,
		ExpirationDate:  exp,
		Status:          status,
		Lines:           lines,
		DiscountPercent: r.DiscountPercent,
		Tax:             tax,
		PaymentMethods:  r.PaymentMethods,
		Terms:           r.Terms,
		Notes:           r.Notes,
		Issuer:          r.Issuer,
		ShareToken:      r.ShareToken,
		CreatedAt:       created,
		UpdatedAt:       parseTimestampOr(r.UpdatedAt, created),
	}, nil
}

func FromClient(c *domain.Client) ClientRecord {
	return ClientRecord{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.UTC().Format(timestampLayout),
		UpdatedAt: c.UpdatedAt.UTC().Format(timestampLayout),
	}
}

func (r *ClientRecord) ToClient(owner string, now time.Time) *domain.Client {
	created := parseTimestampOr(r.CreatedAt, now)
	return &domain.Client{
		ID:        cmp.Or(r.ID, uuid.New().String()),
		OwnerID:   owner,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Company:   r.Company,
		Address:   r.Address,
		CreatedAt: created,
		UpdatedAt: parseTimestampOr(r.UpdatedAt, created),
	}
}

func FromConfig(c *domain.CompanyConfig) *ConfigRecord {
	rate := c.Tax.RatePercent
	apply := c.Tax.Apply
	days := c.ValidityDays
	return &ConfigRecord{
		Name:                  c.Name,
		Email:                 c.Email,
		Phone:                 c.Phone,
		Address:               c.Address,
		Website:               c.Website,
		LogoURL:               c.LogoURL,
		Issuer:                c.Issuer,
		DefaultTerms:          c.DefaultTerms,
		TaxRate:               &rate,
		ApplyTax:              &apply,
		DefaultPaymentMethods: c.DefaultPaymentMethods,
		ValidityDays:          &days,
	}
}

// ToConfig converts r, taking omitted optional fields from the defaults.
func (r *ConfigRecord) ToConfig(owner string, now time.Time) *domain.CompanyConfig {
	def := domain.DefaultCompanyConfig()
	rate := def.Tax.RatePercent
	if r.TaxRate != nil {
		rate = *r.TaxRate
	}
	methods := r.DefaultPaymentMethods
	if len(methods) == 0 {
		methods = def.DefaultPaymentMethods
	}
	return &domain.CompanyConfig{
		OwnerID:      owner,
		Name:         cmp.Or(r.Name, def.Name),
		Email:        r.Email,
		Phone:        r.Phone,
		Address:      r.Address,
		Website:      r.Website,
		LogoURL:      r.LogoURL,
		Issuer:       r.Issuer,
		DefaultTerms: r.DefaultTerms,
		Tax: domain.TaxSettings{
			RatePercent: rate,
			Apply:       valueOr(r.ApplyTax, def.Tax.Apply),
		},
		DefaultPaymentMethods: methods,
		ValidityDays:          valueOr(r.ValidityDays, def.ValidityDays),
		UpdatedAt:             now,
	}
}

func parseTimestampOr(s string, fallback time.Time) time.Time {
	if s == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fallback
	}
	return t
}

// Totals of a record as exported, used to warn when an import reprices a
// quotation differently.
func (r *QuotationRecord) Totals() domain.Totals {
	return domain.Totals{
		Subtotal:       r.Subtotal,
		DiscountAmount: r.DiscountAmount,
		TaxableBase:    r.Subtotal.Sub(r.DiscountAmount),
		Tax:            r.Tax,
		Total:          r.Total,
	}
}


// valueOr dereferences p, or returns def for an absent optional field.
func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
