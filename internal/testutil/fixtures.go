package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
)

// TestOwner is the owner ID used by fixtures unless overridden.
const TestOwner = "owner-test"

var testNumberCounter atomic.Int64

// Client options
type ClientOption func(*domain.Client)

func WithClientOwner(owner string) ClientOption {
	return func(c *domain.Client) {
		c.OwnerID = owner
	}
}

func WithCompany(company string) ClientOption {
	return func(c *domain.Client) {
		c.Company = company
	}
}

func WithEmail(email string) ClientOption {
	return func(c *domain.Client) {
		c.Email = email
	}
}

func NewTestClient(name string, opts ...ClientOption) *domain.Client {
	now := time.Now().UTC()
	c := &domain.Client{
		ID:        uuid.New().String(),
		OwnerID:   TestOwner,
		Name:      name,
		Email:     fmt.Sprintf("%s@example.com", uuid.New().String()[:8]),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Quotation options
type QuotationOption func(*domain.Quotation)

func WithOwner(owner string) QuotationOption {
	return func(q *domain.Quotation) {
		q.OwnerID = owner
	}
}

func WithNumber(number string) QuotationOption {
	return func(q *domain.Quotation) {
		q.Number = number
	}
}

func WithStatus(s domain.Status) QuotationOption {
	return func(q *domain.Quotation) {
		q.Status = s
	}
}

func WithIssueDate(d time.Time) QuotationOption {
	return func(q *domain.Quotation) {
		q.IssueDate = domain.DateOf(d)
		q.ExpirationDate = q.IssueDate.AddDate(0, 0, domain.DefaultValidityDays)
	}
}

func WithExpirationDate(d time.Time) QuotationOption {
	return func(q *domain.Quotation) {
		q.ExpirationDate = domain.DateOf(d)
	}
}

func WithDiscount(p int64) QuotationOption {
	return func(q *domain.Quotation) {
		q.DiscountPercent = money.PercentOf(p)
	}
}

// WithTax sets the quotation's own tax settings at the given rate.
func WithTax(rate int64, apply bool) QuotationOption {
	return func(q *domain.Quotation) {
		q.Tax = domain.TaxSettings{RatePercent: money.PercentOf(rate), Apply: apply}
	}
}

func WithClientSnapshot(c *domain.Client) QuotationOption {
	return func(q *domain.Quotation) {
		q.Client = c.Snapshot()
	}
}

func WithShareToken(token string) QuotationOption {
	return func(q *domain.Quotation) {
		q.ShareToken = token
	}
}

// WithLine appends a service line priced in whole units.
func WithLine(name string, unitPrice int64, qty int) QuotationOption {
	return func(q *domain.Quotation) {
		q.Lines = append(q.Lines, NewTestLine(name, unitPrice, qty))
	}
}

// WithTotal stores totals whose Total is amount, bypassing pricing.
func WithTotal(amount string) QuotationOption {
	return func(q *domain.Quotation) {
		m := money.MustParse(amount)
		q.Totals = domain.Totals{Subtotal: m, TaxableBase: m, Total: m}
	}
}

func NewTestLine(name string, unitPrice int64, qty int) domain.ServiceLine {
	return domain.ServiceLine{
		ID:        uuid.New().String(),
		Name:      name,
		UnitPrice: money.FromInt(unitPrice),
		Category:  domain.CategoryWebDev,
		Unit:      domain.UnitProject,
		Quantity:  qty,
	}
}

// NewTestQuotation returns a valid draft with one line and a unique number.
// Lines given through options replace the default line.
func NewTestQuotation(opts ...QuotationOption) *domain.Quotation {
	now := time.Now().UTC()
	issue := domain.DateOf(now)
	q := &domain.Quotation{
		ID:             uuid.New().String(),
		OwnerID:        TestOwner,
		Number:         domain.FormatNumber(issue.Year(), int(testNumberCounter.Add(1))),
		Client:         domain.ClientSnapshot{Name: "Ana López", Email: "ana@example.com"},
		IssueDate:      issue,
		ExpirationDate: issue.AddDate(0, 0, domain.DefaultValidityDays),
		Status:         domain.StatusDraft,
		Tax:            domain.DefaultCompanyConfig().Tax,
		Terms:          domain.DefaultCompanyConfig().DefaultTerms,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(q)
	}
	if len(q.Lines) == 0 {
		q.Lines = []domain.ServiceLine{NewTestLine("Landing Page", 5000, 1)}
	}
	return q
}
