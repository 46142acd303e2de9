package domain

import (
	"strings"
	"time"

	"github.com/hidrocoding/cotizador/internal/money"
)

// ServiceLine is one priced line of a quotation.
type ServiceLine struct {
	ID          string
	Name        string
	Description string
	UnitPrice   money.Money
	Category    Category
	Unit        Unit
	Quantity    int
	Duration    string
}

// EffectiveQuantity treats a missing (zero) quantity as one.
func (l *ServiceLine) EffectiveQuantity() int {
	if l.Quantity == 0 {
		return 1
	}
	return l.Quantity
}

// Totals is the pricing projection of a quotation. It is never set by hand.
type Totals struct {
	Subtotal       money.Money
	DiscountAmount money.Money
	TaxableBase    money.Money
	Tax            money.Money
	Total          money.Money
}

// Quotation is a priced proposal. Tax holds the settings the quotation was
// created with; later changes to the owner's configuration do not touch it.
type Quotation struct {
	ID              string
	OwnerID         string
	Number          string
	Client          ClientSnapshot
	IssueDate       time.Time
	ExpirationDate  time.Time
	Status          Status
	Lines           []ServiceLine
	DiscountPercent money.Percent
	Tax             TaxSettings
	Totals          Totals
	PaymentMethods  []PaymentMethod
	Terms           Terms
	Notes           string
	Issuer          Issuer
	ShareToken      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewDraft returns a quotation pre-filled from the owner's configuration.
// The expiration date is the issue date plus the configured validity period.
func NewDraft(cfg CompanyConfig, issue time.Time) *Quotation {
	days := cfg.ValidityDays
	if days <= 0 {
		days = DefaultValidityDays
	}
	issueDate := DateOf(issue)
	methods := make([]PaymentMethod, len(cfg.DefaultPaymentMethods))
	for i, m := range cfg.DefaultPaymentMethods {
		methods[i] = PaymentMethod{Kind: m.Kind, Details: append([]string(nil), m.Details...)}
	}
	return &Quotation{
		OwnerID:        cfg.OwnerID,
		IssueDate:      issueDate,
		ExpirationDate: issueDate.AddDate(0, 0, days),
		Status:         StatusDraft,
		Tax:            cfg.Tax,
		PaymentMethods: methods,
		Terms:          cfg.DefaultTerms,
		Issuer:         cfg.Issuer,
	}
}

// ValidateForSubmit checks what a quotation needs before it is saved:
// client name and email, at least one named line, and a coherent date range.
func (q *Quotation) ValidateForSubmit() error {
	v := &ValidationError{}
	validateContact(v, "client", q.Client.Name, q.Client.Email)
	if len(q.Lines) == 0 {
		v.Add("at least one service line is required")
	}
	for i, l := range q.Lines {
		if strings.TrimSpace(l.Name) == "" {
			v.Add("lines[%d].name is required", i)
		}
	}
	if q.IssueDate.IsZero() {
		v.Add("issue date is required")
	}
	if q.ExpirationDate.Before(q.IssueDate) {
		v.Add("expiration date %s is before issue date %s",
			q.ExpirationDate.Format(DateLayout), q.IssueDate.Format(DateLayout))
	}
	return v.OrNil()
}

// DateLayout is the storage and display layout for calendar dates.
const DateLayout = "2006-01-02"

// DateOf drops the clock part of t, keeping its calendar day.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
