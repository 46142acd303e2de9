// Package document resolves a quotation into a fully formatted, read-only
// view that renderers print without further computation.
package document

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hidrocoding/cotizador/internal/catalog"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
)

// Renderer writes a resolved document in some output format.
type Renderer interface {
	Render(w io.Writer, d Document) error
}

type Company struct {
	Name    string
	Email   string
	Phone   string
	Address string
	Website string
	LogoURL string
}

// Line is a quotation line with every amount already formatted.
type Line struct {
	No          int
	Ref         string
	Name        string
	Description string
	Category    string
	Unit        string
	Duration    string
	Quantity    int
	UnitPrice   string
	Amount      string
}

type Document struct {
	Number         string
	Status         domain.Status
	StatusLabel    string
	IssueDate      string
	ExpirationDate string
	Company        Company
	Issuer         domain.Issuer
	Client         domain.ClientSnapshot
	Lines          []Line

	Subtotal        string
	HasDiscount     bool
	DiscountPercent string
	DiscountAmount  string
	TaxableBase     string
	TaxApplied      bool
	TaxRate         string
	Tax             string
	Total           string

	PaymentMethods []domain.PaymentMethod
	Terms          domain.Terms
	Notes          string
	Locale         string
}

var statusLabels = map[domain.Status]string{
	domain.StatusDraft:    "Borrador",
	domain.StatusSent:     "Enviada",
	domain.StatusApproved: "Aprobada",
	domain.StatusRejected: "Rechazada",
	domain.StatusExpired:  "Vencida",
}

// StatusLabel returns the display name of s.
func StatusLabel(s domain.Status) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Resolve formats q for display at now. Totals are taken from q as stored;
// callers price the quotation before resolving it.
func Resolve(q *domain.Quotation, cfg domain.CompanyConfig, locale string, now time.Time) Document {
	if locale == "" {
		locale = money.DefaultLocale
	}
	status := q.EffectiveStatus(now)
	d := Document{
		Number:         q.Number,
		Status:         status,
		StatusLabel:    StatusLabel(status),
		IssueDate:      FormatDate(q.IssueDate, locale),
		ExpirationDate: FormatDate(q.ExpirationDate, locale),
		Company: Company{
			Name:    cfg.Name,
			Email:   cfg.Email,
			Phone:   cfg.Phone,
			Address: cfg.Address,
			Website: cfg.Website,
			LogoURL: cfg.LogoURL,
		},
		Issuer:          q.Issuer,
		Client:          q.Client,
		Lines:           make([]Line, 0, len(q.Lines)),
		Subtotal:        money.Format(q.Totals.Subtotal, locale),
		HasDiscount:     !q.DiscountPercent.IsZero(),
		DiscountPercent: q.DiscountPercent.String() + "%",
		DiscountAmount:  money.Format(q.Totals.DiscountAmount, locale),
		TaxableBase:     money.Format(q.Totals.TaxableBase, locale),
		TaxApplied:      q.Tax.Apply || !q.Totals.Tax.IsZero(),
		TaxRate:         q.Tax.RatePercent.String() + "%",
		Tax:             money.Format(q.Totals.Tax, locale),
		Total:           money.Format(q.Totals.Total, locale),
		PaymentMethods:  q.PaymentMethods,
		Terms:           q.Terms,
		Notes:           q.Notes,
		Locale:          locale,
	}
	for i := range q.Lines {
		l := &q.Lines[i]
		qty := l.EffectiveQuantity()
		d.Lines = append(d.Lines, Line{
			No:          i + 1,
			Ref:         fmt.Sprintf("%03d", i+1),
			Name:        l.Name,
			Description: l.Description,
			Category:    catalog.CategoryLabel(l.Category),
			Unit:        catalog.UnitLabel(l.Unit),
			Duration:    l.Duration,
			Quantity:    qty,
			UnitPrice:   money.Format(l.UnitPrice, locale),
			Amount:      money.Format(l.UnitPrice.Times(int64(qty)), locale),
		})
	}
	return d
}

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders a calendar day in long form: "15 de enero de 2025" for
// Spanish locales, "January 15, 2025" otherwise. The zero time renders empty.
func FormatDate(t time.Time, locale string) string {
	if t.IsZero() {
		return ""
	}
	if locale == "" || strings.HasPrefix(locale, "es") {
		return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
	}
	return t.Format("January 2, 2006")
}
