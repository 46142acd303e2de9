// Package pricing derives quotation totals from service lines, a discount
// and tax settings.
package pricing

import (
	"fmt"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
)

// Compute returns subtotal, discount, taxable base, tax and total.
//
// Every component is rounded half-up to cents before it feeds the next one,
// so Subtotal - DiscountAmount + Tax equals Total exactly. Compute has no side
// effects; calling it twice with the same input yields the same Totals.
func Compute(lines []domain.ServiceLine, discount money.Percent, tax domain.TaxSettings) (domain.Totals, error) {
	if !discount.InRange() {
		return domain.Totals{}, fmt.Errorf("%w: discount %s%% outside [0, 100]", domain.ErrInvalidPricingInput, discount)
	}
	if !tax.RatePercent.InRange() {
		return domain.Totals{}, fmt.Errorf("%w: tax rate %s%% outside [0, 100]", domain.ErrInvalidPricingInput, tax.RatePercent)
	}

	subtotal := money.Zero
	for i := range lines {
		l := &lines[i]
		if l.UnitPrice.IsNegative() {
			return domain.Totals{}, fmt.Errorf("%w: line %d unit price %s is negative", domain.ErrInvalidPricingInput, i+1, l.UnitPrice)
		}
		if l.Quantity < 0 {
			return domain.Totals{}, fmt.Errorf("%w: line %d quantity %d is negative", domain.ErrInvalidPricingInput, i+1, l.Quantity)
		}
		subtotal = subtotal.Add(l.UnitPrice.Times(int64(l.EffectiveQuantity())))
	}
	subtotal = subtotal.Round()

	discountAmount := subtotal.Of(discount).Round()
	base := subtotal.Sub(discountAmount)

	taxAmount := money.Zero
	if tax.Apply {
		taxAmount = base.Of(tax.RatePercent).Round()
	}

	return domain.Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		TaxableBase:    base,
		Tax:            taxAmount,
		Total:          base.Add(taxAmount),
	}, nil
}

// Apply recomputes q's totals in place with the tax settings stored on q.
func Apply(q *domain.Quotation) error {
	t, err := Compute(q.Lines, q.DiscountPercent, q.Tax)
	if err != nil {
		return fmt.Errorf("pricing quotation %s: %w", q.Number, err)
	}
	q.Totals = t
	return nil
}

// Verify reports whether q's stored totals are what Compute yields now.
func Verify(q *domain.Quotation) (bool, error) {
	t, err := Compute(q.Lines, q.DiscountPercent, q.Tax)
	if err != nil {
		return false, err
	}
	return totalsEqual(t, q.Totals), nil
}

func totalsEqual(a, b domain.Totals) bool {
	return a.Subtotal.Equal(b.Subtotal) &&
		a.DiscountAmount.Equal(b.DiscountAmount) &&
		a.TaxableBase.Equal(b.TaxableBase) &&
		a.Tax.Equal(b.Tax) &&
		a.Total.Equal(b.Total)
}
