// Package money provides fixed-point currency and percentage values.
//
// All arithmetic goes through shopspring/decimal; binary floating point is
// only accepted at the input boundary (FromFloat) and never used to compute.
package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is the number of decimal places kept after rounding.
const Cents = 2

// Money is a currency amount. The zero value is 0.00.
type Money struct {
	d decimal.Decimal
}

// Zero is 0.00.
var Zero = Money{}

// FromInt returns a whole-unit amount (5000 -> 5000.00).
func FromInt(units int64) Money {
	return Money{d: decimal.NewFromInt(units)}
}

// FromCents returns an amount expressed in hundredths (150 -> 1.50).
func FromCents(cents int64) Money {
	return Money{d: decimal.New(cents, -Cents)}
}

// FromFloat converts a float input (e.g. a JSON number) to Money.
func FromFloat(f float64) Money {
	return Money{d: decimal.NewFromFloat(f)}
}

// FromDecimal wraps an existing decimal value.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// Parse reads a plain decimal string such as "1234.5".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParse is Parse for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }

// Times multiplies by an integer quantity.
func (m Money) Times(qty int64) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(qty))}
}

// Of returns p percent of m, unrounded.
func (m Money) Of(p Percent) Money {
	return Money{d: m.d.Mul(p.Fraction())}
}

// Round rounds to cents, half away from zero: 0.005 becomes 0.01 and -0.005
// becomes -0.01. Pricing only rounds non-negative amounts, where this is
// half-up.
func (m Money) Round() Money {
	return Money{d: m.d.Round(Cents)}
}

func (m Money) IsNegative() bool { return m.d.IsNegative() }
func (m Money) IsZero() bool { return m.d.IsZero() }
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }
func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }
func (m Money) Decimal() decimal.Decimal { return m.d }

// String renders the amount with exactly two decimals ("9900.00").
func (m Money) String() string {
	return m.d.StringFixed(Cents)
}

// MarshalJSON writes the amount as a bare JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both numbers and quoted strings.
func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Zero
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("decoding amount: %w", err)
	}
	m.d = d
	return nil
}

// Value stores the amount as text so SQLite and Postgres round-trip it exactly.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan reads amounts stored as text, numeric or float columns.
func (m *Money) Scan(src any) error {
	if src == nil {
		*m = Zero
		return nil
	}
	var d decimal.NullDecimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("scanning amount: %w", err)
	}
	m.d = d.Decimal
	return nil
}

// Sum adds amounts without intermediate rounding.
func Sum(ms ...Money) Money {
	total := Zero
	for _, m := range ms {
		total = total.Add(m)
	}
	return total
}
