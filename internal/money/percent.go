package money

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Percent is a rate expressed in percent (16 means 16%).
type Percent struct {
	d decimal.Decimal
}

// PercentOf returns a whole-number percentage.
func PercentOf(p int64) Percent {
	return Percent{d: decimal.NewFromInt(p)}
}

// ParsePercent reads a percentage such as "12.5".
func ParsePercent(s string) (Percent, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Percent{}, fmt.Errorf("parsing percentage %q: %w", s, err)
	}
	return Percent{d: d}, nil
}

// MustParsePercent is ParsePercent for constants and tests.
func MustParsePercent(s string) Percent {
	p, err := ParsePercent(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PercentFromFloat converts a float input to a percentage.
func PercentFromFloat(f float64) Percent {
	return Percent{d: decimal.NewFromFloat(f)}
}

// InRange reports whether the percentage lies in [0, 100].
func (p Percent) InRange() bool {
	return !p.d.IsNegative() && p.d.Cmp(hundred) <= 0
}

// Fraction returns p / 100.
func (p Percent) Fraction() decimal.Decimal {
	return p.d.Div(hundred)
}

func (p Percent) IsZero() bool { return p.d.IsZero() }
func (p Percent) Equal(o Percent) bool { return p.d.Equal(o.d) }

func (p Percent) String() string {
	return p.d.String()
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return []byte(p.d.String()), nil
}

func (p *Percent) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = Percent{}
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("decoding percentage: %w", err)
	}
	p.d = d
	return nil
}

func (p Percent) Value() (driver.Value, error) {
	return p.d.String(), nil
}

func (p *Percent) Scan(src any) error {
	if src == nil {
		*p = Percent{}
		return nil
	}
	var d decimal.NullDecimal
	if err := d.Scan(src); err != nil {
		return fmt.Errorf("scanning percentage: %w", err)
	}
	p.d = d.Decimal
	return nil
}
