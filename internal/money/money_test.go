package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRound_HalfUp(t *testing.T) {
	cases := map[string]string{
		"1.005":   "1.01",
		"1.004":   "1.00",
		"2.675":   "2.68",
		"9900":    "9900.00",
		"0.125":   "0.13",
		"10.9999": "11.00",
		"-1.005":  "-1.01",
		"-1.004":  "-1.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, MustParse(in).Round().String(), "rounding %s", in)
	}
}

func TestArithmetic_NoFloatDrift(t *testing.T) {
	// 0.1 + 0.2 drifts in float64; decimal stays exact.
	sum := MustParse("0.1").Add(MustParse("0.2"))
	assert.True(t, sum.Equal(MustParse("0.3")))

	line := MustParse("3000").Times(2)
	assert.Equal(t, "6000.00", line.String())

	disc := FromInt(11000).Of(PercentOf(10))
	assert.Equal(t, "1100.00", disc.Round().String())
}

func TestPercent_InRange(t *testing.T) {
	assert.True(t, PercentOf(0).InRange())
	assert.True(t, PercentOf(100).InRange())
	assert.False(t, PercentOf(101).InRange())
	assert.False(t, PercentOf(-1).InRange())

	p, err := ParsePercent("12.5")
	require.NoError(t, err)
	assert.True(t, p.InRange())
	assert.Equal(t, "0.125", p.Fraction().String())
}

func TestMoney_JSONRoundTripAcceptsNumbersAndStrings(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`1234.5`), &m))
	assert.Equal(t, "1234.50", m.String())

	require.NoError(t, json.Unmarshal([]byte(`"99.99"`), &m))
	assert.Equal(t, "99.99", m.String())

	out, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{Total: FromInt(9900)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 9900.00}`, string(out))
}

func TestMoney_ScanText(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("11000.00"))
	assert.Equal(t, "11000.00", m.String())

	require.NoError(t, m.Scan([]byte("5.5")))
	assert.Equal(t, "5.50", m.String())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())
}

func TestFormat_Locales(t *testing.T) {
	amount := MustParse("1234567.891")

	assert.Equal(t, "$1,234,567.89", Format(amount, "es-MX"))
	assert.Equal(t, "1.234.567,89 €", Format(amount, "es-ES"))
	assert.Equal(t, "$0.50", Format(MustParse("0.5"), "en-US"))
	assert.Equal(t, "$999.00", Format(FromInt(999), "xx-YY"), "unknown locale falls back to es-MX")
	assert.Equal(t, "-$10.00", Format(FromInt(-10), "es-MX"))
}
