package money

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// Locale describes how amounts are printed for a region.
type Locale struct {
	Tag          string
	Symbol       string
	SymbolAfter  bool
	ThousandsSep string
	DecimalSep   string
}

var locales = map[string]Locale{
	"es-MX": {Tag: "es-MX", Symbol: "$", ThousandsSep: ",", DecimalSep: "."},
	"en-US": {Tag: "en-US", Symbol: "$", ThousandsSep: ",", DecimalSep: "."},
	"es-ES": {Tag: "es-ES", Symbol: "€", SymbolAfter: true, ThousandsSep: ".", DecimalSep: ","},
	"es-CO": {Tag: "es-CO", Symbol: "$", ThousandsSep: ".", DecimalSep: ","},
}

// DefaultLocale is used when a tag is unknown.
const DefaultLocale = "es-MX"

// LookupLocale returns the formatting rules for tag, falling back to es-MX.
func LookupLocale(tag string) Locale {
	if l, ok := locales[tag]; ok {
		return l
	}
	return locales[DefaultLocale]
}

// Format renders m rounded to cents with the locale's grouping and currency
// symbol, e.g. "$11,000.00" for es-MX or "11.000,00 €" for es-ES.
func Format(m Money, tag string) string {
	l := LookupLocale(tag)
	r := m.Round()

	neg := r.IsNegative()
	if neg {
		r = Money{d: r.d.Neg()}
	}

	_, fracPart, _ := strings.Cut(r.String(), ".")
	grouped := humanize.Comma(r.d.IntPart())
	if l.ThousandsSep != "," {
		grouped = strings.ReplaceAll(grouped, ",", l.ThousandsSep)
	}

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	if !l.SymbolAfter {
		b.WriteString(l.Symbol)
	}
	b.WriteString(grouped)
	b.WriteString(l.DecimalSep)
	b.WriteString(fracPart)
	if l.SymbolAfter {
		b.WriteString(" ")
		b.WriteString(l.Symbol)
	}
	return b.String()
}
