package formatter

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hidrocoding/cotizador/internal/catalog"
	"github.com/hidrocoding/cotizador/internal/document"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
	"github.com/hidrocoding/cotizador/internal/report"
	"github.com/hidrocoding/cotizador/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)

func sampleQuotation() *domain.Quotation {
	client := testutil.NewTestClient("Ana Torres", testutil.WithCompany("Acme"))
	q := testutil.NewTestQuotation(
		testutil.WithNumber("COT-2025-007"),
		testutil.WithClientSnapshot(client),
		testutil.WithIssueDate(time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)),
		testutil.WithLine("Landing Page", 5000, 1),
		testutil.WithLine("Hora de consultoría", 800, 10),
		testutil.WithDiscount(10),
		testutil.WithTax(16, true),
	)
	q.Totals = domain.Totals{
		Subtotal:       money.FromInt(13000),
		DiscountAmount: money.FromInt(1300),
		TaxableBase:    money.FromInt(11700),
		Tax:            money.FromInt(1872),
		Total:          money.FromInt(13572),
	}
	q.Notes = "Incluye dos rondas de cambios."
	q.PaymentMethods = domain.DefaultCompanyConfig().DefaultPaymentMethods
	return q
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "Monto"}, [][]string{{"uno", "$1.00"}, {"dos", "$100.00"}}, 1)
	lines := nonEmptyLines(out)
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Monto")
	assert.Contains(t, lines[1], "─")
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestTerminalRenderer_PrintsDocument(t *testing.T) {
	d := document.Resolve(sampleQuotation(), domain.DefaultCompanyConfig(), "es-MX", now)

	var buf bytes.Buffer
	require.NoError(t, TerminalRenderer{}.Render(&buf, d))
	out := buf.String()

	assert.Contains(t, out, "COTIZACIÓN COT-2025-007")
	assert.Contains(t, out, "15 de enero de 2025")
	assert.Contains(t, out, "Ana Torres")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "001")
	assert.Contains(t, out, "Landing Page")
	assert.Contains(t, out, "$8,000.00")
	assert.Contains(t, out, "Descuento (10%)")
	assert.Contains(t, out, "IVA (16%)")
	assert.Contains(t, out, "$13,572.00")
	assert.Contains(t, out, "Transferencia Bancaria")
	assert.Contains(t, out, "Incluye dos rondas de cambios.")
}

func TestFormatDocument_HidesDiscountAndTaxWhenAbsent(t *testing.T) {
	q := sampleQuotation()
	q.DiscountPercent = money.PercentOf(0)
	q.Tax.Apply = false
	q.Totals.Tax = money.Zero
	d := document.Resolve(q, domain.DefaultCompanyConfig(), "es-MX", now)

	out := FormatDocument(d)
	assert.NotContains(t, out, "Descuento")
	assert.NotContains(t, out, "IVA")
}

func TestFormatQuotationList_UsesEffectiveStatus(t *testing.T) {
	q := sampleQuotation()
	q.Status = domain.StatusSent
	later := q.ExpirationDate.AddDate(0, 0, 1)

	out := FormatQuotationList([]domain.Quotation{*q}, "es-MX", later)
	assert.Contains(t, out, "COT-2025-007")
	assert.Contains(t, out, "Vencida")
	assert.Contains(t, out, "$13,572.00")
}

func TestFormatStats(t *testing.T) {
	a := sampleQuotation()
	a.Status = domain.StatusApproved
	b := sampleQuotation()
	qs := []domain.Quotation{*a, *b}

	out := FormatStats(report.Summarize(qs, now), report.Group(qs, now), "es-MX")
	assert.Contains(t, out, "Total de cotizaciones: 2")
	assert.Contains(t, out, "$27,144.00")
	assert.Contains(t, out, "2025-01")
}

func TestFormatCatalog(t *testing.T) {
	out := FormatCatalog(catalog.All()[:2], "es-MX")
	assert.Contains(t, out, catalog.All()[0].Name)
	assert.Contains(t, out, "Precio")
}

func TestFormatConfig(t *testing.T) {
	out := FormatConfig(domain.DefaultCompanyConfig())
	assert.Contains(t, out, "Hidro_coding")
	assert.Contains(t, out, "16%")
	assert.Contains(t, out, "no se aplica")
	assert.Contains(t, out, "30")
}

func TestFormatClientList(t *testing.T) {
	c := testutil.NewTestClient("Bruno Díaz", testutil.WithEmail("bruno@example.com"))
	c.UpdatedAt = now.Add(-2 * time.Hour)
	out := FormatClientList([]*domain.Client{c}, now)
	assert.Contains(t, out, "Bruno Díaz")
	assert.Contains(t, out, "bruno@example.com")
	assert.Contains(t, out, "2 hours ago")
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, l := range bytes.Split([]byte(s), []byte("\n")) {
		if len(bytes.TrimSpace(l)) > 0 {
			out = append(out, string(l))
		}
	}
	return out
}
