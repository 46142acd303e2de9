package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hidrocoding/cotizador/internal/catalog"
	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
	"github.com/hidrocoding/cotizador/internal/report"
)

// FormatQuotationList renders one row per quotation with its effective
// status at now.
func FormatQuotationList(qs []domain.Quotation, locale string, now time.Time) string {
	rows := make([][]string, 0, len(qs))
	for i := range qs {
		q := &qs[i]
		client := q.Client.Name
		if q.Client.Company != "" {
			client += Dim(" · " + q.Client.Company)
		}
		rows = append(rows, []string{
			q.Number,
			client,
			q.IssueDate.Format(domain.DateLayout),
			q.ExpirationDate.Format(domain.DateLayout),
			StatusPill(q.EffectiveStatus(now)),
			money.Format(q.Totals.Total, locale),
		})
	}
	return RenderTable(
		[]string{"Número", "Cliente", "Emisión", "Vigencia", "Estado", "Total"},
		rows, 5,
	)
}

// FormatStats renders the status breakdown and the per-month totals.
func FormatStats(st report.Statistics, months []report.MonthTotals, locale string) string {
	var b strings.Builder
	b.WriteString(Header("Resumen") + "\n")
	rows := make([][]string, 0, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		rows = append(rows, []string{StatusPill(s), humanize.Comma(int64(st.Count(s)))})
	}
	b.WriteString(RenderTable([]string{"Estado", "Cotizaciones"}, rows, 1))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Total de cotizaciones:"), humanize.Comma(int64(st.Total))))
	b.WriteString(fmt.Sprintf("%s %s\n", Bold("Monto total:"), money.Format(st.TotalAmount, locale)))
	b.WriteString(fmt.Sprintf("%s %s", Bold("Monto aprobado:"), money.Format(st.ApprovedAmount, locale)))

	if len(months) > 0 {
		b.WriteString("\n\n" + Header("Por mes") + "\n")
		mrows := make([][]string, 0, len(months))
		for _, m := range months {
			mrows = append(mrows, []string{
				m.Month,
				strconv.Itoa(m.Count),
				money.Format(m.Total, locale),
				money.Format(m.Approved, locale),
			})
		}
		b.WriteString(RenderTable([]string{"Mes", "Cotizaciones", "Total", "Aprobado"}, mrows, 1, 2, 3))
	}
	return b.String()
}

// FormatClientList renders the client directory. Updated times are shown
// relative to now.
func FormatClientList(clients []*domain.Client, now time.Time) string {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{
			shortID(c.ID), c.Name, c.Email, c.Company, c.Phone,
			humanize.RelTime(c.UpdatedAt, now, "ago", "from now"),
		})
	}
	return RenderTable([]string{"ID", "Nombre", "Email", "Empresa", "Teléfono", "Actualizado"}, rows)
}

// FormatCatalog renders service templates with prices in locale.
func FormatCatalog(ts []catalog.Template, locale string) string {
	rows := make([][]string, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, []string{
			t.ID,
			t.Name,
			catalog.CategoryLabel(t.Category),
			catalog.UnitLabel(t.Unit),
			t.Duration,
			money.Format(t.BasePrice, locale),
		})
	}
	return RenderTable([]string{"ID", "Servicio", "Categoría", "Unidad", "Duración", "Precio"}, rows, 5)
}

// FormatConfig renders the company configuration.
func FormatConfig(c domain.CompanyConfig) string {
	var b strings.Builder
	field := func(label, value string) {
		if value == "" {
			value = Dim("-")
		}
		b.WriteString(fmt.Sprintf("%-22s %s\n", label+":", value))
	}

	b.WriteString(Header("Empresa") + "\n")
	field("Nombre", c.Name)
	field("Email", c.Email)
	field("Teléfono", c.Phone)
	field("Dirección", c.Address)
	field("Sitio web", c.Website)
	field("Logo", c.LogoURL)

	b.WriteString("\n" + Header("Firma") + "\n")
	field("Nombre", c.Issuer.Name)
	field("Cargo", c.Issuer.Title)
	field("Email", c.Issuer.Email)
	field("Teléfono", c.Issuer.Phone)

	b.WriteString("\n" + Header("Impuestos y vigencia") + "\n")
	tax := c.Tax.RatePercent.String() + "%"
	if !c.Tax.Apply {
		tax += Dim(" (no se aplica)")
	}
	field("IVA", tax)
	field("Días de vigencia", strconv.Itoa(c.ValidityDays))

	b.WriteString("\n" + Header("Formas de pago") + "\n")
	for _, m := range c.DefaultPaymentMethods {
		b.WriteString("• " + m.Kind + "\n")
	}

	b.WriteString("\n" + Header("Términos") + "\n")
	field("Tiempo de entrega", c.DefaultTerms.DeliveryTime)
	field("Condiciones de pago", c.DefaultTerms.PaymentTerms)
	field("Incluye", c.DefaultTerms.Includes)
	field("No incluye", c.DefaultTerms.Excludes)
	field("Vigencia", c.DefaultTerms.Validity)
	field("Garantía", c.DefaultTerms.Warranty)
	return strings.TrimRight(b.String(), "\n")
}

// FormatShareLink shows the token a client uses to open a quotation.
func FormatShareLink(number, token string) string {
	return RenderBox("Cotización "+number+" compartida",
		"Token: "+Bold(token)+"\n"+Dim("cotizador quote public "+token))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
