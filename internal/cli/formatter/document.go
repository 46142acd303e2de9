package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hidrocoding/cotizador/internal/document"
)

// TerminalRenderer prints a resolved quotation for the terminal.
type TerminalRenderer struct{}

var _ document.Renderer = TerminalRenderer{}

func (TerminalRenderer) Render(w io.Writer, d document.Document) error {
	_, err := io.WriteString(w, FormatDocument(d)+"\n")
	return err
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title != "" {
		return box.Render(StyleHeader.Render(title) + "\n\n" + content)
	}
	return box.Render(content)
}

// FormatDocument lays out a quotation: parties, lines, totals and conditions.
func FormatDocument(d document.Document) string {
	var b strings.Builder

	b.WriteString(documentHeading(d))
	b.WriteString("\n\n")
	b.WriteString(parties(d))
	b.WriteString("\n\n")

	rows := make([][]string, 0, len(d.Lines))
	for _, l := range d.Lines {
		name := l.Name
		if l.Description != "" {
			name += "\n" + Dim(l.Description)
		}
		if l.Duration != "" {
			name += "\n" + Dim("Duración: "+l.Duration)
		}
		rows = append(rows, []string{
			l.Ref, name, l.Category, l.Unit, strconv.Itoa(l.Quantity), l.UnitPrice, l.Amount,
		})
	}
	b.WriteString(RenderTable(
		[]string{"Ref", "Servicio", "Categoría", "Unidad", "Cant.", "Precio", "Importe"},
		rows, 4, 5, 6,
	))
	b.WriteString("\n\n")
	b.WriteString(totals(d))

	if len(d.PaymentMethods) > 0 {
		b.WriteString("\n\n" + Header("Formas de pago") + "\n")
		for _, m := range d.PaymentMethods {
			b.WriteString("• " + m.Kind + "\n")
			for _, detail := range m.Details {
				b.WriteString("    " + detail + "\n")
			}
		}
	}

	if terms := termLines(d); len(terms) > 0 {
		b.WriteString("\n" + Header("Términos y condiciones") + "\n")
		b.WriteString(strings.Join(terms, "\n"))
		b.WriteString("\n")
	}
	if d.Notes != "" {
		b.WriteString("\n" + Header("Notas") + "\n" + d.Notes + "\n")
	}
	if d.Issuer.Name != "" {
		b.WriteString("\n" + Bold(d.Issuer.Name))
		if d.Issuer.Title != "" {
			b.WriteString("\n" + Dim(d.Issuer.Title))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func documentHeading(d document.Document) string {
	left := Bold(d.Company.Name)
	for _, s := range []string{d.Company.Address, d.Company.Email, d.Company.Phone, d.Company.Website} {
		if s != "" {
			left += "\n" + Dim(s)
		}
	}
	right := strings.Join([]string{
		StyleHeader.Render("COTIZACIÓN " + d.Number),
		StatusPill(d.Status),
		"Emisión: " + d.IssueDate,
		"Vigencia: " + d.ExpirationDate,
	}, "\n")
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(6).Render(left),
		lipgloss.NewStyle().Align(lipgloss.Right).Render(right),
	)
}

func parties(d document.Document) string {
	c := d.Client
	lines := []string{Bold(c.Name)}
	for _, s := range []string{c.Company, c.Email, c.Phone, c.Address} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	return Header("Cliente") + "\n" + strings.Join(lines, "\n")
}

func totals(d document.Document) string {
	type row struct{ label, value string }
	rows := []row{{"Subtotal", d.Subtotal}}
	if d.HasDiscount {
		rows = append(rows,
			row{fmt.Sprintf("Descuento (%s)", d.DiscountPercent), "-" + d.DiscountAmount},
			row{"Base gravable", d.TaxableBase},
		)
	}
	if d.TaxApplied {
		rows = append(rows, row{fmt.Sprintf("IVA (%s)", d.TaxRate), d.Tax})
	}

	labels := make([]string, 0, len(rows)+1)
	values := make([]string, 0, len(rows)+1)
	for _, r := range rows {
		labels = append(labels, r.label)
		values = append(values, r.value)
	}
	labels = append(labels, Bold("Total"))
	values = append(values, Bold(d.Total))

	block := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(4).Render(strings.Join(labels, "\n")),
		lipgloss.NewStyle().Align(lipgloss.Right).Render(strings.Join(values, "\n")),
	)
	return block
}

func termLines(d document.Document) []string {
	var out []string
	add := func(label, text string) {
		if text != "" {
			out = append(out, Bold(label+":")+" "+text)
		}
	}
	add("Tiempo de entrega", d.Terms.DeliveryTime)
	add("Condiciones de pago", d.Terms.PaymentTerms)
	add("Incluye", d.Terms.Includes)
	add("No incluye", d.Terms.Excludes)
	add("Vigencia", d.Terms.Validity)
	add("Garantía", d.Terms.Warranty)
	return out
}
