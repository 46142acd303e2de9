package document

import (
	"fmt"
	"io"
	"time"

	"github.com/hidrocoding/cotizador/internal/domain"
	"github.com/hidrocoding/cotizador/internal/money"
	"github.com/hidrocoding/cotizador/internal/report"
	"github.com/xuri/excelize/v2"
)

// XLSXRenderer writes a quotation as a single-sheet workbook.
type XLSXRenderer struct{}

var _ Renderer = XLSXRenderer{}

type sheetStyles struct {
	title, subtitle, header, cell, label, value, amount int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error
	if s.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 16}}); err != nil {
		return s, fmt.Errorf("create title style: %w", err)
	}
	if s.subtitle, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 11}}); err != nil {
		return s, fmt.Errorf("create subtitle style: %w", err)
	}
	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorders(),
	})
	if err != nil {
		return s, fmt.Errorf("create header style: %w", err)
	}
	if s.cell, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}); err != nil {
		return s, fmt.Errorf("create cell style: %w", err)
	}
	s.amount, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: 4, // #,##0.00
	})
	if err != nil {
		return s, fmt.Errorf("create amount style: %w", err)
	}
	s.label, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return s, fmt.Errorf("create label style: %w", err)
	}
	if s.value, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 11}}); err != nil {
		return s, fmt.Errorf("create value style: %w", err)
	}
	return s, nil
}

// Render lays out header, client, lines and totals of d.
func (XLSXRenderer) Render(w io.Writer, d Document) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(d.Number, "Cotizacion")
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}
	st, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	widths := []float64{6, 40, 18, 8, 16, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	if err := f.MergeCell(sheet, "A1", "F1"); err != nil {
		return fmt.Errorf("merge title: %w", err)
	}
	title := "Cotización " + d.Number
	if d.Company.Name != "" {
		title = d.Company.Name + " · " + title
	}
	f.SetCellValue(sheet, "A1", sanitizeCell(title))
	f.SetCellStyle(sheet, "A1", "F1", st.title)

	header := [][2]string{
		{"Estado", d.StatusLabel},
		{"Fecha", d.IssueDate},
		{"Vigencia", d.ExpirationDate},
		{"Cliente", d.Client.Name},
		{"Empresa", d.Client.Company},
		{"Email", d.Client.Email},
	}
	row := 2
	for _, kv := range header {
		if kv[1] == "" {
			continue
		}
		f.SetCellValue(sheet, cell("A", row), kv[0]+":")
		f.SetCellValue(sheet, cell("B", row), sanitizeCell(kv[1]))
		f.SetCellStyle(sheet, cell("A", row), cell("B", row), st.subtitle)
		row++
	}
	row++

	headers := []string{"#", "Servicio", "Categoría", "Cant.", "Precio unitario", "Importe"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(columns[i], row), h)
	}
	f.SetCellStyle(sheet, cell("A", row), cell("F", row), st.header)
	row++

	for _, l := range d.Lines {
		name := l.Name
		if l.Description != "" {
			name += "\n" + l.Description
		}
		f.SetCellValue(sheet, cell("A", row), l.Ref)
		f.SetCellValue(sheet, cell("B", row), sanitizeCell(name))
		f.SetCellValue(sheet, cell("C", row), l.Category)
		f.SetCellValue(sheet, cell("D", row), l.Quantity)
		f.SetCellValue(sheet, cell("E", row), l.UnitPrice)
		f.SetCellValue(sheet, cell("F", row), l.Amount)
		f.SetCellStyle(sheet, cell("A", row), cell("F", row), st.cell)
		row++
	}
	row++

	totals := [][2]string{{"Subtotal:", d.Subtotal}}
	if d.HasDiscount {
		totals = append(totals, [2]string{"Descuento (" + d.DiscountPercent + "):", "-" + d.DiscountAmount})
	}
	if d.TaxApplied {
		totals = append(totals, [2]string{"IVA (" + d.TaxRate + "):", d.Tax})
	}
	totals = append(totals, [2]string{"Total:", d.Total})
	for _, kv := range totals {
		f.SetCellValue(sheet, cell("E", row), kv[0])
		f.SetCellStyle(sheet, cell("E", row), cell("E", row), st.label)
		f.SetCellValue(sheet, cell("F", row), kv[1])
		f.SetCellStyle(sheet, cell("F", row), cell("F", row), st.value)
		row++
	}

	if d.Notes != "" {
		row++
		f.SetCellValue(sheet, cell("A", row), "Notas:")
		f.SetCellValue(sheet, cell("B", row), sanitizeCell(d.Notes))
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write excel: %w", err)
	}
	return nil
}

// WriteReport exports a list of quotations with a summary sheet. Amounts are
// written as numbers so the sheet can be totalled.
func WriteReport(w io.Writer, qs []domain.Quotation, locale string, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Cotizaciones"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}
	st, err := newSheetStyles(f)
	if err != nil {
		return err
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G"}
	widths := []float64{16, 28, 24, 14, 14, 12, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	headers := []string{"Número", "Cliente", "Empresa", "Emisión", "Vigencia", "Estado", "Total"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(columns[i], 1), h)
	}
	f.SetCellStyle(sheet, "A1", "G1", st.header)

	for i := range qs {
		q := &qs[i]
		row := i + 2
		f.SetCellValue(sheet, cell("A", row), q.Number)
		f.SetCellValue(sheet, cell("B", row), sanitizeCell(q.Client.Name))
		f.SetCellValue(sheet, cell("C", row), sanitizeCell(q.Client.Company))
		f.SetCellValue(sheet, cell("D", row), q.IssueDate.Format(domain.DateLayout))
		f.SetCellValue(sheet, cell("E", row), q.ExpirationDate.Format(domain.DateLayout))
		f.SetCellValue(sheet, cell("F", row), StatusLabel(q.EffectiveStatus(now)))
		f.SetCellStyle(sheet, cell("A", row), cell("F", row), st.cell)
		f.SetCellValue(sheet, cell("G", row), q.Totals.Total.Decimal().InexactFloat64())
		f.SetCellStyle(sheet, cell("G", row), cell("G", row), st.amount)
	}

	if err := writeSummary(f, st, report.Summarize(qs, now), locale); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write excel: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, st sheetStyles, stats report.Statistics, locale string) error {
	const sheet = "Resumen"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", "B", 20); err != nil {
		return fmt.Errorf("set col width: %w", err)
	}
	row := 1
	f.SetCellValue(sheet, cell("A", row), "Total de cotizaciones")
	f.SetCellValue(sheet, cell("B", row), stats.Total)
	row++
	for _, s := range domain.AllStatuses {
		f.SetCellValue(sheet, cell("A", row), StatusLabel(s))
		f.SetCellValue(sheet, cell("B", row), stats.Count(s))
		row++
	}
	f.SetCellStyle(sheet, "A1", cell("B", row-1), st.cell)
	row++
	for _, kv := range [][2]string{
		{"Monto total:", money.Format(stats.TotalAmount, locale)},
		{"Monto aprobado:", money.Format(stats.ApprovedAmount, locale)},
	} {
		f.SetCellValue(sheet, cell("A", row), kv[0])
		f.SetCellStyle(sheet, cell("A", row), cell("A", row), st.label)
		f.SetCellValue(sheet, cell("B", row), kv[1])
		f.SetCellStyle(sheet, cell("B", row), cell("B", row), st.value)
		row++
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// sheetName trims to Excel's 31-character limit.
func sheetName(name, fallback string) string {
	if name == "" {
		return fallback
	}
	if len(name) > 31 {
		return name[:31]
	}
	return name
}

// sanitizeCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
