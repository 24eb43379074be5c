package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/cataloghub/product-service/internal/domain"
)

const timestampFormat = "2006-01-02 15:04:05"

// ErrGenerate indicates the document could not be assembled. Not retried.
var ErrGenerate = errors.New("failed to generate report")

var (
	columnHeaders = []string{"ID", "Product Code", "Product Name", "Description", "Cost", "Status", "Created At"}
	columnWidths  = []float64{16, 38, 38, 76, 26, 24, 42}
)

// Generator renders product lists into downloadable documents. The input list
// order is preserved as-is; filtering and sorting are the store's contract.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// RenderPDF builds the tabular product report: title, period, count, one row
// per product, total cost and a generation timestamp footer.
func (g *Generator) RenderPDF(products []domain.Product, start, end *time.Time, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Product Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Period: %s to %s", formatBound(start), formatBound(end)), "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Products: %d", len(products)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(211, 211, 211)
	for i, header := range columnHeaders {
		pdf.CellFormat(columnWidths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	totalCost := decimal.Zero
	for _, p := range products {
		cells := []string{
			fmt.Sprintf("%d", p.ID),
			p.Code,
			p.Name,
			truncateDescription(p.Description),
			formatCost(p.Cost),
			string(p.Status),
			formatTimestamp(p.CreatedAt),
		}
		for i, cell := range cells {
			pdf.CellFormat(columnWidths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		totalCost = totalCost.Add(p.Cost)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total Cost: %s", formatCost(totalCost)), "", 1, "L", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 7, fmt.Sprintf("Report Generated: %s", generatedAt.Format(timestampFormat)), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(ErrGenerate, err.Error())
	}
	return buf.Bytes(), nil
}

func formatBound(t *time.Time) string {
	if t == nil {
		return "All Time"
	}
	return t.Format(timestampFormat)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampFormat)
}

// truncateDescription caps table cells at 50 characters with an ellipsis.
// Counts runes, not bytes, so multi-byte text is never split mid-character.
func truncateDescription(s string) string {
	r := []rune(s)
	if len(r) > 50 {
		return string(r[:50]) + "..."
	}
	return s
}

// formatCost renders a cost with two decimal places, so a zero value and an
// empty sum both show as 0.00.
func formatCost(c decimal.Decimal) string {
	return c.StringFixed(2)
}
