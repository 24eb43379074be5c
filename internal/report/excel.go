package report

import (
	"bytes"
	"fmt"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/pkg/errors"

	"github.com/cataloghub/product-service/internal/domain"
)

const exportSheet = "Sheet1"

var exportColumns = []string{"A", "B", "C", "D", "E", "F", "G"}

// RenderExcel builds an XLSX workbook with the same columns and row order as
// the PDF report, one product per row below the header.
func (g *Generator) RenderExcel(products []domain.Product) ([]byte, error) {
	xlsx := excelize.NewFile()

	for i, header := range columnHeaders {
		xlsx.SetCellValue(exportSheet, fmt.Sprintf("%s1", exportColumns[i]), header)
	}

	for row, p := range products {
		cells := []interface{}{
			p.ID,
			p.Code,
			p.Name,
			p.Description,
			formatCost(p.Cost),
			string(p.Status),
			formatTimestamp(p.CreatedAt),
		}
		for col, value := range cells {
			xlsx.SetCellValue(exportSheet, fmt.Sprintf("%s%d", exportColumns[col], row+2), value)
		}
	}

	var buf bytes.Buffer
	if err := xlsx.Write(&buf); err != nil {
		return nil, errors.Wrap(ErrGenerate, err.Error())
	}
	return buf.Bytes(), nil
}
