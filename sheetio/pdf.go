package sheetio

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/javajack/xlcalc"
)

// PDF table geometry, in millimetres on a Letter page.
const (
	pdfUsableWidth = 190.0
	pdfMaxCellW    = 30.0
	pdfCellH       = 7.0
)

// WritePDF exports a sheet as a bordered table on Letter pages, painting each
// cell with its background color.
func WritePDF(w io.Writer, sheet *xlcalc.Sheet, opts ...Option) error {
	o := buildOptions(opts)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetDrawColor(0, 0, 0)
	pdf.AddPage()

	cellW := min(pdfUsableWidth/float64(sheet.Cols()), pdfMaxCellW)
	var colorErr error
	err := eachValue(sheet, func(row, col int, v xlcalc.Value) {
		r, g, b, err := parseHex(o.colors.At(row, col))
		if err != nil && colorErr == nil {
			colorErr = fmt.Errorf("cell %s: %w", xlcalc.NewCellRef(row, col), err)
		}
		if err != nil {
			r, g, b = 0xFF, 0xFF, 0xFF
		}
		pdf.SetFillColor(r, g, b)
		ln := 0
		if col == sheet.Cols()-1 {
			ln = 1
		}
		pdf.CellFormat(cellW, pdfCellH, v.String(), "1", ln, "C", true, 0, "")
	})
	if err != nil {
		return err
	}
	if colorErr != nil {
		return colorErr
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
