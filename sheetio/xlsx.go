package sheetio

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/javajack/xlcalc"
)

// xlsxWriter writes sheet values into an excelize workbook, caching one fill
// style per distinct color.
type xlsxWriter struct {
	file       *excelize.File
	sheet      string
	styleCache map[string]int // "RRGGBB" → styleID
}

func newXLSXWriter(sheetName string) (*xlsxWriter, error) {
	f := excelize.NewFile()
	if sheetName != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheetName); err != nil {
			f.Close()
			return nil, fmt.Errorf("rename sheet to %q: %w", sheetName, err)
		}
	}
	return &xlsxWriter{
		file:       f,
		sheet:      sheetName,
		styleCache: make(map[string]int),
	}, nil
}

// fillStyle returns the style ID for a solid background of hex.
func (xw *xlsxWriter) fillStyle(hex string) (int, error) {
	key := strings.ToUpper(strings.TrimPrefix(hex, "#"))
	if id, ok := xw.styleCache[key]; ok {
		return id, nil
	}
	if _, _, _, err := parseHex(key); err != nil {
		return 0, err
	}
	id, err := xw.file.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{key}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("create fill style %q: %w", hex, err)
	}
	xw.styleCache[key] = id
	return id, nil
}

// setCell writes one value and, unless it is the default, its background.
func (xw *xlsxWriter) setCell(row, col int, v xlcalc.Value, color string) error {
	cell := xlcalc.NewCellRef(row, col).String()
	if !v.IsEmpty() {
		if err := xw.file.SetCellValue(xw.sheet, cell, v.Any()); err != nil {
			return fmt.Errorf("set %s: %w", cell, err)
		}
	}
	if isDefault(color) {
		return nil
	}
	styleID, err := xw.fillStyle(color)
	if err != nil {
		return fmt.Errorf("style %s: %w", cell, err)
	}
	return xw.file.SetCellStyle(xw.sheet, cell, cell, styleID)
}

// setDimension records the full grid size so trailing empty rows and
// columns survive a reload.
func (xw *xlsxWriter) setDimension(rows, cols int) error {
	last := xlcalc.NewCellRef(rows-1, cols-1).String()
	if err := xw.file.SetSheetDimension(xw.sheet, "A1:"+last); err != nil {
		return fmt.Errorf("set dimension A1:%s: %w", last, err)
	}
	return nil
}

// WriteXLSX exports a sheet as an Excel workbook with a single worksheet.
func WriteXLSX(w io.Writer, sheet *xlcalc.Sheet, opts ...Option) error {
	o := buildOptions(opts)
	xw, err := newXLSXWriter(o.sheetName)
	if err != nil {
		return err
	}
	defer xw.file.Close()

	var cellErr error
	err = eachValue(sheet, func(row, col int, v xlcalc.Value) {
		if cellErr == nil {
			cellErr = xw.setCell(row, col, v, o.colors.At(row, col))
		}
	})
	if err != nil {
		return err
	}
	if cellErr != nil {
		return cellErr
	}
	if err := xw.setDimension(sheet.Rows(), sheet.Cols()); err != nil {
		return err
	}
	if err := xw.file.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// LoadXLSX imports the first worksheet of an Excel workbook. The sheet size
// is the larger of the worksheet's recorded dimension and the cells present.
// Cell text is stored as read; numbers come back through the sheet's
// read-time coercion.
func LoadXLSX(r io.Reader, opts ...xlcalc.Option) (*xlcalc.Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("open xlsx: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %q: %w", sheets[0], err)
	}
	dimRows, dimCols, err := sheetDimension(f, sheets[0])
	if err != nil {
		return nil, err
	}
	return fromGrid(rows, dimRows, dimCols, opts...)
}

// sheetDimension returns the size named by a worksheet's dimension ref, e.g.
// "A1:E5" → (5, 5). A workbook without one reports (0, 0).
func sheetDimension(f *excelize.File, sheet string) (rows, cols int, err error) {
	ref, err := f.GetSheetDimension(sheet)
	if err != nil {
		return 0, 0, fmt.Errorf("read dimension of sheet %q: %w", sheet, err)
	}
	if ref == "" {
		return 0, 0, nil
	}
	_, last, found := strings.Cut(ref, ":")
	if !found {
		last = ref
	}
	cols, rows, err = excelize.CellNameToCoordinates(last)
	if err != nil {
		return 0, 0, fmt.Errorf("parse dimension %q of sheet %q: %w", ref, sheet, err)
	}
	return rows, cols, nil
}
