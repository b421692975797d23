package sheetio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/javajack/xlcalc"
)

// WriteCSV exports a sheet as one CSV record per row. Empty cells are blank.
// A record holding a single empty field is written as "" so the reader does
// not drop it as a blank line.
func WriteCSV(w io.Writer, sheet *xlcalc.Sheet) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	record := make([]string, sheet.Cols())
	var writeErr error
	err := eachValue(sheet, func(row, col int, v xlcalc.Value) {
		record[col] = v.String()
		if col < sheet.Cols()-1 || writeErr != nil {
			return
		}
		writeErr = writeRecord(bw, cw, record)
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("write csv: %w", writeErr)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeRecord(bw *bufio.Writer, cw *csv.Writer, record []string) error {
	if len(record) != 1 || record[0] != "" {
		return cw.Write(record)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := bw.WriteString("\"\"\n")
	return err
}

// LoadCSV imports a sheet from CSV. The widest record sets the column count;
// blank fields stay empty.
func LoadCSV(r io.Reader, opts ...xlcalc.Option) (*xlcalc.Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return fromGrid(records, 0, 0, opts...)
}

// fromGrid builds a sheet from rows of text, skipping blank cells. The sheet
// is at least rows x cols and grows to fit the grid.
func fromGrid(grid [][]string, rows, cols int, opts ...xlcalc.Option) (*xlcalc.Sheet, error) {
	doc := Document{Rows: max(rows, len(grid)), Cols: cols}
	for row, record := range grid {
		doc.Cols = max(doc.Cols, len(record))
		for col, text := range record {
			if text == "" {
				continue
			}
			doc.Cells = append(doc.Cells, CellRecord{Row: row, Col: col, Value: text})
		}
	}
	return Build(doc, opts...)
}
