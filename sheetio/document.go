// Package sheetio moves sheets in and out of files. Every format shares the
// same contract: a sheet is imported from its dimensions plus (row, col,
// value) triples, and exported by reading every cell in row-major order.
// Only values are persisted, never formula text.
package sheetio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/javajack/xlcalc"
)

// CellRecord is one persisted cell.
type CellRecord struct {
	Row   int `json:"row" yaml:"row"`
	Col   int `json:"col" yaml:"col"`
	Value any `json:"value" yaml:"value"`
}

// Document is the JSON/YAML shape of a sheet.
type Document struct {
	Rows  int          `json:"rows" yaml:"rows"`
	Cols  int          `json:"cols" yaml:"cols"`
	Cells []CellRecord `json:"cells" yaml:"cells"`
}

// Build creates a sheet from doc. Cells missing from doc stay empty.
func Build(doc Document, opts ...xlcalc.Option) (*xlcalc.Sheet, error) {
	sheet, err := xlcalc.NewSheet(doc.Rows, doc.Cols, opts...)
	if err != nil {
		return nil, err
	}
	for i, c := range doc.Cells {
		if err := sheet.SetValue(xlcalc.ValueOf(c.Value), c.Row, c.Col); err != nil {
			return nil, fmt.Errorf("cell %d (%d, %d): %w", i, c.Row, c.Col, err)
		}
	}
	return sheet, nil
}

// Snapshot reads every cell of sheet in row-major order. Empty cells are
// recorded with a nil value.
func Snapshot(sheet *xlcalc.Sheet) (Document, error) {
	doc := Document{
		Rows:  sheet.Rows(),
		Cols:  sheet.Cols(),
		Cells: make([]CellRecord, 0, sheet.Rows()*sheet.Cols()),
	}
	err := eachValue(sheet, func(row, col int, v xlcalc.Value) {
		doc.Cells = append(doc.Cells, CellRecord{Row: row, Col: col, Value: v.Any()})
	})
	return doc, err
}

// eachValue visits every cell in row-major order. Empty cells are passed as
// the empty Value.
func eachValue(sheet *xlcalc.Sheet, fn func(row, col int, v xlcalc.Value)) error {
	for row := 0; row < sheet.Rows(); row++ {
		for col := 0; col < sheet.Cols(); col++ {
			v, err := sheet.GetValue(row, col)
			if errors.Is(err, xlcalc.ErrEmptyCell) {
				v, err = xlcalc.EmptyValue(), nil
			}
			if err != nil {
				return fmt.Errorf("read %s: %w", xlcalc.NewCellRef(row, col), err)
			}
			fn(row, col, v)
		}
	}
	return nil
}

// LoadJSON imports a sheet from JSON.
func LoadJSON(r io.Reader, opts ...xlcalc.Option) (*xlcalc.Sheet, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return Build(doc, opts...)
}

// WriteJSON exports a sheet as indented JSON.
func WriteJSON(w io.Writer, sheet *xlcalc.Sheet) error {
	doc, err := Snapshot(sheet)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// LoadYAML imports a sheet from YAML.
func LoadYAML(r io.Reader, opts ...xlcalc.Option) (*xlcalc.Sheet, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return Build(doc, opts...)
}

// WriteYAML exports a sheet as YAML.
func WriteYAML(w io.Writer, sheet *xlcalc.Sheet) error {
	doc, err := Snapshot(sheet)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
