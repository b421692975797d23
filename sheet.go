package xlcalc

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// Sheet size limits.
const (
	MaxRows    = 50
	MaxColumns = 25
)

// emptyCellText is how String renders a cell without a value.
const emptyCellText = "_"

type cell struct {
	value      Value
	formula    string
	hasFormula bool
}

// Sheet is a dense rows x cols grid of cells keyed by address. It is owned by
// a single editing session and is not safe for concurrent use.
type Sheet struct {
	rows, cols   int
	cells        map[string]*cell
	formulaCells map[string]string // address → formula text, mirrors cells
	logger       *slog.Logger
}

// NewSheet creates a sheet with every cell empty. rows must be in [1,50] and
// cols in [1,25].
func NewSheet(rows, cols int, opts ...Option) (*Sheet, error) {
	if rows < 1 || rows > MaxRows || cols < 1 || cols > MaxColumns {
		return nil, fmt.Errorf("%w: %dx%d (rows 1-%d, cols 1-%d)",
			ErrInvalidDimensions, rows, cols, MaxRows, MaxColumns)
	}
	o := buildOptions(opts)
	s := &Sheet{
		rows:         rows,
		cols:         cols,
		cells:        make(map[string]*cell, rows*cols),
		formulaCells: make(map[string]string),
		logger:       o.logger,
	}
	for row := 0; row < rows; row++ {
		s.initRow(row)
	}
	return s, nil
}

func (s *Sheet) initRow(row int) {
	for col := 0; col < s.cols; col++ {
		s.cells[NewCellRef(row, col).String()] = &cell{}
	}
}

// Rows returns the current number of rows.
func (s *Sheet) Rows() int { return s.rows }

// Cols returns the number of columns.
func (s *Sheet) Cols() int { return s.cols }

// InBounds reports whether (row, col) addresses a cell of this sheet.
func (s *Sheet) InBounds(row, col int) bool {
	return row >= 0 && row < s.rows && col >= 0 && col < s.cols
}

// RangeInBounds reports whether both corners of r lie inside the sheet.
func (s *Sheet) RangeInBounds(r CellRange) bool {
	return s.InBounds(r.First.Row, r.First.Col) && s.InBounds(r.Last.Row, r.Last.Col)
}

func (s *Sheet) lookup(row, col int) (*cell, error) {
	if !s.InBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d) on a %dx%d sheet", ErrOutOfRange, row, col, s.rows, s.cols)
	}
	return s.cells[NewCellRef(row, col).String()], nil
}

// GetValue returns the value at (row, col). Numeric-looking text is returned
// as a number; the stored text is left untouched. Reading an empty cell fails
// with ErrEmptyCell.
func (s *Sheet) GetValue(row, col int) (Value, error) {
	c, err := s.lookup(row, col)
	if err != nil {
		return Value{}, err
	}
	if c.value.IsEmpty() {
		return Value{}, fmt.Errorf("%w: %s", ErrEmptyCell, NewCellRef(row, col))
	}
	return c.value.coerce(), nil
}

// SetValue stores v verbatim. A cell without a formula also records the
// value's text as its formula, so plain entries display what was typed.
func (s *Sheet) SetValue(v Value, row, col int) error {
	c, err := s.lookup(row, col)
	if err != nil {
		return err
	}
	c.value = v
	if !c.hasFormula {
		c.formula = v.String()
		c.hasFormula = true
	}
	return nil
}

// SetFormula records formula text for (row, col) and clears its value until
// the formula is evaluated.
func (s *Sheet) SetFormula(formula string, row, col int) error {
	c, err := s.lookup(row, col)
	if err != nil {
		return err
	}
	c.value = EmptyValue()
	c.formula = formula
	c.hasFormula = true
	s.formulaCells[NewCellRef(row, col).String()] = formula
	return nil
}

// ClearFormula forgets the formula at (row, col), keeping its value.
func (s *Sheet) ClearFormula(row, col int) error {
	c, err := s.lookup(row, col)
	if err != nil {
		return err
	}
	c.formula = ""
	c.hasFormula = false
	delete(s.formulaCells, NewCellRef(row, col).String())
	return nil
}

// GetFormula returns the formula text at (row, col) and whether one was ever
// set. Out-of-range coordinates report no formula instead of failing.
func (s *Sheet) GetFormula(row, col int) (string, bool) {
	c, err := s.lookup(row, col)
	if err != nil {
		s.logger.Debug("get formula", "row", row, "col", col, "error", err)
		return "", false
	}
	return c.formula, c.hasFormula
}

// FormulaCells returns a copy of the address → formula index.
func (s *Sheet) FormulaCells() map[string]string {
	return maps.Clone(s.formulaCells)
}

// formulaRefs returns the formula cells in row-major order.
func (s *Sheet) formulaRefs() []CellRef {
	refs := make([]CellRef, 0, len(s.formulaCells))
	for addr := range s.formulaCells {
		ref, err := ParseCellRef(addr)
		if err != nil {
			continue
		}
		refs = append(refs, ref)
	}
	slices.SortFunc(refs, func(a, b CellRef) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	return refs
}

// AppendRow adds one row of empty cells at the bottom.
func (s *Sheet) AppendRow() error {
	if s.rows >= MaxRows {
		return fmt.Errorf("%w: cannot insert a new row beyond %d", ErrSheetFull, MaxRows)
	}
	s.initRow(s.rows)
	s.rows++
	return nil
}

// String renders the grid with column letters across the top and row numbers
// down the side. Empty cells show as "_".
func (s *Sheet) String() string {
	var b strings.Builder
	b.WriteString("   ")
	for col := 0; col < s.cols; col++ {
		fmt.Fprintf(&b, "%-8s", ColToName(col))
	}
	for row := 0; row < s.rows; row++ {
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%-3d", row+1)
		for col := 0; col < s.cols; col++ {
			text := emptyCellText
			if c := s.cells[NewCellRef(row, col).String()]; !c.value.IsEmpty() {
				text = c.value.String()
			}
			fmt.Fprintf(&b, "%-8s", text)
		}
	}
	return b.String()
}
