package xlcalc

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxAddressCols is the number of columns an address can name: one letter,
// A through Z. A Sheet holds at most MaxColumns of them.
const MaxAddressCols = 26

// CellRef is a zero-based cell position.
type CellRef struct {
	Row int // 0-based row index
	Col int // 0-based column index
}

// NewCellRef creates a CellRef from zero-based row and column.
func NewCellRef(row, col int) CellRef {
	return CellRef{Row: row, Col: col}
}

// ParseCellRef parses an address like "B2" or "b2". The column is a single
// letter and the row a positive decimal number.
func ParseCellRef(s string) (CellRef, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return CellRef{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	col, err := NameToCol(s[:1])
	if err != nil {
		return CellRef{}, fmt.Errorf("%w: first part of %q must be a letter", ErrInvalidAddress, s)
	}
	rowStr := s[1:]
	for _, ch := range rowStr {
		if ch < '0' || ch > '9' {
			return CellRef{}, fmt.Errorf("%w: second part of %q must be a number", ErrInvalidAddress, s)
		}
	}
	row, err := strconv.Atoi(rowStr)
	if err != nil || row < 1 {
		return CellRef{}, fmt.Errorf("%w: invalid row number in %q", ErrInvalidAddress, s)
	}
	return CellRef{Row: row - 1, Col: col}, nil
}

// ResolveAddress maps an address to zero-based (row, col).
func ResolveAddress(address string) (row, col int, err error) {
	ref, err := ParseCellRef(address)
	if err != nil {
		return 0, 0, err
	}
	return ref.Row, ref.Col, nil
}

// FormatAddress maps zero-based (row, col) to an address like "B2".
func FormatAddress(row, col int) (string, error) {
	if row < 0 || col < 0 || col >= MaxAddressCols {
		return "", fmt.Errorf("%w: row %d, col %d", ErrInvalidAddress, row, col)
	}
	return CellRef{Row: row, Col: col}.String(), nil
}

// String formats the CellRef as "A1". Columns outside A-Z render as "?".
func (c CellRef) String() string {
	return ColToName(c.Col) + strconv.Itoa(c.Row+1)
}

// ColToName converts a 0-based column index to its letter. 0→"A", 25→"Z".
func ColToName(col int) string {
	if col < 0 || col >= MaxAddressCols {
		return "?"
	}
	return string(rune('A' + col))
}

// NameToCol converts a single column letter to a 0-based index. "A"→0, "z"→25.
func NameToCol(name string) (int, error) {
	name = strings.ToUpper(name)
	if len(name) != 1 || name[0] < 'A' || name[0] > 'Z' {
		return 0, fmt.Errorf("%w: column %q", ErrInvalidAddress, name)
	}
	return int(name[0] - 'A'), nil
}

// CellRange is an inclusive rectangle between two cells. First is expected to
// be the top-left corner; a reversed range is empty.
type CellRange struct {
	First CellRef
	Last  CellRef
}

// ParseRange parses "A1:B2".
func ParseRange(s string) (CellRange, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return CellRange{}, fmt.Errorf("%w: %q is not <start>:<end>", ErrInvalidRange, s)
	}
	first, err := ParseCellRef(parts[0])
	if err != nil {
		return CellRange{}, fmt.Errorf("%w %q: %w", ErrInvalidRange, s, err)
	}
	last, err := ParseCellRef(parts[1])
	if err != nil {
		return CellRange{}, fmt.Errorf("%w %q: %w", ErrInvalidRange, s, err)
	}
	return CellRange{First: first, Last: last}, nil
}

// DecomposeRange splits "A1:B2" into its zero-based corner coordinates.
func DecomposeRange(s string) (startRow, startCol, endRow, endCol int, err error) {
	r, err := ParseRange(s)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	return r.First.Row, r.First.Col, r.Last.Row, r.Last.Col, nil
}

// String formats the range as "A1:B2".
func (r CellRange) String() string {
	return r.First.String() + ":" + r.Last.String()
}

// Rows returns the number of rows covered, zero when reversed.
func (r CellRange) Rows() int {
	return max(0, r.Last.Row-r.First.Row+1)
}

// Cols returns the number of columns covered, zero when reversed.
func (r CellRange) Cols() int {
	return max(0, r.Last.Col-r.First.Col+1)
}

// Len returns the number of cells in the range.
func (r CellRange) Len() int {
	return r.Rows() * r.Cols()
}

// Contains reports whether ref lies inside the range.
func (r CellRange) Contains(ref CellRef) bool {
	return ref.Row >= r.First.Row && ref.Row <= r.Last.Row &&
		ref.Col >= r.First.Col && ref.Col <= r.Last.Col
}

// Each calls fn for every cell in row-major order.
func (r CellRange) Each(fn func(row, col int)) {
	for row := r.First.Row; row <= r.Last.Row; row++ {
		for col := r.First.Col; col <= r.Last.Col; col++ {
			fn(row, col)
		}
	}
}
