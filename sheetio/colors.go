package sheetio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/javajack/xlcalc"
)

// DefaultColor is the background of an uncolored cell.
const DefaultColor = "#FFFFFF"

// Colors is a rows x cols grid of "#RRGGBB" background colors kept by the
// presentation layer alongside a sheet.
type Colors [][]string

// NewColors returns a grid filled with DefaultColor.
func NewColors(rows, cols int) Colors {
	c := make(Colors, rows)
	for i := range c {
		c[i] = make([]string, cols)
		for j := range c[i] {
			c[i][j] = DefaultColor
		}
	}
	return c
}

// At returns the color at (row, col), DefaultColor when unset or outside.
func (c Colors) At(row, col int) string {
	if row < 0 || row >= len(c) || col < 0 || col >= len(c[row]) || c[row][col] == "" {
		return DefaultColor
	}
	return c[row][col]
}

// Set colors a single cell. Coordinates outside the grid are ignored.
func (c Colors) Set(row, col int, hex string) {
	if row < 0 || row >= len(c) || col < 0 || col >= len(c[row]) {
		return
	}
	c[row][col] = hex
}

// Fill colors every cell of r, as done for a "=clr(A1:B2)" entry.
func (c Colors) Fill(r xlcalc.CellRange, hex string) {
	r.Each(func(row, col int) { c.Set(row, col, hex) })
}

// Apply fills the range named by a coloring directive.
func (c Colors) Apply(dir xlcalc.ColorDirective, hex string) {
	c.Fill(dir.Range, hex)
}

// isDefault reports whether hex is the plain white background.
func isDefault(hex string) bool {
	return hex == "" || strings.EqualFold(hex, DefaultColor)
}

// parseHex parses "#RRGGBB" (the "#" is optional).
func parseHex(hex string) (r, g, b int, err error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("invalid color %q", hex)
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return int(n >> 16 & 0xFF), int(n >> 8 & 0xFF), int(n & 0xFF), nil
}
