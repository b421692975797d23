package xlcalc

import (
	"fmt"
	"strings"
)

// Describe returns a human-readable summary of a sheet: its size, then one
// line per formula cell with the formula, the stored result and the operands
// it references. Useful when debugging a workbook from the command line.
func Describe(sheet *Sheet) string {
	refs := sheet.formulaRefs()

	var b strings.Builder
	fmt.Fprintf(&b, "Sheet (%dx%d), %d formula cells\n", sheet.Rows(), sheet.Cols(), len(refs))
	for _, ref := range refs {
		text, _ := sheet.GetFormula(ref.Row, ref.Col)
		fmt.Fprintf(&b, "  %s: %s", ref, text)

		if Classify(formulaBody(text)) == FormulaColor {
			b.WriteString(" (color)")
		} else if v, err := sheet.GetValue(ref.Row, ref.Col); err == nil {
			fmt.Fprintf(&b, " → %s", v)
		} else {
			b.WriteString(" → (not evaluated)")
		}

		if operands := References(text); len(operands) > 0 {
			fmt.Fprintf(&b, " [%s]", strings.Join(operands, ", "))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
