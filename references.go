package xlcalc

import (
	"strings"

	"github.com/xuri/efp"
)

// References returns the cell and range operands a formula mentions, in order
// of appearance, with coefficients stripped: "3A1 + B2" → ["A1", "B2"],
// "SUM(A1:B2)" → ["A1:B2"].
func References(formula string) []string {
	body := formulaBody(formula)
	if body == "" {
		return nil
	}
	ps := efp.ExcelParser()
	var refs []string
	for _, token := range ps.Parse("=" + body) {
		if token.TType != efp.TokenTypeOperand || token.TSubType != efp.TokenSubTypeRange {
			continue
		}
		value := strings.TrimPrefix(token.TValue, "=")
		if !strings.Contains(value, ":") {
			if _, name, err := ExtractCoefficient(value); err == nil {
				value = name
			}
		}
		if value != "" {
			refs = append(refs, value)
		}
	}
	return refs
}

// referenceInBounds reports whether a cell or range operand lies inside sheet.
// Operands that do not parse are reported as out of bounds.
func referenceInBounds(sheet *Sheet, operand string) bool {
	if strings.Contains(operand, ":") {
		r, err := ParseRange(operand)
		return err == nil && sheet.RangeInBounds(r)
	}
	ref, err := ParseCellRef(operand)
	return err == nil && sheet.InBounds(ref.Row, ref.Col)
}
