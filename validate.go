package xlcalc

import "fmt"

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // formula fails to evaluate
	SeverityWarning                 // formula may read outside the sheet
)

// ValidationIssue is a single problem found in a formula cell.
type ValidationIssue struct {
	Severity Severity
	Cell     CellRef
	Message  string
}

// String formats the issue as "[ERROR] B2: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.Cell, v.Message)
}

// Validate checks every formula cell of sheet without modifying it. Operands
// outside the grid are warnings; formulas that fail to evaluate are errors.
func Validate(sheet *Sheet, opts ...Option) []ValidationIssue {
	engine := NewEngine(sheet, opts...)

	var issues []ValidationIssue
	for _, ref := range sheet.formulaRefs() {
		text, _ := sheet.GetFormula(ref.Row, ref.Col)
		if !IsFormula(text) {
			continue
		}
		body := formulaBody(text)

		if Classify(body) == FormulaColor {
			if _, err := ParseColorDirective(body); err != nil {
				issues = append(issues, ValidationIssue{SeverityError, ref, err.Error()})
			}
			continue
		}

		for _, operand := range References(body) {
			if !referenceInBounds(sheet, operand) {
				issues = append(issues, ValidationIssue{
					Severity: SeverityWarning,
					Cell:     ref,
					Message:  fmt.Sprintf("reference %s is outside the %dx%d sheet", operand, sheet.Rows(), sheet.Cols()),
				})
			}
		}

		if _, err := engine.evaluateFormulaCell(ref, text, newEvalState()); err != nil {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				Cell:     ref,
				Message:  fmt.Sprintf("%s: %v", text, err),
			})
		}
	}
	return issues
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
