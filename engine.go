package xlcalc

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// FormulaKind classifies formula text (without the leading "=").
type FormulaKind int

const (
	FormulaArithmetic FormulaKind = iota // "A1 + 3B2" or a single reference
	FormulaAggregate                     // "SUM(A1:B2)", "average(a1:c3)"
	FormulaColor                         // "clr(A1:B2)": colors a range, yields no value
)

// String returns a human-readable name for the FormulaKind.
func (k FormulaKind) String() string {
	switch k {
	case FormulaArithmetic:
		return "Arithmetic"
	case FormulaAggregate:
		return "Aggregate"
	case FormulaColor:
		return "Color"
	default:
		return "Unknown"
	}
}

// colorPrefix starts a coloring directive.
const colorPrefix = "clr"

// Classify decides which evaluator handles a formula body.
func Classify(formula string) FormulaKind {
	formula = strings.TrimSpace(formula)
	switch {
	case IsAggregate(formula):
		return FormulaAggregate
	case strings.HasPrefix(formula, colorPrefix):
		return FormulaColor
	default:
		return FormulaArithmetic
	}
}

// IsFormula reports whether cell text is a formula rather than a literal.
func IsFormula(text string) bool {
	return strings.HasPrefix(text, "=")
}

// formulaBody strips the "=" marker and surrounding blanks.
func formulaBody(text string) string {
	return strings.TrimSpace(strings.TrimPrefix(text, "="))
}

// Engine evaluates formulas against a Sheet. It only reads the sheet.
type Engine struct {
	sheet    *Sheet
	maxDepth int
	logger   *slog.Logger
}

// NewEngine creates an Engine reading from sheet.
func NewEngine(sheet *Sheet, opts ...Option) *Engine {
	o := buildOptions(opts)
	return &Engine{sheet: sheet, maxDepth: o.maxDepth, logger: o.logger}
}

// evalState tracks the formula cells entered by one top-level evaluation.
type evalState struct {
	visiting map[CellRef]struct{}
	depth    int
}

func newEvalState() *evalState {
	return &evalState{visiting: make(map[CellRef]struct{})}
}

// EvaluateAggregate evaluates "FUNCTION(start:end)" for SUM, AVERAGE, MAX
// and MIN. Text and empty cells in the range are skipped.
func EvaluateAggregate(formula string, sheet *Sheet) (float64, error) {
	return NewEngine(sheet).EvaluateAggregate(formula)
}

// EvaluateArithmetic evaluates "<term> <op> <term>" or a single term.
func EvaluateArithmetic(formula string, sheet *Sheet) (float64, error) {
	return NewEngine(sheet).EvaluateArithmetic(formula)
}

// EvaluateAggregate evaluates "FUNCTION(start:end)".
func (e *Engine) EvaluateAggregate(formula string) (float64, error) {
	return e.aggregate(formula, newEvalState())
}

// EvaluateArithmetic evaluates "<term> <op> <term>" or a single term. A term
// is a cell address with an optional integer coefficient, e.g. "3A1".
func (e *Engine) EvaluateArithmetic(formula string) (float64, error) {
	return e.arithmetic(formula, newEvalState())
}

// Evaluate dispatches formula text, with or without the leading "=", to the
// aggregate or arithmetic evaluator. Coloring directives yield no value and
// are rejected.
func (e *Engine) Evaluate(formula string) (float64, error) {
	return e.evaluate(formulaBody(formula), newEvalState())
}

// EvaluateCell evaluates the formula stored at (row, col) without writing the
// result back. Cells without a formula evaluate to their numeric value.
func (e *Engine) EvaluateCell(row, col int) (float64, error) {
	if !e.sheet.InBounds(row, col) {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfRange, row, col)
	}
	ref := NewCellRef(row, col)
	text, has := e.sheet.GetFormula(row, col)
	if !has || !IsFormula(text) {
		f, _, err := e.cellNumber(ref, newEvalState())
		return f, err
	}
	return e.evaluateFormulaCell(ref, text, newEvalState())
}

func (e *Engine) evaluate(body string, st *evalState) (float64, error) {
	switch Classify(body) {
	case FormulaAggregate:
		return e.aggregate(body, st)
	case FormulaColor:
		return 0, fmt.Errorf("%w: %q is a coloring directive", ErrInvalidFormula, body)
	default:
		return e.arithmetic(body, st)
	}
}

func (e *Engine) arithmetic(formula string, st *evalState) (float64, error) {
	parts := strings.Fields(formula)
	switch len(parts) {
	case 1:
		return e.term(parts[0], st)
	case 3:
	default:
		return 0, fmt.Errorf("%w: %q; formula should be in the form '<cell1> <operation> <cell2>', for example '=A2 + B4'",
			ErrInvalidFormula, formula)
	}

	lhs, err := e.term(parts[0], st)
	if err != nil {
		return 0, err
	}
	rhs, err := e.term(parts[2], st)
	if err != nil {
		return 0, err
	}
	return operators.apply(parts[1], lhs, rhs)
}

// term evaluates a coefficient-prefixed reference such as "3A1".
func (e *Engine) term(token string, st *evalState) (float64, error) {
	coeff, name, err := ExtractCoefficient(token)
	if err != nil {
		return 0, err
	}
	v, err := e.reference(name, st)
	if err != nil {
		return 0, err
	}
	return float64(coeff) * v, nil
}

// ExtractCoefficient splits the leading integer multiplier off a term.
// "3A1" → (3, "A1"); "A1" → (1, "A1").
func ExtractCoefficient(token string) (int, string, error) {
	i := 0
	for i < len(token) && token[i] >= '0' && token[i] <= '9' {
		i++
	}
	if i == 0 {
		return 1, token, nil
	}
	coeff, err := strconv.Atoi(token[:i])
	if err != nil {
		return 0, "", fmt.Errorf("%w: coefficient in %q: %w", ErrInvalidFormula, token, err)
	}
	return coeff, token[i:], nil
}

// reference resolves a bare token to a number. A token starting with "=" is
// itself an arithmetic formula; anything else is a cell address whose text or
// empty content counts as zero.
func (e *Engine) reference(token string, st *evalState) (float64, error) {
	if IsFormula(token) {
		return e.arithmetic(token[1:], st)
	}
	ref, err := ParseCellRef(token)
	if err != nil {
		return 0, err
	}
	if !e.sheet.InBounds(ref.Row, ref.Col) {
		return 0, fmt.Errorf("%w: cell %q is out of sheet dimensions", ErrOutOfRange, token)
	}
	f, _, err := e.cellNumber(ref, st)
	return f, err
}

// cellNumber reads a cell as a number. ok is false for text and empty cells.
// A formula cell that has not been evaluated yet is evaluated in place.
func (e *Engine) cellNumber(ref CellRef, st *evalState) (f float64, ok bool, err error) {
	v, err := e.sheet.GetValue(ref.Row, ref.Col)
	if errors.Is(err, ErrEmptyCell) {
		return e.pendingFormula(ref, st)
	}
	if err != nil {
		return 0, false, err
	}
	f, ok = v.Float()
	return f, ok, nil
}

func (e *Engine) pendingFormula(ref CellRef, st *evalState) (float64, bool, error) {
	text, has := e.sheet.GetFormula(ref.Row, ref.Col)
	if !has || !IsFormula(text) {
		return 0, false, nil
	}
	if Classify(formulaBody(text)) == FormulaColor {
		return 0, false, nil
	}
	f, err := e.evaluateFormulaCell(ref, text, st)
	if err != nil {
		return 0, false, err
	}
	return f, true, nil
}

// evaluateFormulaCell evaluates the formula text held by ref, failing with
// ErrCircularReference if ref is already being evaluated.
func (e *Engine) evaluateFormulaCell(ref CellRef, text string, st *evalState) (float64, error) {
	if _, seen := st.visiting[ref]; seen {
		return 0, fmt.Errorf("%w: %s", ErrCircularReference, ref)
	}
	if st.depth >= e.maxDepth {
		return 0, fmt.Errorf("%w: %s exceeds depth %d", ErrCircularReference, ref, e.maxDepth)
	}
	st.visiting[ref] = struct{}{}
	st.depth++
	defer func() {
		delete(st.visiting, ref)
		st.depth--
	}()

	e.logger.Debug("evaluate formula cell", "cell", ref.String(), "formula", text)
	f, err := e.evaluate(formulaBody(text), st)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ref, err)
	}
	return f, nil
}
