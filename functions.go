package xlcalc

import (
	"fmt"
	"math"
	"strings"
)

// AggregateNames lists the supported range functions.
func AggregateNames() []string {
	return []string{"SUM", "AVERAGE", "MAX", "MIN"}
}

// IsAggregate reports whether formula starts with a supported function name,
// ignoring case.
func IsAggregate(formula string) bool {
	upper := strings.ToUpper(strings.TrimSpace(formula))
	for _, name := range AggregateNames() {
		if strings.HasPrefix(upper, name) {
			return true
		}
	}
	return false
}

// splitFunctionCall splits "SUM(A1:B2)" into "SUM" and "A1:B2".
func splitFunctionCall(formula string) (name, args string, err error) {
	formula = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(formula), "="))
	parts := strings.SplitN(formula, "(", 2)
	if len(parts) < 2 {
		return "", "", fmt.Errorf("%w: %q is not FUNCTION(range)", ErrInvalidFormula, formula)
	}
	name = strings.ToUpper(strings.TrimSpace(parts[0]))
	args = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(parts[1]), ")"))
	return name, args, nil
}

func (e *Engine) aggregate(formula string, st *evalState) (float64, error) {
	name, args, err := splitFunctionCall(formula)
	if err != nil {
		return 0, err
	}
	var fn func(CellRange, *evalState) (float64, error)
	switch name {
	case "SUM":
		fn = e.sum
	case "AVERAGE":
		fn = e.average
	case "MAX":
		fn = e.max
	case "MIN":
		fn = e.min
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFunction, name)
	}
	r, err := ParseRange(args)
	if err != nil {
		return 0, err
	}
	if !e.sheet.RangeInBounds(r) {
		return 0, fmt.Errorf("%w %s: %w", ErrInvalidRange, r, ErrOutOfRange)
	}
	return fn(r, st)
}

// foldNumbers calls fn with every numeric cell in r. Empty and text cells are
// skipped.
func (e *Engine) foldNumbers(r CellRange, st *evalState, fn func(float64)) error {
	var err error
	r.Each(func(row, col int) {
		if err != nil {
			return
		}
		var (
			f  float64
			ok bool
		)
		f, ok, err = e.cellNumber(NewCellRef(row, col), st)
		if err == nil && ok {
			fn(f)
		}
	})
	return err
}

func (e *Engine) sum(r CellRange, st *evalState) (float64, error) {
	total := 0.0
	err := e.foldNumbers(r, st, func(f float64) { total += f })
	return total, err
}

func (e *Engine) average(r CellRange, st *evalState) (float64, error) {
	total, err := e.sum(r, st)
	if err != nil {
		return 0, err
	}
	n := r.Len()
	if n == 0 {
		return 0, fmt.Errorf("%w: average over empty range %s", ErrDivisionByZero, r)
	}
	return total / float64(n), nil
}

// max returns -Inf when no cell in r is numeric.
func (e *Engine) max(r CellRange, st *evalState) (float64, error) {
	result := math.Inf(-1)
	err := e.foldNumbers(r, st, func(f float64) { result = math.Max(result, f) })
	return result, err
}

// min returns +Inf when no cell in r is numeric.
func (e *Engine) min(r CellRange, st *evalState) (float64, error) {
	result := math.Inf(1)
	err := e.foldNumbers(r, st, func(f float64) { result = math.Min(result, f) })
	return result, err
}
