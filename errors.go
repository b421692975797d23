package xlcalc

import (
	"errors"
	"fmt"
)

// Error kinds returned by the sheet and the formula engine. Callers match them
// with errors.Is; the returned errors carry the offending address or text.
var (
	ErrOutOfRange          = errors.New("row or column index is out of range")
	ErrEmptyCell           = errors.New("cell is empty")
	ErrInvalidAddress      = errors.New("invalid cell address")
	ErrInvalidRange        = errors.New("invalid cell range")
	ErrInvalidFormula      = errors.New("invalid formula format")
	ErrUnsupportedFunction = errors.New("unsupported function")
	ErrInvalidOperator     = errors.New("invalid mathematical operation")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrCircularReference   = errors.New("circular reference")
	ErrInvalidDimensions   = errors.New("invalid sheet dimensions")
	ErrSheetFull           = errors.New("sheet is already full")
)

// FormulaError reports a formula cell that failed to evaluate.
type FormulaError struct {
	Address string // cell holding the formula, e.g. "B2"
	Formula string // formula text as entered, including the leading "="
	Err     error
}

func (e *FormulaError) Error() string {
	return fmt.Sprintf("formula %s in %s: %v", e.Formula, e.Address, e.Err)
}

func (e *FormulaError) Unwrap() error { return e.Err }
