package xlcalc

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ColorDirective is the range named by a "=clr(A1:B2)" entry. Applying the
// color is up to the caller; the sheet stores nothing for it.
type ColorDirective struct {
	Range CellRange
}

// ParseColorDirective parses "clr(A1:B2)", with or without the leading "=".
func ParseColorDirective(text string) (ColorDirective, error) {
	body := formulaBody(text)
	if !strings.HasPrefix(body, colorPrefix) {
		return ColorDirective{}, fmt.Errorf("%w: %q is not a coloring directive", ErrInvalidFormula, text)
	}
	args := strings.TrimSpace(strings.TrimPrefix(body, colorPrefix))
	args = strings.TrimSuffix(strings.TrimPrefix(args, "("), ")")
	r, err := ParseRange(args)
	if err != nil {
		return ColorDirective{}, err
	}
	return ColorDirective{Range: r}, nil
}

// Result describes what an entry did to its cell.
type Result struct {
	Value   Value           // value now stored in the cell; empty for directives
	Formula string          // formula text recorded for the cell, if any
	Color   *ColorDirective // set when the entry was a coloring directive
}

// Session is the editing loop around one Sheet: it stores what the user types,
// evaluates formulas and recalculates every formula cell after each change.
type Session struct {
	sheet  *Sheet
	engine *Engine
	logger *slog.Logger
}

// NewSession creates a Session editing sheet.
func NewSession(sheet *Sheet, opts ...Option) *Session {
	o := buildOptions(opts)
	return &Session{
		sheet:  sheet,
		engine: NewEngine(sheet, opts...),
		logger: o.logger,
	}
}

// Sheet returns the sheet being edited.
func (s *Session) Sheet() *Sheet { return s.sheet }

// Engine returns the formula engine bound to the sheet.
func (s *Session) Engine() *Engine { return s.engine }

// Enter applies raw cell text at (row, col). Text starting with "=" is
// evaluated and recorded as the cell's formula; anything else is stored as a
// literal. If the entry itself fails to evaluate, the cell is left unchanged.
//
// Every formula cell is recalculated after the entry is stored. A failure in
// that pass is returned as a *FormulaError alongside the stored Result; the
// entry stays in place.
func (s *Session) Enter(row, col int, text string) (Result, error) {
	if !s.sheet.InBounds(row, col) {
		return Result{}, fmt.Errorf("%w: (%d, %d)", ErrOutOfRange, row, col)
	}
	if !IsFormula(text) {
		return s.enterLiteral(row, col, text)
	}

	body := formulaBody(text)
	if Classify(body) == FormulaColor {
		dir, err := ParseColorDirective(body)
		if err != nil {
			return Result{}, err
		}
		return Result{Color: &dir}, nil
	}

	result, err := s.engine.Evaluate(body)
	if err != nil {
		return Result{}, err
	}
	if err := s.sheet.SetFormula(text, row, col); err != nil {
		return Result{}, err
	}
	value := NumberValue(result)
	if err := s.sheet.SetValue(value, row, col); err != nil {
		return Result{}, err
	}
	res := Result{Value: value, Formula: text}
	return res, s.Recalculate()
}

func (s *Session) enterLiteral(row, col int, text string) (Result, error) {
	if old, ok := s.sheet.GetFormula(row, col); ok && IsFormula(old) {
		if err := s.sheet.ClearFormula(row, col); err != nil {
			return Result{}, err
		}
	}
	value := StringValue(text)
	if text == "" {
		value = EmptyValue()
	}
	if err := s.sheet.SetValue(value, row, col); err != nil {
		return Result{}, err
	}
	formula, _ := s.sheet.GetFormula(row, col)
	return Result{Value: value, Formula: formula}, s.Recalculate()
}

// Recalculate re-evaluates every formula cell in row-major order and stores
// the results. A failing cell keeps its previous value; the first failure is
// returned as a *FormulaError once all cells have been visited.
func (s *Session) Recalculate() error {
	var (
		firstErr  error
		evaluated int
	)
	for _, ref := range s.sheet.formulaRefs() {
		text, _ := s.sheet.GetFormula(ref.Row, ref.Col)
		if !IsFormula(text) || Classify(formulaBody(text)) == FormulaColor {
			continue
		}
		result, err := s.engine.evaluateFormulaCell(ref, text, newEvalState())
		if err != nil {
			if firstErr == nil {
				firstErr = &FormulaError{Address: ref.String(), Formula: text, Err: err}
			}
			continue
		}
		if err := s.sheet.SetValue(NumberValue(result), ref.Row, ref.Col); err != nil {
			return err
		}
		evaluated++
	}
	s.logger.Debug("recalculate", "formulas", evaluated, "failed", firstErr != nil)
	return firstErr
}

// Display returns the text to show for (row, col): the formatted value, or ""
// for an empty or out-of-range cell.
func (s *Session) Display(row, col int) string {
	v, err := s.sheet.GetValue(row, col)
	if err != nil {
		if !errors.Is(err, ErrEmptyCell) {
			s.logger.Debug("display", "row", row, "col", col, "error", err)
		}
		return ""
	}
	return v.String()
}
