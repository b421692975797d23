package xlcalc

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// operatorEvaluator applies binary arithmetic operators using expr-lang/expr.
// Each operator is compiled once into "lhs <op> rhs" and cached.
type operatorEvaluator struct {
	cache sync.Map // operator → compiled *vm.Program
}

var operators = &operatorEvaluator{}

// IsOperator reports whether op is one of + - * /.
func IsOperator(op string) bool {
	switch op {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

func (o *operatorEvaluator) apply(op string, lhs, rhs float64) (float64, error) {
	if !IsOperator(op) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, op)
	}
	if op == "/" && rhs == 0 {
		return 0, ErrDivisionByZero
	}
	program, err := o.compile(op)
	if err != nil {
		return 0, fmt.Errorf("compile operator %q: %w", op, err)
	}
	result, err := expr.Run(program, map[string]any{"lhs": lhs, "rhs": rhs})
	if err != nil {
		return 0, fmt.Errorf("apply operator %q: %w", op, err)
	}
	f, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("apply operator %q: got %T, expected float64", op, result)
	}
	return f, nil
}

func (o *operatorEvaluator) compile(op string) (*vm.Program, error) {
	if cached, ok := o.cache.Load(op); ok {
		return cached.(*vm.Program), nil
	}
	env := map[string]any{"lhs": 0.0, "rhs": 0.0}
	program, err := expr.Compile("lhs "+op+" rhs", expr.Env(env), expr.AsFloat64())
	if err != nil {
		return nil, err
	}
	o.cache.Store(op, program)
	return program, nil
}
