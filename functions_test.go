package xlcalc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// aggregateSheet is a 5x5 sheet with A1=10, A2=20, B1=30 and B2=40.
func aggregateSheet(t *testing.T) *Sheet {
	t.Helper()
	s := newTestSheet(t, 5, 5)
	require.NoError(t, s.SetValue(IntValue(10), 0, 0))
	require.NoError(t, s.SetValue(IntValue(30), 0, 1))
	require.NoError(t, s.SetValue(IntValue(20), 1, 0))
	require.NoError(t, s.SetValue(IntValue(40), 1, 1))
	return s
}

func TestEvaluateAggregate(t *testing.T) {
	s := aggregateSheet(t)
	tests := []struct {
		formula string
		want    float64
	}{
		{"SUM(A1:B2)", 100},
		{"AVERAGE(A1:B2)", 25},
		{"MAX(A1:B2)", 40},
		{"MIN(A1:B2)", 10},
		{"sum(a1:b2)", 100},
		{"=SUM(A1:B2)", 100},
		{"average(A1:E5)", 4},
		{"SUM(A1:A1)", 10},
		{"SUM( A1:B1 )", 40},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			got, err := EvaluateAggregate(tt.formula, s)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateAggregate_SkipsText(t *testing.T) {
	s := aggregateSheet(t)
	require.NoError(t, s.SetValue(StringValue("n/a"), 2, 0))
	require.NoError(t, s.SetValue(StringValue("5"), 2, 1))

	got, err := EvaluateAggregate("SUM(A1:B3)", s)
	require.NoError(t, err)
	assert.Equal(t, 105.0, got)

	got, err = EvaluateAggregate("MIN(A1:B3)", s)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)
}

func TestEvaluateAggregate_EmptyRange(t *testing.T) {
	s := newTestSheet(t, 3, 3)

	got, err := EvaluateAggregate("SUM(A1:C3)", s)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = EvaluateAggregate("AVERAGE(A1:C3)", s)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	got, err = EvaluateAggregate("MAX(A1:C3)", s)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, -1))

	got, err = EvaluateAggregate("MIN(A1:C3)", s)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))
}

func TestEvaluateAggregate_ReversedRange(t *testing.T) {
	s := aggregateSheet(t)

	got, err := EvaluateAggregate("SUM(B2:A1)", s)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)

	_, err = EvaluateAggregate("AVERAGE(B2:A1)", s)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestEvaluateAggregate_Errors(t *testing.T) {
	s := aggregateSheet(t)
	tests := []struct {
		formula string
		want    error
	}{
		{"SUMX(A1:B2)", ErrUnsupportedFunction},
		{"SUM A1:B2", ErrInvalidFormula},
		{"SUM(A1B2)", ErrInvalidRange},
		{"SUM(A1:B2:C3)", ErrInvalidRange},
		{"SUM(A1:Z9)", ErrOutOfRange},
		{"SUM(A1:Z9)", ErrInvalidRange},
		{"MAX(A0:B2)", ErrInvalidAddress},
	}
	for _, tt := range tests {
		t.Run(tt.formula, func(t *testing.T) {
			_, err := EvaluateAggregate(tt.formula, s)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestIsAggregate(t *testing.T) {
	assert.True(t, IsAggregate("SUM(A1:B2)"))
	assert.True(t, IsAggregate("average(A1:B2)"))
	assert.True(t, IsAggregate("  Max(A1:B2)"))
	assert.False(t, IsAggregate("A1 + B1"))
	assert.False(t, IsAggregate("clr(A1:B2)"))
	assert.Equal(t, []string{"SUM", "AVERAGE", "MAX", "MIN"}, AggregateNames())
}

func TestSplitFunctionCall(t *testing.T) {
	name, args, err := splitFunctionCall("=average( a1:c3 )")
	require.NoError(t, err)
	assert.Equal(t, "AVERAGE", name)
	assert.Equal(t, "a1:c3", args)

	_, _, err = splitFunctionCall("SUM")
	assert.ErrorIs(t, err, ErrInvalidFormula)
}
