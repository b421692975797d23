package xlcalc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_FormulaCells(t *testing.T) {
	s := newTestSession(t, 3, 3)
	enter(t, s, "A1", "4")
	enter(t, s, "B1", "=A1 + A1")
	require.NoError(t, s.Sheet().SetFormula("=SUM(A1:B1)", 0, 2))
	require.NoError(t, s.Sheet().SetFormula("=clr(A1:B2)", 1, 0))

	output := Describe(s.Sheet())
	assert.True(t, strings.HasPrefix(output, "Sheet (3x3), 3 formula cells\n"))
	assert.Contains(t, output, "  B1: =A1 + A1 → 8 [A1, A1]")
	assert.Contains(t, output, "  C1: =SUM(A1:B1) → (not evaluated) [A1:B1]")
	assert.Contains(t, output, "  A2: =clr(A1:B2) (color)")
}

func TestDescribe_RowMajorOrder(t *testing.T) {
	s := newTestSheet(t, 3, 3)
	require.NoError(t, s.SetFormula("=A1", 2, 0))
	require.NoError(t, s.SetFormula("=A1", 0, 2))
	require.NoError(t, s.SetFormula("=A1", 1, 1))

	output := Describe(s)
	c1 := strings.Index(output, "C1:")
	b2 := strings.Index(output, "B2:")
	a3 := strings.Index(output, "A3:")
	require.True(t, c1 > 0 && b2 > 0 && a3 > 0)
	assert.Less(t, c1, b2)
	assert.Less(t, b2, a3)
}

func TestDescribe_NoFormulas(t *testing.T) {
	s := newTestSheet(t, 2, 4)
	require.NoError(t, s.SetValue(IntValue(1), 0, 0))
	assert.Equal(t, "Sheet (2x4), 0 formula cells\n", Describe(s))
}
