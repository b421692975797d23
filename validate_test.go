package xlcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidSheet(t *testing.T) {
	s := newTestSheet(t, 3, 3)
	require.NoError(t, s.SetValue(IntValue(10), 0, 0))
	require.NoError(t, s.SetFormula("=A1 + A1", 1, 1))
	require.NoError(t, s.SetFormula("=SUM(A1:B2)", 2, 2))
	require.NoError(t, s.SetFormula("=clr(A1:B2)", 2, 0))

	issues := Validate(s)
	assert.Empty(t, issues)
	assert.False(t, HasErrors(issues))
}

func TestValidate_MultipleIssues(t *testing.T) {
	s := newTestSheet(t, 3, 3)
	require.NoError(t, s.SetValue(IntValue(10), 0, 0))
	require.NoError(t, s.SetFormula("=A1 / B1", 0, 2))
	require.NoError(t, s.SetFormula("=A1 + A1", 1, 1))
	require.NoError(t, s.SetFormula("=SUM(A1:D4)", 1, 2))
	require.NoError(t, s.SetFormula("=clr(A1)", 2, 2))

	issues := Validate(s)
	require.Len(t, issues, 4)
	assert.True(t, HasErrors(issues))

	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, "C1", issues[0].Cell.String())
	assert.Contains(t, issues[0].Message, "division by zero")

	assert.Equal(t, SeverityWarning, issues[1].Severity)
	assert.Equal(t, "C2", issues[1].Cell.String())
	assert.Contains(t, issues[1].Message, "A1:D4 is outside the 3x3 sheet")

	assert.Equal(t, SeverityError, issues[2].Severity)
	assert.Equal(t, "C2", issues[2].Cell.String())

	assert.Equal(t, SeverityError, issues[3].Severity)
	assert.Equal(t, "C3", issues[3].Cell.String())
}

func TestValidate_DoesNotModifySheet(t *testing.T) {
	s := newTestSheet(t, 3, 3)
	require.NoError(t, s.SetValue(IntValue(10), 0, 0))
	require.NoError(t, s.SetFormula("=A1 + A1", 1, 1))

	assert.Empty(t, Validate(s))
	_, err := s.GetValue(1, 1)
	assert.ErrorIs(t, err, ErrEmptyCell)
}

func TestValidate_CircularReference(t *testing.T) {
	s := newTestSheet(t, 3, 3)
	require.NoError(t, s.SetFormula("=B1", 0, 0))
	require.NoError(t, s.SetFormula("=A1", 0, 1))

	issues := Validate(s)
	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, SeverityError, issue.Severity)
		assert.Contains(t, issue.Message, "circular reference")
	}
}

func TestValidate_IssueString(t *testing.T) {
	issue := ValidationIssue{Severity: SeverityError, Cell: CellRef{Row: 1, Col: 1}, Message: "boom"}
	assert.Equal(t, "[ERROR] B2: boom", issue.String())

	issue.Severity = SeverityWarning
	assert.Equal(t, "[WARN] B2: boom", issue.String())
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]ValidationIssue{{Severity: SeverityWarning}}))
	assert.True(t, HasErrors([]ValidationIssue{{Severity: SeverityWarning}, {Severity: SeverityError}}))
}
