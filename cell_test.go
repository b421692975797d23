package xlcalc

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_ZeroIsEmpty(t *testing.T) {
	var v Value
	assert.True(t, v.IsEmpty())
	assert.Equal(t, KindEmpty, v.Kind())
	assert.Equal(t, "", v.String())
	assert.Nil(t, v.Any())

	assert.False(t, StringValue("").IsEmpty(), "empty string is not the empty marker")
}

func TestValue_Coerce(t *testing.T) {
	tests := map[string]float64{"12": 12, "1.5": 1.5, ".5": 0.5, "5.": 5, "007": 7}
	for text, expected := range tests {
		v := StringValue(text).coerce()
		f, ok := v.Float()
		assert.True(t, ok, "text %q", text)
		assert.Equal(t, expected, f, "text %q", text)
	}
	assert.True(t, StringValue("12").coerce().IsInteger())
	assert.False(t, StringValue("1.5").coerce().IsInteger())
}

func TestValue_CoerceLeavesOtherText(t *testing.T) {
	for _, text := range []string{"-1", "+1", "1e3", ".", "1.2.3", "abc", "", " 1"} {
		v := StringValue(text).coerce()
		assert.Equal(t, KindString, v.Kind(), "text %q", text)
		assert.Equal(t, text, v.Text())
	}
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "10", IntValue(10).String())
	assert.Equal(t, "0.5", NumberValue(0.5).String())
	assert.Equal(t, "25", NumberValue(25).String())
	assert.Equal(t, "-Inf", NumberValue(math.Inf(-1)).String())
	assert.Equal(t, "abc", StringValue("abc").String())
}

func TestValue_Any(t *testing.T) {
	assert.Equal(t, int64(10), IntValue(10).Any())
	assert.Equal(t, 2.5, NumberValue(2.5).Any())
	assert.Equal(t, "x", StringValue("x").Any())
	assert.Equal(t, "+Inf", NumberValue(math.Inf(1)).Any())
}

func TestValueOf(t *testing.T) {
	assert.True(t, ValueOf(nil).IsEmpty())
	assert.True(t, ValueOf(7).IsInteger())
	assert.True(t, ValueOf(json.Number("7")).IsInteger())
	assert.Equal(t, KindNumber, ValueOf(json.Number("7.25")).Kind())
	assert.Equal(t, KindNumber, ValueOf(2.5).Kind())
	assert.Equal(t, "true", ValueOf(true).Text())
	assert.Equal(t, "hi", ValueOf("hi").Text())
	assert.Equal(t, IntValue(3), ValueOf(IntValue(3)))
}

func TestValueKind_String(t *testing.T) {
	assert.Equal(t, "Empty", KindEmpty.String())
	assert.Equal(t, "String", KindString.String())
	assert.Equal(t, "Number", KindNumber.String())
	assert.Equal(t, "Unknown", ValueKind(99).String())
}
