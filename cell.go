package xlcalc

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind identifies what a cell currently stores.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindString
	KindNumber
)

// String returns a human-readable name for the ValueKind.
func (k ValueKind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	default:
		return "Unknown"
	}
}

// Value is a stored cell literal: empty, text, or a number. The zero Value is
// empty, which is distinct from an empty string.
type Value struct {
	kind    ValueKind
	str     string
	num     float64
	integer bool // number was entered without a fractional part
}

// EmptyValue returns the empty marker.
func EmptyValue() Value { return Value{} }

// StringValue stores text verbatim.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// NumberValue stores a floating-point number.
func NumberValue(f float64) Value { return Value{kind: KindNumber, num: f} }

// IntValue stores an integer.
func IntValue(n int64) Value { return Value{kind: KindNumber, num: float64(n), integer: true} }

// ValueOf converts a decoded Go value (from JSON, YAML, a spreadsheet reader)
// into a Value. Strings are kept as text; coercion happens on read.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case nil:
		return EmptyValue()
	case Value:
		return x
	case string:
		return StringValue(x)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return IntValue(n)
		}
		if f, err := x.Float64(); err == nil {
			return NumberValue(f)
		}
		return StringValue(x.String())
	case int:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int32:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case uint:
		return IntValue(int64(x))
	case uint8:
		return IntValue(int64(x))
	case uint16:
		return IntValue(int64(x))
	case uint32:
		return IntValue(int64(x))
	case uint64:
		return IntValue(int64(x))
	case float32:
		return NumberValue(float64(x))
	case float64:
		return NumberValue(x)
	case bool:
		return StringValue(strconv.FormatBool(x))
	default:
		return StringValue(fmt.Sprint(x))
	}
}

// Kind reports what the value holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsEmpty reports whether v is the empty marker.
func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsInteger reports whether v holds a number entered without a fractional part.
func (v Value) IsInteger() bool { return v.kind == KindNumber && v.integer }

// Float returns the numeric content and whether v is a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Text returns the stored text for string values.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// String formats the value for display. Empty renders as "".
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.integer {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Any returns v as a plain Go value for serializers: nil, string, int64 or
// float64. Infinite numbers are returned as their display text.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if math.IsInf(v.num, 0) || math.IsNaN(v.num) {
			return v.String()
		}
		if v.integer {
			return int64(v.num)
		}
		return v.num
	default:
		return nil
	}
}

// coerce applies the read-time rule: a string made only of digits with at
// most one '.' reads back as a number. No sign, no exponent.
func (v Value) coerce() Value {
	if v.kind != KindString || !isNumericText(v.str) {
		return v
	}
	if !strings.Contains(v.str, ".") {
		if n, err := strconv.ParseInt(v.str, 10, 64); err == nil {
			return IntValue(n)
		}
	}
	f, err := strconv.ParseFloat(v.str, 64)
	if err != nil {
		return v
	}
	return NumberValue(f)
}

func isNumericText(s string) bool {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
