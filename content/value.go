package content

import (
	"fmt"
	"strconv"
)

// Value is a field value of a content node: a boolean, an integer or a
// string. Values are small immutable variants; the zero Value is "unset".
type Value struct {
	kind vkind
	b    bool
	num  int64
	str  string
}

type vkind int8

const (
	noValue vkind = iota
	boolValue
	intValue
	strValue
)

// Bool wraps a boolean field value.
func Bool(b bool) Value {
	return Value{kind: boolValue, b: b}
}

// Int wraps an integer field value.
func Int(n int64) Value {
	return Value{kind: intValue, num: n}
}

// Str wraps a string field value.
func Str(s string) Value {
	return Value{kind: strValue, str: s}
}

// IsSet is a predicate for non-zero values. An unset field never matches a
// selector predicate requiring a specific value.
func (v Value) IsSet() bool {
	return v.kind != noValue
}

// AsBool returns the boolean payload. Non-boolean values return false.
func (v Value) AsBool() bool {
	return v.kind == boolValue && v.b
}

// AsInt returns the integer payload. Non-integer values return 0.
func (v Value) AsInt() int64 {
	if v.kind != intValue {
		return 0
	}
	return v.num
}

// AsString returns the string payload. Non-string values return "".
func (v Value) AsString() string {
	if v.kind != strValue {
		return ""
	}
	return v.str
}

// Equal compares two values for kind and payload equality.
func (v Value) Equal(other Value) bool {
	return v == other
}

func (v Value) String() string {
	switch v.kind {
	case boolValue:
		return strconv.FormatBool(v.b)
	case intValue:
		return strconv.FormatInt(v.num, 10)
	case strValue:
		return fmt.Sprintf("%q", v.str)
	}
	return "unset"
}
