package params

import (
	"strconv"

	"github.com/solatis/paramkeeper/internal/types"
)

/*
 * Tagged parameter values.
 *
 * Value is a closed tagged variant: one constructor per discriminant,
 * so a value can never carry data inconsistent with its tag. Fields are
 * unexported; consumers go through the typed accessors, which report
 * tag mismatches instead of returning a zero from the wrong slot.
 *
 * String payloads are owned by the Value. An absent native string is
 * normalized to the empty string at construction, never to a
 * null-equivalent, so downstream code can treat every string value as
 * present.
 */

// Value holds one typed parameter value, selected by Tag.
type Value struct {
	tag types.TypeTag
	i   int32
	ui  uint32
	l   int64
	ul  uint64
	d   float64
	b   bool
	s   string
}

// Tag returns the value's type discriminant.
func (v Value) Tag() types.TypeTag { return v.tag }

// IntValue constructs an int-tagged value.
func IntValue(v int32) Value { return Value{tag: types.TagInt, i: v} }

// UIntValue constructs a uint-tagged value.
func UIntValue(v uint32) Value { return Value{tag: types.TagUInt, ui: v} }

// LLongValue constructs an llong-tagged value.
func LLongValue(v int64) Value { return Value{tag: types.TagLLong, l: v} }

// ULLongValue constructs an ullong-tagged value.
func ULLongValue(v uint64) Value { return Value{tag: types.TagULLong, ul: v} }

// DoubleValue constructs a double-tagged value.
func DoubleValue(v float64) Value { return Value{tag: types.TagDouble, d: v} }

// BooleanValue constructs a boolean-tagged value.
func BooleanValue(v bool) Value { return Value{tag: types.TagBoolean, b: v} }

// StringValue constructs a string-tagged value. The payload is copied by
// assignment; the resulting Value owns it.
func StringValue(v string) Value { return Value{tag: types.TagString, s: v} }

// Int returns the int payload. ok is false when the tag differs.
func (v Value) Int() (int32, bool) { return v.i, v.tag == types.TagInt }

// UInt returns the uint payload. ok is false when the tag differs.
func (v Value) UInt() (uint32, bool) { return v.ui, v.tag == types.TagUInt }

// LLong returns the llong payload. ok is false when the tag differs.
func (v Value) LLong() (int64, bool) { return v.l, v.tag == types.TagLLong }

// ULLong returns the ullong payload. ok is false when the tag differs.
func (v Value) ULLong() (uint64, bool) { return v.ul, v.tag == types.TagULLong }

// Double returns the double payload. ok is false when the tag differs.
func (v Value) Double() (float64, bool) { return v.d, v.tag == types.TagDouble }

// Boolean returns the boolean payload. ok is false when the tag differs.
func (v Value) Boolean() (bool, bool) { return v.b, v.tag == types.TagBoolean }

// String returns the string payload. ok is false when the tag differs.
// The returned string is the stored payload; callers must not retain it
// across Free of the owning set.
func (v Value) String() (string, bool) { return v.s, v.tag == types.TagString }

// Format renders the payload in canonical string form: the exact form
// accepted back by the string-form assigner for the same tag. Doubles
// use the shortest representation that round-trips.
func (v Value) Format() string {
	switch v.tag {
	case types.TagInt:
		return strconv.FormatInt(int64(v.i), 10)
	case types.TagUInt:
		return strconv.FormatUint(uint64(v.ui), 10)
	case types.TagLLong:
		return strconv.FormatInt(v.l, 10)
	case types.TagULLong:
		return strconv.FormatUint(v.ul, 10)
	case types.TagDouble:
		return strconv.FormatFloat(v.d, 'g', -1, 64)
	case types.TagBoolean:
		return strconv.FormatBool(v.b)
	case types.TagString:
		return v.s
	default:
		return ""
	}
}
