package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/solatis/paramkeeper/internal/types"
)

/*
 * String-form value assignment.
 *
 * Converts a textual value plus a declared tag into a typed Value.
 * Parse rules per tag:
 *   - int/uint/llong/ullong: strict base-10, no remainder tolerated
 *   - double: locale-independent floating parse (strconv)
 *   - boolean: case-insensitive "true"/"false", exact "1"/"0"
 *   - string: text copied verbatim
 *
 * Note the deliberate asymmetry with native assignment: the native
 * string adder tolerates an absent value (normalized to ""), while the
 * string-form path requires the text to parse as the declared type.
 */

// parseValue converts text into a value tagged tag. name only feeds the
// error message.
func parseValue(tag types.TypeTag, name, text string) (Value, error) {
	switch tag {
	case types.TagInt:
		n, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("parameter '%s': expected int: %w",
				name, types.ErrInvalidValue)
		}
		return IntValue(int32(n)), nil

	case types.TagUInt:
		n, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("parameter '%s': expected unsigned int: %w",
				name, types.ErrInvalidValue)
		}
		return UIntValue(uint32(n)), nil

	case types.TagLLong:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parameter '%s': expected long long: %w",
				name, types.ErrInvalidValue)
		}
		return LLongValue(n), nil

	case types.TagULLong:
		n, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parameter '%s': expected unsigned long long: %w",
				name, types.ErrInvalidValue)
		}
		return ULLongValue(n), nil

	case types.TagDouble:
		d, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, fmt.Errorf("parameter '%s': expected double: %w",
				name, types.ErrInvalidValue)
		}
		return DoubleValue(d), nil

	case types.TagBoolean:
		switch {
		case strings.EqualFold(text, "true") || text == "1":
			return BooleanValue(true), nil
		case strings.EqualFold(text, "false") || text == "0":
			return BooleanValue(false), nil
		default:
			return Value{}, fmt.Errorf("parameter '%s': invalid boolean value: %w",
				name, types.ErrInvalidValue)
		}

	case types.TagString:
		return StringValue(text), nil

	default:
		return Value{}, fmt.Errorf("unexpected type %d for parameter '%s': %w",
			int32(tag), name, types.ErrUnknownType)
	}
}
