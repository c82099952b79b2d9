package params

import (
	"errors"
	"testing"

	"github.com/solatis/paramkeeper/internal/types"
)

func TestAddFromString(t *testing.T) {
	tests := []struct {
		name    string
		tag     types.TypeTag
		text    string
		wantErr error
	}{
		{"int: plain", types.TagInt, "42", nil},
		{"int: negative", types.TagInt, "-42", nil},
		{"int: trailing garbage", types.TagInt, "12abc", types.ErrInvalidValue},
		{"int: empty", types.TagInt, "", types.ErrInvalidValue},
		{"int: out of 32-bit range", types.TagInt, "2147483648", types.ErrInvalidValue},

		{"uint: plain", types.TagUInt, "42", nil},
		{"uint: negative rejected", types.TagUInt, "-1", types.ErrInvalidValue},
		{"uint: hex rejected", types.TagUInt, "0x10", types.ErrInvalidValue},

		{"llong: min", types.TagLLong, "-9223372036854775808", nil},
		{"llong: float rejected", types.TagLLong, "1.5", types.ErrInvalidValue},

		{"ullong: max", types.TagULLong, "18446744073709551615", nil},
		{"ullong: overflow", types.TagULLong, "18446744073709551616", types.ErrInvalidValue},

		{"double: decimal", types.TagDouble, "3.14159", nil},
		{"double: scientific", types.TagDouble, "1e10", nil},
		{"double: malformed", types.TagDouble, "3.14.15", types.ErrInvalidValue},

		{"string: verbatim", types.TagString, "any text at all", nil},
		{"string: empty text", types.TagString, "", nil},

		{"unknown tag", types.TagUnknown, "1", types.ErrUnknownType},
		{"out-of-range tag", types.TypeTag(99), "1", types.ErrUnknownType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet()
			err := s.AddFromString("field", tt.tag, tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddFromString() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil && s.Len() != 0 {
				t.Fatalf("Len() = %d after failed add, want 0", s.Len())
			}
			if tt.wantErr == nil && s.Len() != 1 {
				t.Fatalf("Len() = %d after successful add, want 1", s.Len())
			}
		})
	}
}

func TestBooleanParsing(t *testing.T) {
	tests := []struct {
		text    string
		want    bool
		wantErr error
	}{
		{"true", true, nil},
		{"TRUE", true, nil},
		{"True", true, nil},
		{"1", true, nil},
		{"false", false, nil},
		{"False", false, nil},
		{"FALSE", false, nil},
		{"0", false, nil},
		{"yes", false, types.ErrInvalidValue},
		{"no", false, types.ErrInvalidValue},
		{"01", false, types.ErrInvalidValue},
		{"", false, types.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run("boolean "+tt.text, func(t *testing.T) {
			s := NewSet()
			err := s.AddFromString("flag", types.TagBoolean, tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddFromString(%q) error = %v, want %v", tt.text, err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			v, found, err := s.Boolean("flag")
			if err != nil || !found {
				t.Fatalf("Boolean() = (found=%v, err=%v)", found, err)
			}
			if v != tt.want {
				t.Fatalf("Boolean(%q) = %v, want %v", tt.text, v, tt.want)
			}
		})
	}
}

func TestFromStringRoundTripsFormat(t *testing.T) {
	// Canonical Format output must parse back to an equal value.
	values := []Value{
		IntValue(-123),
		UIntValue(4096),
		LLongValue(-1 << 50),
		ULLongValue(1 << 60),
		DoubleValue(0.1),
		DoubleValue(1e300),
		BooleanValue(true),
		StringValue("plain text"),
	}

	for _, v := range values {
		t.Run(v.Tag().String(), func(t *testing.T) {
			got, err := parseValue(v.Tag(), "field", v.Format())
			if err != nil {
				t.Fatalf("parseValue(%s, %q) failed: %v", v.Tag(), v.Format(), err)
			}
			if got != v {
				t.Fatalf("round trip %s: got %+v, want %+v", v.Tag(), got, v)
			}
		})
	}
}
