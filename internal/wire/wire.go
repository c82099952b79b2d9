// Package wire implements the stable cross-boundary encoding of
// parameter sets, plus the ParamStore RPC protocol built on it.
//
// Each parameter travels as a length-delimited record of (name,
// discriminant, tag-selected value field) using protobuf wire
// primitives. The discriminant on the wire is the frozen TypeTag
// numbering from internal/types; the value field number is derived
// from it (2 + discriminant), so both sides of the boundary can be
// compiled independently. Unknown record fields are skipped for
// forward compatibility; unknown discriminants are rejected.
package wire

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/solatis/paramkeeper/internal/params"
	"github.com/solatis/paramkeeper/internal/types"
)

// Field numbers of the set and param records. Frozen.
const (
	setFieldParam = 1 // repeated bytes, one per parameter

	paramFieldName = 1 // bytes
	paramFieldType = 2 // varint, TypeTag numbering
)

// valueField returns the record field carrying the payload for tag.
// 2 + discriminant: int=3, uint=4, llong=5, ullong=6, double=7,
// boolean=8, string=9. Frozen alongside the TypeTag numbering.
func valueField(tag types.TypeTag) protowire.Number {
	return protowire.Number(2 + int(tag))
}

// MarshalSet encodes the set's parameters in insertion order.
func MarshalSet(s *params.Set) ([]byte, error) {
	var buf []byte
	for _, p := range s.Params() {
		rec, err := appendParam(nil, p)
		if err != nil {
			return nil, err
		}
		buf = protowire.AppendTag(buf, setFieldParam, protowire.BytesType)
		buf = protowire.AppendBytes(buf, rec)
	}
	return buf, nil
}

// appendParam encodes a single parameter record.
func appendParam(buf []byte, p params.Param) ([]byte, error) {
	if len(p.Name) > types.MaxNameLength {
		return nil, fmt.Errorf("parameter name '%s' exceeds %d bytes: %w",
			p.Name, types.MaxNameLength, types.ErrNameTooLong)
	}
	tag := p.Value.Tag()
	if !tag.Valid() {
		return nil, fmt.Errorf("unexpected type %d for parameter '%s': %w",
			int32(tag), p.Name, types.ErrUnknownType)
	}

	buf = protowire.AppendTag(buf, paramFieldName, protowire.BytesType)
	buf = protowire.AppendString(buf, p.Name)
	buf = protowire.AppendTag(buf, paramFieldType, protowire.VarintType)
	buf = protowire.AppendVarint(buf, uint64(tag))

	switch tag {
	case types.TagInt:
		v, _ := p.Value.Int()
		buf = protowire.AppendTag(buf, valueField(tag), protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(uint32(v)))
	case types.TagUInt:
		v, _ := p.Value.UInt()
		buf = protowire.AppendTag(buf, valueField(tag), protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(v))
	case types.TagLLong:
		v, _ := p.Value.LLong()
		buf = protowire.AppendTag(buf, valueField(tag), protowire.VarintType)
		buf = protowire.AppendVarint(buf, uint64(v))
	case types.TagULLong:
		v, _ := p.Value.ULLong()
		buf = protowire.AppendTag(buf, valueField(tag), protowire.VarintType)
		buf = protowire.AppendVarint(buf, v)
	case types.TagDouble:
		v, _ := p.Value.Double()
		buf = protowire.AppendTag(buf, valueField(tag), protowire.Fixed64Type)
		buf = protowire.AppendFixed64(buf, math.Float64bits(v))
	case types.TagBoolean:
		v, _ := p.Value.Boolean()
		buf = protowire.AppendTag(buf, valueField(tag), protowire.VarintType)
		buf = protowire.AppendVarint(buf, protowire.EncodeBool(v))
	case types.TagString:
		v, _ := p.Value.String()
		buf = protowire.AppendTag(buf, valueField(tag), protowire.BytesType)
		buf = protowire.AppendString(buf, v)
	}
	return buf, nil
}

// UnmarshalSet decodes a set encoded by MarshalSet. Duplicate names and
// over-long names are rejected by the typed adders during rebuild.
func UnmarshalSet(b []byte) (*params.Set, error) {
	s := params.NewSet()
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		if num != setFieldParam || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		rec, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		if err := consumeParam(s, rec); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// consumeParam decodes one parameter record and appends it to s.
// First pass resolves name and discriminant; second pass reads the
// payload from the field the discriminant selects. An absent payload
// field decodes as the tag's zero value, proto-style.
func consumeParam(s *params.Set, rec []byte) error {
	var name string
	tag := types.TagUnknown

	b := rec
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == paramFieldName && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			name = v
			b = b[n:]
		case num == paramFieldType && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			tag = types.TypeTag(v)
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}

	if !tag.Valid() {
		return fmt.Errorf("unexpected type %d for parameter '%s': %w",
			int32(tag), name, types.ErrUnknownType)
	}

	var varint uint64
	var fixed uint64
	var str string

	b = rec
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if num != valueField(tag) {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			varint = v
			b = b[n:]
		case protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			fixed = v
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			str = v
			b = b[n:]
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}

	switch tag {
	case types.TagInt:
		return s.AddInt(name, int32(uint32(varint)))
	case types.TagUInt:
		return s.AddUInt(name, uint32(varint))
	case types.TagLLong:
		return s.AddLLong(name, int64(varint))
	case types.TagULLong:
		return s.AddULLong(name, varint)
	case types.TagDouble:
		return s.AddDouble(name, math.Float64frombits(fixed))
	case types.TagBoolean:
		return s.AddBoolean(name, varint != 0)
	default: // TagString; tag validity checked above
		return s.AddString(name, str)
	}
}
