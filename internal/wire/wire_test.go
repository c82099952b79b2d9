package wire

import (
	"errors"
	"strings"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/solatis/paramkeeper/internal/params"
	"github.com/solatis/paramkeeper/internal/types"
)

func buildFullSet(t *testing.T) *params.Set {
	t.Helper()
	s := params.NewSet()
	if err := s.AddInt("cpu_shares", -512); err != nil {
		t.Fatal(err)
	}
	if err := s.AddUInt("vcpus", 4); err != nil {
		t.Fatal(err)
	}
	if err := s.AddLLong("balloon", -1); err != nil {
		t.Fatal(err)
	}
	if err := s.AddULLong("memory_kb", 8<<20); err != nil {
		t.Fatal(err)
	}
	if err := s.AddDouble("weight", 0.75); err != nil {
		t.Fatal(err)
	}
	if err := s.AddBoolean("autostart", true); err != nil {
		t.Fatal(err)
	}
	if err := s.AddString("emulator", "/usr/bin/qemu"); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSetRoundTrip(t *testing.T) {
	s := buildFullSet(t)

	enc, err := MarshalSet(s)
	if err != nil {
		t.Fatalf("MarshalSet failed: %v", err)
	}
	got, err := UnmarshalSet(enc)
	if err != nil {
		t.Fatalf("UnmarshalSet failed: %v", err)
	}

	if got.Len() != s.Len() {
		t.Fatalf("Len() = %d, want %d", got.Len(), s.Len())
	}
	// Insertion order survives the boundary.
	for i, p := range s.Params() {
		q := got.Params()[i]
		if q.Name != p.Name || q.Value != p.Value {
			t.Errorf("param %d = %+v, want %+v", i, q, p)
		}
	}
}

func TestEmptySetRoundTrip(t *testing.T) {
	enc, err := MarshalSet(params.NewSet())
	if err != nil {
		t.Fatal(err)
	}
	if len(enc) != 0 {
		t.Fatalf("empty set encodes to %d bytes, want 0", len(enc))
	}
	got, err := UnmarshalSet(nil)
	if err != nil || got.Len() != 0 {
		t.Fatalf("UnmarshalSet(nil) = (%d entries, %v), want empty", got.Len(), err)
	}
}

func TestUnknownDiscriminantRejected(t *testing.T) {
	// Record claiming discriminant 42.
	var rec []byte
	rec = protowire.AppendTag(rec, paramFieldName, protowire.BytesType)
	rec = protowire.AppendString(rec, "x")
	rec = protowire.AppendTag(rec, paramFieldType, protowire.VarintType)
	rec = protowire.AppendVarint(rec, 42)

	var buf []byte
	buf = protowire.AppendTag(buf, setFieldParam, protowire.BytesType)
	buf = protowire.AppendBytes(buf, rec)

	_, err := UnmarshalSet(buf)
	if !errors.Is(err, types.ErrUnknownType) {
		t.Fatalf("UnmarshalSet() = %v, want ErrUnknownType", err)
	}
}

func TestOverlongNameRejectedBothWays(t *testing.T) {
	long := strings.Repeat("n", types.MaxNameLength+1)

	// Encoding: an externally built set can carry the bad name.
	bad := params.NewSetFromParams([]params.Param{{Name: long, Value: params.IntValue(1)}})
	if _, err := MarshalSet(bad); !errors.Is(err, types.ErrNameTooLong) {
		t.Fatalf("MarshalSet() = %v, want ErrNameTooLong", err)
	}

	// Decoding: a hostile peer's record is refused during rebuild.
	var rec []byte
	rec = protowire.AppendTag(rec, paramFieldName, protowire.BytesType)
	rec = protowire.AppendString(rec, long)
	rec = protowire.AppendTag(rec, paramFieldType, protowire.VarintType)
	rec = protowire.AppendVarint(rec, uint64(types.TagInt))

	var buf []byte
	buf = protowire.AppendTag(buf, setFieldParam, protowire.BytesType)
	buf = protowire.AppendBytes(buf, rec)

	if _, err := UnmarshalSet(buf); !errors.Is(err, types.ErrNameTooLong) {
		t.Fatalf("UnmarshalSet() = %v, want ErrNameTooLong", err)
	}
}

func TestDuplicateNameRejectedOnDecode(t *testing.T) {
	src := params.NewSetFromParams([]params.Param{
		{Name: "x", Value: params.IntValue(1)},
		{Name: "x", Value: params.IntValue(2)},
	})
	enc, err := MarshalSet(src)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := UnmarshalSet(enc); !errors.Is(err, types.ErrAlreadySet) {
		t.Fatalf("UnmarshalSet() = %v, want ErrAlreadySet", err)
	}
}

func TestAbsentValueFieldDecodesZero(t *testing.T) {
	// Proto semantics: a record with no payload field carries the zero
	// value of its tag.
	var rec []byte
	rec = protowire.AppendTag(rec, paramFieldName, protowire.BytesType)
	rec = protowire.AppendString(rec, "flag")
	rec = protowire.AppendTag(rec, paramFieldType, protowire.VarintType)
	rec = protowire.AppendVarint(rec, uint64(types.TagBoolean))

	var buf []byte
	buf = protowire.AppendTag(buf, setFieldParam, protowire.BytesType)
	buf = protowire.AppendBytes(buf, rec)

	got, err := UnmarshalSet(buf)
	if err != nil {
		t.Fatal(err)
	}
	v, found, err := got.Boolean("flag")
	if err != nil || !found || v {
		t.Fatalf("Boolean(flag) = (%v, %v, %v), want (false, true, nil)", v, found, err)
	}
}

func TestTruncatedInputRejected(t *testing.T) {
	s := buildFullSet(t)
	enc, err := MarshalSet(s)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := UnmarshalSet(enc[:len(enc)-3]); err == nil {
		t.Fatal("truncated encoding accepted")
	}
}

func TestRPCMessageRoundTrip(t *testing.T) {
	set := buildFullSet(t)

	t.Run("PutSetRequest", func(t *testing.T) {
		in := &PutSetRequest{Name: "domain-tuning", Set: set}
		enc, err := in.MarshalWire()
		if err != nil {
			t.Fatal(err)
		}
		out := new(PutSetRequest)
		if err := out.UnmarshalWire(enc); err != nil {
			t.Fatal(err)
		}
		if out.Name != in.Name || out.Set.Len() != set.Len() {
			t.Fatalf("round trip = (%q, %d entries), want (%q, %d)",
				out.Name, out.Set.Len(), in.Name, set.Len())
		}
	})

	t.Run("GetSetResponse without set", func(t *testing.T) {
		in := &GetSetResponse{Name: "empty"}
		enc, err := in.MarshalWire()
		if err != nil {
			t.Fatal(err)
		}
		out := new(GetSetResponse)
		if err := out.UnmarshalWire(enc); err != nil {
			t.Fatal(err)
		}
		if out.Name != "empty" || out.Set == nil || out.Set.Len() != 0 {
			t.Fatalf("round trip = %+v, want empty set present", out)
		}
	})

	t.Run("ListSetsResponse", func(t *testing.T) {
		in := &ListSetsResponse{Names: []string{"a", "b", "c"}}
		enc, err := in.MarshalWire()
		if err != nil {
			t.Fatal(err)
		}
		out := new(ListSetsResponse)
		if err := out.UnmarshalWire(enc); err != nil {
			t.Fatal(err)
		}
		if len(out.Names) != 3 || out.Names[0] != "a" || out.Names[2] != "c" {
			t.Fatalf("round trip Names = %v", out.Names)
		}
	})
}

func TestCodecDispatch(t *testing.T) {
	c := Codec{}
	if c.Name() != "paramwire" {
		t.Fatalf("Name() = %q", c.Name())
	}

	msg := &GetSetRequest{Name: "x"}
	enc, err := c.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	out := new(GetSetRequest)
	if err := c.Unmarshal(enc, out); err != nil {
		t.Fatal(err)
	}
	if out.Name != "x" {
		t.Fatalf("Unmarshal Name = %q", out.Name)
	}

	if _, err := c.Marshal(struct{}{}); err == nil {
		t.Fatal("foreign non-proto message accepted")
	}
}
