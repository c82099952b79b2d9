// Package params implements typed, dynamically-sized named-value
// collections passed across API boundaries.
//
// A Set is an ordered, growable sequence of (name, tagged value) pairs
// with strict runtime type discipline: typed getters fail on tag
// mismatch, typed adders reject duplicate names, and Validate checks a
// whole set against a caller-declared schema. Sets are single-owner,
// in-memory values; they are built once and consumed, never edited in
// place (the only removal operation is Clear).
//
// Return convention for typed getters is tri-state: (value, true, nil)
// when the name exists with the requested tag, (zero, false, nil) when
// the name is absent, and (zero, false, err) when the name exists with
// a different tag. These signatures are stable; extend the family,
// never change it.
package params

import (
	"fmt"

	"github.com/solatis/paramkeeper/internal/types"
)

// Param is a single (bounded name, tagged value) pair.
type Param struct {
	Name  string
	Value Value
}

// Set is an ordered sequence of parameters with separate logical count
// (Len) and allocated capacity (Cap). Growth is amortized O(1) per add.
// Not safe for concurrent mutation; single-owner semantics.
type Set struct {
	entries []Param
	rec     Recorder
}

// NewSet returns an empty set (count and capacity zero, no allocation)
// with a LastError recorder.
func NewSet() *Set {
	return &Set{rec: &LastError{}}
}

// NewSetWithRecorder returns an empty set reporting to rec.
func NewSetWithRecorder(rec Recorder) *Set {
	return &Set{rec: rec}
}

// NewSetFromParams wraps an externally produced sequence. No invariants
// are assumed of it: external producers may carry duplicates, which is
// why Validate re-verifies uniqueness rather than trusting the adders.
func NewSetFromParams(entries []Param) *Set {
	return &Set{entries: entries, rec: &LastError{}}
}

// Recorder returns the set's diagnostic recorder.
func (s *Set) Recorder() Recorder { return s.rec }

// Len returns the number of live parameters.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Cap returns the allocated capacity. Monotonically non-decreasing
// until Free.
func (s *Set) Cap() int {
	if s == nil {
		return 0
	}
	return cap(s.entries)
}

// Params returns the live entries in insertion order. The slice is the
// set's backing storage; callers must treat it as read-only.
func (s *Set) Params() []Param {
	if s == nil {
		return nil
	}
	return s.entries
}

// reset clears stale recorder state at the start of a public operation.
func (s *Set) reset() {
	if s.rec != nil {
		s.rec.Reset()
	}
}

// record reports err to the recorder and passes it through.
func (s *Set) record(err error) error {
	if s.rec != nil {
		s.rec.Record(err)
	}
	return err
}

// find scans for the first entry named name. No recorder interaction.
func (s *Set) find(name string) (*Param, bool) {
	for i := range s.entries {
		if s.entries[i].Name == name {
			return &s.entries[i], true
		}
	}
	return nil, false
}

// Lookup finds the first parameter called name, without type checking.
// O(Len). Returns nil, false when absent.
func (s *Set) Lookup(name string) (*Param, bool) {
	if s == nil {
		return nil, false
	}
	s.reset()
	return s.find(name)
}

// get is the shared typed-getter prologue: reset, scan, tag check.
func (s *Set) get(name string, want types.TypeTag) (*Param, bool, error) {
	s.reset()
	p, ok := s.find(name)
	if !ok {
		return nil, false, nil
	}
	if p.Value.tag != want {
		return nil, false, s.record(fmt.Errorf(
			"invalid type '%s' requested for parameter '%s', actual type is '%s': %w",
			want, name, p.Value.tag, types.ErrTypeMismatch))
	}
	return p, true, nil
}

// Int finds parameter name and returns its int value.
func (s *Set) Int(name string) (int32, bool, error) {
	p, ok, err := s.get(name, types.TagInt)
	if !ok {
		return 0, false, err
	}
	return p.Value.i, true, nil
}

// UInt finds parameter name and returns its uint value.
func (s *Set) UInt(name string) (uint32, bool, error) {
	p, ok, err := s.get(name, types.TagUInt)
	if !ok {
		return 0, false, err
	}
	return p.Value.ui, true, nil
}

// LLong finds parameter name and returns its llong value.
func (s *Set) LLong(name string) (int64, bool, error) {
	p, ok, err := s.get(name, types.TagLLong)
	if !ok {
		return 0, false, err
	}
	return p.Value.l, true, nil
}

// ULLong finds parameter name and returns its ullong value.
func (s *Set) ULLong(name string) (uint64, bool, error) {
	p, ok, err := s.get(name, types.TagULLong)
	if !ok {
		return 0, false, err
	}
	return p.Value.ul, true, nil
}

// Double finds parameter name and returns its double value.
func (s *Set) Double(name string) (float64, bool, error) {
	p, ok, err := s.get(name, types.TagDouble)
	if !ok {
		return 0, false, err
	}
	return p.Value.d, true, nil
}

// Boolean finds parameter name and returns its boolean value.
func (s *Set) Boolean(name string) (bool, bool, error) {
	p, ok, err := s.get(name, types.TagBoolean)
	if !ok {
		return false, false, err
	}
	return p.Value.b, true, nil
}

// String finds parameter name and returns its string value. The set
// keeps ownership of the payload; callers must not retain the returned
// string across Free.
func (s *Set) String(name string) (string, bool, error) {
	p, ok, err := s.get(name, types.TagString)
	if !ok {
		return "", false, err
	}
	return p.Value.s, true, nil
}

// newParam constructs a parameter, enforcing the name bound and tag
// validity. No partial construction: an error leaves nothing assigned.
func newParam(name string, v Value) (Param, error) {
	if len(name) > types.MaxNameLength {
		return Param{}, fmt.Errorf("parameter name '%s' exceeds %d bytes: %w",
			name, types.MaxNameLength, types.ErrNameTooLong)
	}
	if !v.tag.Valid() {
		return Param{}, fmt.Errorf("unexpected type %d for parameter '%s': %w",
			int32(v.tag), name, types.ErrUnknownType)
	}
	return Param{Name: name, Value: v}, nil
}

// add appends a parameter after the duplicate pre-check. Failed
// construction never advances the count; append growth is handled by
// the runtime with an amortized O(1) doubling schedule.
func (s *Set) add(name string, v Value) error {
	s.reset()
	if _, ok := s.find(name); ok {
		return s.record(fmt.Errorf("parameter '%s': %w", name, types.ErrAlreadySet))
	}
	p, err := newParam(name, v)
	if err != nil {
		return s.record(err)
	}
	s.entries = append(s.entries, p)
	return nil
}

// AddInt appends a new int parameter. Fails if name already exists or
// exceeds the name bound; on failure the set is unchanged.
func (s *Set) AddInt(name string, value int32) error {
	return s.add(name, IntValue(value))
}

// AddUInt appends a new uint parameter.
func (s *Set) AddUInt(name string, value uint32) error {
	return s.add(name, UIntValue(value))
}

// AddLLong appends a new llong parameter.
func (s *Set) AddLLong(name string, value int64) error {
	return s.add(name, LLongValue(value))
}

// AddULLong appends a new ullong parameter.
func (s *Set) AddULLong(name string, value uint64) error {
	return s.add(name, ULLongValue(value))
}

// AddDouble appends a new double parameter.
func (s *Set) AddDouble(name string, value float64) error {
	return s.add(name, DoubleValue(value))
}

// AddBoolean appends a new boolean parameter.
func (s *Set) AddBoolean(name string, value bool) error {
	return s.add(name, BooleanValue(value))
}

// AddString appends a new string parameter. The set takes its own copy
// of value; an absent value is stored as the empty string.
func (s *Set) AddString(name, value string) error {
	return s.add(name, StringValue(value))
}

// AddFromString appends a new parameter of the declared tag, parsing
// its value from text per the tag's parse rules (see parseValue).
func (s *Set) AddFromString(name string, tag types.TypeTag, text string) error {
	s.reset()
	if _, ok := s.find(name); ok {
		return s.record(fmt.Errorf("parameter '%s': %w", name, types.ErrAlreadySet))
	}
	v, err := parseValue(tag, name, text)
	if err != nil {
		return s.record(err)
	}
	p, err := newParam(name, v)
	if err != nil {
		return s.record(err)
	}
	s.entries = append(s.entries, p)
	return nil
}

// Clear drops every string payload while keeping count and capacity
// intact. Idempotent; safe on a nil set.
func (s *Set) Clear() {
	if s == nil {
		return
	}
	for i := range s.entries {
		if s.entries[i].Value.tag == types.TagString {
			s.entries[i].Value.s = ""
		}
	}
}

// Free releases the backing storage after Clear. The set is logically
// empty afterwards and must not be reused without reinitialization.
func (s *Set) Free() {
	if s == nil {
		return
	}
	s.Clear()
	s.entries = nil
}
