package params

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/solatis/paramkeeper/internal/types"
)

// Property: any sequence of adds with distinct names succeeds, yields
// count == n regardless of the growth schedule, and every entry stays
// retrievable by name with its original value.
func TestProperty_GrowthAndUniqueness(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("distinct adds all retrievable", prop.ForAll(
		func(n int) bool {
			s := NewSet()
			for i := 0; i < n; i++ {
				if err := s.AddLLong(fmt.Sprintf("p%d", i), int64(i*i)); err != nil {
					return false
				}
			}
			if s.Len() != n || s.Cap() < n {
				return false
			}
			for i := 0; i < n; i++ {
				v, found, err := s.LLong(fmt.Sprintf("p%d", i))
				if err != nil || !found || v != int64(i*i) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 128),
	))

	properties.Property("reused name always fails and keeps count", prop.ForAll(
		func(n int, reuse int) bool {
			s := NewSet()
			for i := 0; i < n; i++ {
				if err := s.AddUInt(fmt.Sprintf("p%d", i), uint32(i)); err != nil {
					return false
				}
			}
			name := fmt.Sprintf("p%d", reuse%n)
			err := s.AddUInt(name, 9999)
			if !errors.Is(err, types.ErrAlreadySet) {
				return false
			}
			if s.Len() != n {
				return false
			}
			v, found, err := s.UInt(name)
			return err == nil && found && v == uint32(reuse%n)
		},
		gen.IntRange(1, 64),
		gen.IntRange(0, 1<<20),
	))

	properties.TestingRun(t)
}

// Property: for every tag, a typed get after a typed add returns the
// value that was added, and a get with any other tag reports a
// mismatch, never a false positive.
func TestProperty_RoundTripAndMismatch(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("int round trip", prop.ForAll(
		func(v int32) bool {
			s := NewSet()
			if err := s.AddInt("x", v); err != nil {
				return false
			}
			got, found, err := s.Int("x")
			if err != nil || !found || got != v {
				return false
			}
			_, found, err = s.ULLong("x")
			return !found && errors.Is(err, types.ErrTypeMismatch)
		},
		gen.Int32(),
	))

	properties.Property("ullong round trip", prop.ForAll(
		func(v uint64) bool {
			s := NewSet()
			if err := s.AddULLong("x", v); err != nil {
				return false
			}
			got, found, err := s.ULLong("x")
			return err == nil && found && got == v
		},
		gen.UInt64(),
	))

	properties.Property("double round trip", prop.ForAll(
		func(v float64) bool {
			s := NewSet()
			if err := s.AddDouble("x", v); err != nil {
				return false
			}
			got, found, err := s.Double("x")
			if err != nil || !found {
				return false
			}
			return got == v || (math.IsNaN(got) && math.IsNaN(v))
		},
		gen.Float64(),
	))

	properties.Property("string round trip", prop.ForAll(
		func(v string) bool {
			s := NewSet()
			if err := s.AddString("x", v); err != nil {
				return false
			}
			got, found, err := s.String("x")
			return err == nil && found && got == v
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// Property: the canonical string form of a generated value feeds back
// through AddFromString to an equal value for every scalar tag.
func TestProperty_StringFormRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("llong via string form", prop.ForAll(
		func(v int64) bool {
			s := NewSet()
			if err := s.AddFromString("x", types.TagLLong, LLongValue(v).Format()); err != nil {
				return false
			}
			got, found, err := s.LLong("x")
			return err == nil && found && got == v
		},
		gen.Int64(),
	))

	properties.Property("uint via string form", prop.ForAll(
		func(v uint32) bool {
			s := NewSet()
			if err := s.AddFromString("x", types.TagUInt, UIntValue(v).Format()); err != nil {
				return false
			}
			got, found, err := s.UInt("x")
			return err == nil && found && got == v
		},
		gen.UInt32(),
	))

	properties.TestingRun(t)
}
