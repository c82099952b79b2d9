package params

import (
	"fmt"

	"github.com/solatis/paramkeeper/internal/types"
)

// Field declares one (name, expected type) pair of a schema.
type Field struct {
	Name string
	Type types.TypeTag
}

// Validate checks that the set contains only schema-declared names with
// matching types, and no duplicates. Entries are checked in insertion
// order; the set is never reordered.
//
// Failure behavior is deliberately uneven and part of the contract:
//   - an undeclared name aborts immediately with ErrNotSupported;
//   - a duplicate name aborts immediately with ErrDuplicateName;
//   - a declared-type mismatch is reported to the recorder but does NOT
//     abort the scan or fail the result.
//
// Callers wanting strict typing inspect the recorder after a nil
// return; see LastError.Last.
//
// Duplicate detection is quadratic and schema lookup is linear per
// entry. Both are bounded by schema and set sizes that stay in the
// tens; this is not a performance path.
func (s *Set) Validate(schema []Field) error {
	s.reset()
	for i := range s.entries {
		p := &s.entries[i]

		found := false
		for _, f := range schema {
			if f.Name != p.Name {
				continue
			}
			found = true
			if p.Value.tag != f.Type {
				s.record(fmt.Errorf("invalid type '%s' for parameter '%s', expected '%s': %w",
					p.Value.tag, p.Name, f.Type, types.ErrTypeMismatch))
			}
			break
		}
		if !found {
			return s.record(fmt.Errorf("parameter '%s': %w", p.Name, types.ErrNotSupported))
		}

		// External producers bypass the adders, so uniqueness must be
		// re-verified here rather than assumed.
		for j := 0; j < i; j++ {
			if s.entries[j].Name == p.Name {
				return s.record(fmt.Errorf("parameter '%s': %w", p.Name, types.ErrDuplicateName))
			}
		}
	}
	return nil
}
