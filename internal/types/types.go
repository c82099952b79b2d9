// Package types provides domain types shared across paramkeeper components.
//
// The TypeTag enumeration and its diagnostic names are a frozen wire-level
// contract: producers and consumers of parameter sets may be compiled
// independently, and the discriminant values travel across that boundary.
// Renumbering or renaming an existing tag is a breaking change.
package types

// TypeTag is the runtime type discriminant of a parameter value.
// Exactly one union field of a params.Value is meaningful, selected by
// its tag.
type TypeTag int32

// Discriminant values. The numbering is stable and must never change;
// TagUnknown is only ever a diagnostic sentinel, never a live tag.
const (
	TagUnknown TypeTag = iota
	TagInt
	TagUInt
	TagLLong
	TagULLong
	TagDouble
	TagBoolean
	TagString
)

// tagNames maps discriminants to their stable diagnostic names.
// Index position equals discriminant value; do not reorder.
var tagNames = [...]string{
	"unknown",
	"int",
	"uint",
	"llong",
	"ullong",
	"double",
	"boolean",
	"string",
}

// String returns the stable diagnostic name of the tag.
// Out-of-range tags report as "unknown".
func (t TypeTag) String() string {
	if t < TagUnknown || int(t) >= len(tagNames) {
		return tagNames[TagUnknown]
	}
	return tagNames[t]
}

// Valid reports whether t is a legal tag for a live parameter.
func (t TypeTag) Valid() bool {
	return t > TagUnknown && int(t) < len(tagNames)
}

// ParseTypeTag resolves a diagnostic name back to its discriminant.
// "unknown" is rejected: it is not a storable type.
func ParseTypeTag(s string) (TypeTag, error) {
	for i, name := range tagNames {
		if name == s && TypeTag(i) != TagUnknown {
			return TypeTag(i), nil
		}
	}
	return TagUnknown, ErrUnknownType
}

// Resource limits enforced by the parameter set implementation.
const (
	// MaxNameLength bounds parameter names. Names occupy a fixed-length
	// slot in the boundary layout, so an over-long name is a hard error
	// rather than a silent truncation.
	MaxNameLength = 64
)
