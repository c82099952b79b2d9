package types

import "errors"

// Sentinel errors for parameter set operations.
var (
	// ErrNameTooLong indicates a parameter name exceeds MaxNameLength.
	ErrNameTooLong = errors.New("parameter name too long")

	// ErrAlreadySet indicates an add for a name that already exists.
	ErrAlreadySet = errors.New("parameter is already set")

	// ErrInvalidValue indicates a textual value that does not parse as
	// the declared type.
	ErrInvalidValue = errors.New("invalid value for parameter")

	// ErrTypeMismatch indicates a parameter exists with a different tag
	// than the one requested or declared.
	ErrTypeMismatch = errors.New("parameter type mismatch")

	// ErrDuplicateName indicates a name occurs more than once in a set.
	ErrDuplicateName = errors.New("parameter occurs multiple times")

	// ErrNotSupported indicates a parameter name absent from the
	// caller-declared schema.
	ErrNotSupported = errors.New("parameter not supported")

	// ErrUnknownType indicates a discriminant outside the known
	// enumeration. This is a programming error in the caller, not a
	// data error.
	ErrUnknownType = errors.New("unknown parameter type")

	// ErrSetNotFound indicates a named parameter set absent from the store.
	ErrSetNotFound = errors.New("parameter set not found")
)
