package types

import (
	"time"

	"github.com/google/uuid"
)

// SetID represents a UUIDv7 parameter set identifier.
// String alias keeps the type opaque while remaining trivially storable.
type SetID string

// NewSetID generates a UUIDv7 set identifier.
// Time-ordered IDs keep sequential inserts clustered in B-tree pages.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewSetID() SetID {
	return SetID(uuid.Must(uuid.NewV7()).String())
}

// ParseSetID validates and converts a string to SetID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseSetID(s string) (SetID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return SetID(s), nil
}

// SetIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func SetIDTime(id SetID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
