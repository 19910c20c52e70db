package store

import "github.com/google/uuid"

// newID returns an opaque identifier for a new record. IDs are unique
// within a planner's lifetime with overwhelming probability; they carry
// no ordering.
func newID() string {
	return uuid.NewString()
}
