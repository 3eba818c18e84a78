// Package id generates identifiers for workflow entities.
package id

import "github.com/google/uuid"

// New returns a time-ordered UUIDv7 string so that rows sort by creation
// when ordered by id.
func New() string {
	u, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return u.String()
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
