// Package id wraps UUID generation for entities and ledger rows.
// IDs are UUIDv7, so they sort by creation time and cluster well
// in B-tree indexes.
package id

import "github.com/google/uuid"

// ID identifies catalogs, documents and ledger entries.
type ID = uuid.UUID

// New returns a fresh UUIDv7.
func New() ID {
	v7, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to v4.
		return uuid.New()
	}
	return v7
}

// Parse converts a string to an ID, validating the format.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// MustParse is Parse for fixtures and tests; panics on bad input.
func MustParse(s string) ID {
	return uuid.MustParse(s)
}

// IsNil reports whether id is the zero UUID.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
