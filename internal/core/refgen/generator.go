// Package refgen provides domain contracts for document reference generation.
// Implementations live in infrastructure layer.
package refgen

import (
	"context"
)

// Well-known reference prefixes.
const (
	PrefixReceipt    = "REC"
	PrefixDelivery   = "DEL"
	PrefixTransfer   = "TRF"
	PrefixAdjustment = "ADJ"
	PrefixMove       = "MOV"
)

// Generator issues sequential document references.
// This is the domain contract - implementations live in infrastructure layer.
type Generator interface {
	// Next generates the next reference for a prefix.
	// Pattern: PREFIX-XXXXXX (e.g., REC-000042).
	// References are monotonic per prefix and collision-free under
	// concurrent callers.
	Next(ctx context.Context, prefix string) (string, error)

	// SetNext sets the next counter value (for migration purposes).
	SetNext(ctx context.Context, prefix string, value int64) error
}
