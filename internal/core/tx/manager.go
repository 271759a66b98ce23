// Package tx defines the transaction boundary used by domain services.
// The postgres implementation lives in infrastructure/storage/postgres;
// domain code only ever sees this interface.
package tx

import "context"

// Manager runs a function inside a database transaction.
//
// Document validation leans on this: the status change, the ledger
// append and the level updates must commit or roll back as one unit.
type Manager interface {
	// RunInTransaction commits when fn returns nil, rolls back otherwise.
	// Nested calls join the transaction already carried by ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
