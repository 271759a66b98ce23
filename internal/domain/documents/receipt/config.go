package receipt

import "stockmaster/pkg/refgen"

const (
	// RefStrategy defines the reference numbering strategy for receipts.
	// Receipts are primary stock documents, so the strict strategy is used.
	RefStrategy = refgen.StrategyStrict
)
