package transfer

import "stockmaster/pkg/refgen"

const (
	// RefStrategy defines the reference numbering strategy for transfers.
	RefStrategy = refgen.StrategyStrict
)
