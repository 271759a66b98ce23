package adjustment

import "stockmaster/pkg/refgen"

const (
	// RefStrategy defines the reference numbering strategy for adjustments.
	RefStrategy = refgen.StrategyStrict
)
