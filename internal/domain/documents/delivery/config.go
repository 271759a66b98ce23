package delivery

import "stockmaster/pkg/refgen"

const (
	// RefStrategy defines the reference numbering strategy for deliveries.
	RefStrategy = refgen.StrategyStrict
)
