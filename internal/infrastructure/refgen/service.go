// Package refgen provides the PostgreSQL implementation of document
// reference generation. It implements core/refgen.Generator.
package refgen

import (
	"context"

	corerefgen "stockmaster/internal/core/refgen"
	pkgrefgen "stockmaster/pkg/refgen"
)

// Service issues references backed by the sys_sequences table.
type Service struct {
	svc *pkgrefgen.Service
}

// Ensure compile-time interface compliance.
var _ corerefgen.Generator = (*Service)(nil)

// New creates a reference generator over a querier (pool or transaction).
// Reference counters are intentionally bumped outside business transactions:
// a rolled-back validation may burn a number, never reuse one.
func New(querier pkgrefgen.Querier) *Service {
	return &Service{svc: pkgrefgen.New(querier)}
}

// Next implements refgen.Generator.
func (s *Service) Next(ctx context.Context, prefix string) (string, error) {
	return s.svc.Next(ctx, prefix)
}

// SetNext implements refgen.Generator.
func (s *Service) SetNext(ctx context.Context, prefix string, value int64) error {
	return s.svc.SetNext(ctx, prefix, value)
}
