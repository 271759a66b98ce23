// Package refgen provides domain contracts for document reference generation.
package refgen

import (
	"context"
	"fmt"
	"sync/atomic"
)

// MockGenerator is a test implementation of Generator.
// Use in unit tests to avoid database dependencies.
type MockGenerator struct {
	NextFunc    func(ctx context.Context, prefix string) (string, error)
	SetNextFunc func(ctx context.Context, prefix string, value int64) error

	counter atomic.Int64
}

// Next implements Generator.
func (m *MockGenerator) Next(ctx context.Context, prefix string) (string, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, prefix)
	}
	// Default: predictable in-memory sequence
	return fmt.Sprintf("%s-%06d", prefix, m.counter.Add(1)), nil
}

// SetNext implements Generator.
func (m *MockGenerator) SetNext(ctx context.Context, prefix string, value int64) error {
	if m.SetNextFunc != nil {
		return m.SetNextFunc(ctx, prefix, value)
	}
	m.counter.Store(value - 1)
	return nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
