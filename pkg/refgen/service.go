// Package refgen provides document reference generation.
// References follow the pattern PREFIX-XXXXXX (e.g., REC-000042).
package refgen

import (
	"context"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
)

// Strategy defines the reference generation strategy.
type Strategy int

const (
	// StrategyStrict uses UPSERT ... RETURNING for every reference.
	// Guarantees sequential references without gaps.
	// Slower, suitable for customer-facing documents.
	StrategyStrict Strategy = iota

	// StrategyCached allocates ranges of numbers in memory.
	// Much faster, but may produce gaps if application restarts.
	// Suitable for high-volume internal entries (ledger batches).
	StrategyCached
)

// Options configuration for reference generation.
type Options struct {
	// Strategy to use
	Strategy Strategy
	// RangeSize is the number of values to allocate at once in Cached strategy.
	// Default is 50.
	RangeSize int64
}

// DefaultOptions returns standard options (Strict).
func DefaultOptions() *Options {
	return &Options{
		Strategy: StrategyStrict,
	}
}

// Config holds reference formatting configuration.
type Config struct {
	// Prefix added to all references (e.g., "REC", "DEL")
	Prefix string

	// PadWidth is the minimum number width (default 6)
	PadWidth int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(prefix string) Config {
	return Config{
		Prefix:   prefix,
		PadWidth: 6,
	}
}

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type cachedRange struct {
	current int64
	max     int64
}

// Service issues sequential references backed by the sys_sequences table.
// The counter is per prefix; the UPSERT makes concurrent callers serialize
// on the sequence row, so no two callers ever see the same value.
type Service struct {
	querier Querier

	cacheMu sync.Mutex
	ranges  map[string]*cachedRange
}

// New creates a new reference service.
func New(querier Querier) *Service {
	return &Service{
		querier: querier,
		ranges:  make(map[string]*cachedRange),
	}
}

// GetNext generates the next reference for a config.
func (s *Service) GetNext(ctx context.Context, cfg Config, opts *Options) (string, error) {
	if s == nil {
		return "", fmt.Errorf("refgen service is not initialized")
	}

	if opts == nil {
		opts = DefaultOptions()
	}

	var num int64
	var err error

	switch opts.Strategy {
	case StrategyCached:
		num, err = s.nextCached(ctx, cfg.Prefix, opts)
	case StrategyStrict:
		fallthrough
	default:
		num, err = s.nextStrict(ctx, cfg.Prefix)
	}

	if err != nil {
		return "", err
	}

	return FormatReference(cfg, num), nil
}

// Next generates the next reference using default config for the prefix.
func (s *Service) Next(ctx context.Context, prefix string) (string, error) {
	return s.GetNext(ctx, DefaultConfig(prefix), nil)
}

// nextStrict fetches the next value directly from DB using UPSERT + RETURNING.
func (s *Service) nextStrict(ctx context.Context, prefix string) (int64, error) {
	var num int64
	err := s.querier.QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, prefix).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("strict next: %w", err)
	}
	return num, nil
}

// nextCached fetches next value from memory, refilling a range from DB
// when the previous range is exhausted.
func (s *Service) nextCached(ctx context.Context, prefix string, opts *Options) (int64, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	rng, exists := s.ranges[prefix]
	if !exists {
		rng = &cachedRange{}
		s.ranges[prefix] = rng
	}

	if rng.current >= rng.max {
		size := opts.RangeSize
		if size <= 0 {
			size = 50
		}

		// current_val tracks the last allocated value; bumping it by size
		// reserves the half-open range (newMax-size, newMax].
		var newMax int64
		err := s.querier.QueryRow(ctx, `
            INSERT INTO sys_sequences (key, current_val)
            VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + $2
            RETURNING current_val
		`, prefix, size).Scan(&newMax)
		if err != nil {
			return 0, fmt.Errorf("reserve range: %w", err)
		}

		rng.current = newMax - size
		rng.max = newMax
	}

	rng.current++
	return rng.current, nil
}

// SetNext sets the next counter value (for migration purposes).
func (s *Service) SetNext(ctx context.Context, prefix string, value int64) error {
	var result int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = $2
		RETURNING current_val
	`, prefix, value-1).Scan(&result)

	s.cacheMu.Lock()
	delete(s.ranges, prefix)
	s.cacheMu.Unlock()

	return err
}

// FormatReference creates the final reference string.
func FormatReference(cfg Config, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 6
	}
	return fmt.Sprintf("%s-%0*d", cfg.Prefix, padWidth, num)
}

// ParseReference extracts the numeric part from a formatted reference.
// Returns -1 if parsing fails.
func ParseReference(formatted string) int64 {
	var num int64
	if _, err := fmt.Sscanf(formatted, "%*[^-]-%d", &num); err == nil {
		return num
	}
	return -1
}
