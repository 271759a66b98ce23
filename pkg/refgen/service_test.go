package refgen

import (
	"context"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu           sync.Mutex
	currentValue int64 // Simulates DB sequence value
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Strict passes (prefix), cached passes (prefix, increment).
	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.currentValue += increment
	return &mockRow{val: m.currentValue}
}

func TestNext_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()

	num, err := svc.Next(ctx, "REC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "REC-000001" {
		t.Errorf("expected REC-000001, got %s", num)
	}

	num, err = svc.Next(ctx, "REC")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "REC-000002" {
		t.Errorf("expected REC-000002, got %s", num)
	}
}

func TestGetNext_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("MOV")

	opts := &Options{
		Strategy:  StrategyCached,
		RangeSize: 10,
	}

	// First call allocates range 1..10: DB value jumps to 10,
	// the caller gets 1.
	num, err := svc.GetNext(ctx, cfg, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "MOV-000001" {
		t.Errorf("expected MOV-000001, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value to be 10, got %d", q.currentValue)
	}

	// Second call is served from memory, DB does not change.
	num, err = svc.GetNext(ctx, cfg, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "MOV-000002" {
		t.Errorf("expected MOV-000002, got %s", num)
	}
	if q.currentValue != 10 {
		t.Errorf("expected DB value to stay 10, got %d", q.currentValue)
	}

	// Exhaust the range; the next call refills from DB (11..20).
	for i := 0; i < 8; i++ {
		_, _ = svc.GetNext(ctx, cfg, opts)
	}

	num, err = svc.GetNext(ctx, cfg, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "MOV-000011" {
		t.Errorf("expected MOV-000011, got %s", num)
	}
	if q.currentValue != 20 {
		t.Errorf("expected DB value to be 20, got %d", q.currentValue)
	}
}

func TestNext_ConcurrentUnique(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()

	const n = 1000
	refs := make(chan string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			ref, err := svc.Next(ctx, "MOV")
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			refs <- ref
		}()
	}
	wg.Wait()
	close(refs)

	seen := make(map[string]struct{}, n)
	for ref := range refs {
		if _, dup := seen[ref]; dup {
			t.Fatalf("duplicate reference generated: %s", ref)
		}
		seen[ref] = struct{}{}
	}
	if len(seen) != n {
		t.Fatalf("expected %d unique references, got %d", n, len(seen))
	}
}

func TestParseReference(t *testing.T) {
	if got := ParseReference("REC-000042"); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := ParseReference("garbage"); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}
