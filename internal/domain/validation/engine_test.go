package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/apperror"
	appctx "stockmaster/internal/core/context"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
)

// fakeTxManager runs the function directly, no real transaction.
type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeLedger records Apply/Append calls and can simulate a shortage.
type fakeLedger struct {
	applied     [][]entity.StockMove
	appended    [][]entity.StockMove
	applyErr    error
	appendedAll []entity.StockMove
}

func (l *fakeLedger) Apply(ctx context.Context, entries []entity.StockMove) error {
	if l.applyErr != nil {
		return l.applyErr
	}
	l.applied = append(l.applied, entries)
	return nil
}

func (l *fakeLedger) Append(ctx context.Context, entries []entity.StockMove) error {
	l.appended = append(l.appended, entries)
	l.appendedAll = append(l.appendedAll, entries...)
	return nil
}

// fakeDoc is a minimal validatable document with a fixed set of moves.
type fakeDoc struct {
	entity.Document
	moves []entity.StockMove
}

func (d *fakeDoc) GetMoveType() entity.MoveType {
	return entity.MoveTypeReceipt
}

func (d *fakeDoc) GenerateMoves(ctx context.Context) ([]entity.StockMove, error) {
	return d.moves, nil
}

func newFakeDoc(lineCount int) *fakeDoc {
	doc := &fakeDoc{Document: entity.NewDocument()}
	doc.Reference = "REC-000001"

	warehouseID := id.New()
	for i := 0; i < lineCount; i++ {
		doc.moves = append(doc.moves, entity.NewStockMove(
			doc.ID,
			entity.MoveTypeReceipt,
			doc.Reference,
			warehouseID,
			id.New(),
			"SKU-1",
			types.NewQuantityFromFloat64(10),
		).WithRoute(nil, "A-01"))
	}

	return doc
}

func TestValidate_WritesEntriesAndCompletesDocument(t *testing.T) {
	ledger := &fakeLedger{}
	engine := NewEngine(ledger, &fakeTxManager{})

	doc := newFakeDoc(3)
	persisted := false
	persist := func(ctx context.Context) error {
		persisted = true
		return nil
	}

	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{UserID: "user-7"})
	err := engine.Validate(ctx, doc, persist)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDone, doc.GetStatus())
	assert.True(t, persisted)

	require.Len(t, ledger.appendedAll, 3)
	for _, e := range ledger.appendedAll {
		assert.Equal(t, "REC-000001", e.Reference)
		assert.Equal(t, "user-7", e.UserID)
		assert.Equal(t, entity.MoveStatusDone, e.Status)
	}

	// Levels are projected before entries are appended
	require.Len(t, ledger.applied, 1)
	require.Len(t, ledger.appended, 1)
}

func TestValidate_TerminalDocumentRejected(t *testing.T) {
	ledger := &fakeLedger{}
	engine := NewEngine(ledger, &fakeTxManager{})

	doc := newFakeDoc(1)
	doc.MarkDone()

	err := engine.Validate(context.Background(), doc, func(ctx context.Context) error { return nil })
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
	assert.Empty(t, ledger.appendedAll)
}

func TestValidate_SecondValidationWritesNothing(t *testing.T) {
	ledger := &fakeLedger{}
	engine := NewEngine(ledger, &fakeTxManager{})

	doc := newFakeDoc(2)
	persist := func(ctx context.Context) error { return nil }

	require.NoError(t, engine.Validate(context.Background(), doc, persist))
	require.Len(t, ledger.appendedAll, 2)

	err := engine.Validate(context.Background(), doc, persist)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))

	// No additional entries after the failed second attempt
	assert.Len(t, ledger.appendedAll, 2)
}

func TestValidate_ShortageAbortsBeforeAppend(t *testing.T) {
	ledger := &fakeLedger{
		applyErr: apperror.NewInsufficientStock("SKU-1", 10, 4),
	}
	engine := NewEngine(ledger, &fakeTxManager{})

	doc := newFakeDoc(1)
	persisted := false
	persist := func(ctx context.Context) error {
		persisted = true
		return nil
	}

	err := engine.Validate(context.Background(), doc, persist)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// Nothing reached the ledger, the document stayed editable
	assert.Empty(t, ledger.appendedAll)
	assert.False(t, persisted)
	assert.Equal(t, entity.StatusDraft, doc.GetStatus())
}

func TestCancelDocument(t *testing.T) {
	ledger := &fakeLedger{}
	engine := NewEngine(ledger, &fakeTxManager{})

	doc := newFakeDoc(1)
	persist := func(ctx context.Context) error { return nil }

	require.NoError(t, engine.CancelDocument(context.Background(), doc, persist))
	assert.Equal(t, entity.StatusCanceled, doc.GetStatus())
	assert.Empty(t, ledger.appendedAll)

	// Terminal documents cannot be canceled again
	err := engine.CancelDocument(context.Background(), doc, persist)
	require.Error(t, err)
	assert.True(t, apperror.IsInvalidState(err))
}
