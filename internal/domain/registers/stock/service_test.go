package stock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain"
)

// fakeRepo keeps levels in memory and records appended entries.
type fakeRepo struct {
	levels  map[levelKey]entity.StockLevel
	entries []entity.StockMove
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{levels: make(map[levelKey]entity.StockLevel)}
}

func (r *fakeRepo) key(warehouseID, productID id.ID, location string) levelKey {
	return levelKey{warehouseID: warehouseID, productID: productID, location: location}
}

func (r *fakeRepo) AppendEntries(ctx context.Context, entries []entity.StockMove) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func (r *fakeRepo) GetEntriesByDocument(ctx context.Context, documentID id.ID) ([]entity.StockMove, error) {
	var out []entity.StockMove
	for _, e := range r.entries {
		if e.DocumentID == documentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListEntries(ctx context.Context, filter LedgerFilter) (domain.ListResult[entity.StockMove], error) {
	return domain.ListResult[entity.StockMove]{Items: r.entries, TotalCount: int64(len(r.entries))}, nil
}

func (r *fakeRepo) GetLevel(ctx context.Context, warehouseID, productID id.ID, location string) (entity.StockLevel, error) {
	level, ok := r.levels[r.key(warehouseID, productID, location)]
	if !ok {
		return entity.StockLevel{WarehouseID: warehouseID, ProductID: productID, Location: location}, nil
	}
	return level, nil
}

func (r *fakeRepo) GetLevelForUpdate(ctx context.Context, warehouseID, productID id.ID, location string) (entity.StockLevel, error) {
	return r.GetLevel(ctx, warehouseID, productID, location)
}

func (r *fakeRepo) UpsertLevel(ctx context.Context, level entity.StockLevel) error {
	r.levels[r.key(level.WarehouseID, level.ProductID, level.Location)] = level
	return nil
}

func (r *fakeRepo) GetLevelsByWarehouse(ctx context.Context, warehouseID id.ID, filter LevelFilter) ([]entity.StockLevel, error) {
	var out []entity.StockLevel
	for _, l := range r.levels {
		if l.WarehouseID != warehouseID {
			continue
		}
		if filter.ExcludeZero && l.Quantity.IsZero() {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeRepo) GetLevelsByProduct(ctx context.Context, productID id.ID) ([]entity.StockLevel, error) {
	var out []entity.StockLevel
	for _, l := range r.levels {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetTurnover(ctx context.Context, filter TurnoverFilter) (Turnover, error) {
	return Turnover{}, nil
}

func (r *fakeRepo) RecalculateLevels(ctx context.Context, warehouseID, productID *id.ID) error {
	return nil
}

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func inbound(warehouseID, productID id.ID, quantity float64, location string) entity.StockMove {
	return entity.NewStockMove(
		id.New(), entity.MoveTypeReceipt, "REC-000001",
		warehouseID, productID, "SKU-1", qty(quantity),
	).WithRoute(nil, location)
}

func outbound(warehouseID, productID id.ID, quantity float64, location string) entity.StockMove {
	loc := location
	return entity.NewStockMove(
		id.New(), entity.MoveTypeDelivery, "DEL-000001",
		warehouseID, productID, "SKU-1", qty(quantity).Neg(),
	).WithRoute(&loc, entity.LocationOut)
}

func TestApply_InboundCreatesLevel(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	warehouseID, productID := id.New(), id.New()
	err := svc.Apply(context.Background(), []entity.StockMove{
		inbound(warehouseID, productID, 50, "A-01"),
	})
	require.NoError(t, err)

	level, err := repo.GetLevel(context.Background(), warehouseID, productID, "A-01")
	require.NoError(t, err)
	assert.Equal(t, qty(50), level.Quantity)
}

func TestApply_OutboundLowersLevel(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	warehouseID, productID := id.New(), id.New()
	require.NoError(t, svc.Apply(context.Background(), []entity.StockMove{
		inbound(warehouseID, productID, 50, "A-01"),
	}))

	require.NoError(t, svc.Apply(context.Background(), []entity.StockMove{
		outbound(warehouseID, productID, 10, "A-01"),
	}))

	level, _ := repo.GetLevel(context.Background(), warehouseID, productID, "A-01")
	assert.Equal(t, qty(40), level.Quantity)
}

func TestApply_ShortageFailsWithoutPartialWrites(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	warehouseID, productID := id.New(), id.New()
	require.NoError(t, svc.Apply(context.Background(), []entity.StockMove{
		inbound(warehouseID, productID, 5, "A-01"),
	}))

	err := svc.Apply(context.Background(), []entity.StockMove{
		outbound(warehouseID, productID, 10, "A-01"),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// Level untouched
	level, _ := repo.GetLevel(context.Background(), warehouseID, productID, "A-01")
	assert.Equal(t, qty(5), level.Quantity)
}

func TestApply_TransferPairMovesBetweenBins(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	warehouseID, productID := id.New(), id.New()
	require.NoError(t, svc.Apply(context.Background(), []entity.StockMove{
		inbound(warehouseID, productID, 30, "A-01"),
	}))

	from := "A-01"
	out := entity.NewStockMove(
		id.New(), entity.MoveTypeTransfer, "TRF-000001",
		warehouseID, productID, "SKU-1", qty(12).Neg(),
	).WithRoute(&from, "B-02")
	in := entity.NewStockMove(
		id.New(), entity.MoveTypeTransfer, "TRF-000001",
		warehouseID, productID, "SKU-1", qty(12),
	).WithRoute(&from, "B-02")

	require.NoError(t, svc.Apply(context.Background(), []entity.StockMove{out, in}))

	source, _ := repo.GetLevel(context.Background(), warehouseID, productID, "A-01")
	dest, _ := repo.GetLevel(context.Background(), warehouseID, productID, "B-02")
	assert.Equal(t, qty(18), source.Quantity)
	assert.Equal(t, qty(12), dest.Quantity)
}

func TestApply_OutSinkNeverStocked(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	warehouseID, productID := id.New(), id.New()
	require.NoError(t, svc.Apply(context.Background(), []entity.StockMove{
		inbound(warehouseID, productID, 20, "A-01"),
	}))
	require.NoError(t, svc.Apply(context.Background(), []entity.StockMove{
		outbound(warehouseID, productID, 20, "A-01"),
	}))

	outLevel, _ := repo.GetLevel(context.Background(), warehouseID, productID, entity.LocationOut)
	assert.True(t, outLevel.Quantity.IsZero())
}

func TestApply_ZeroQuantityEntrySkipped(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	warehouseID, productID := id.New(), id.New()
	entry := entity.NewStockMove(
		id.New(), entity.MoveTypeAdjustment, "ADJ-000001",
		warehouseID, productID, "SKU-1", 0,
	).WithRoute(nil, "A-01")

	require.NoError(t, svc.Apply(context.Background(), []entity.StockMove{entry}))
	assert.Empty(t, repo.levels)
}

func TestCollectDeltas_FoldsSameBin(t *testing.T) {
	warehouseID, productID := id.New(), id.New()
	entries := []entity.StockMove{
		inbound(warehouseID, productID, 10, "A-01"),
		inbound(warehouseID, productID, 5, "A-01"),
		inbound(warehouseID, productID, 3, "B-02"),
	}

	deltas := collectDeltas(entries)
	require.Len(t, deltas, 2)
	assert.Equal(t, qty(15), deltas[0].delta)
	assert.Equal(t, qty(3), deltas[1].delta)
}

func TestAppend_ValidatesEntries(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	entry := inbound(id.New(), id.New(), 5, "A-01")
	entry.Reference = ""

	err := svc.Append(context.Background(), []entity.StockMove{entry})
	require.Error(t, err)
	assert.Empty(t, repo.entries)
}
