package receipt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
)

func qty(v float64) types.Quantity { return types.NewQuantityFromFloat64(v) }

func TestReceipt_AddLineRecalculatesTotals(t *testing.T) {
	doc := NewReceipt(id.New(), "Acme Supplies")
	doc.AddLine(id.New(), "SKU-1", qty(10), qty(8), "A-01")
	doc.AddLine(id.New(), "SKU-2", qty(5), qty(5), "A-02")

	assert.Equal(t, qty(15), doc.TotalExpected)
	assert.Equal(t, qty(13), doc.TotalReceived)
	assert.Equal(t, 2, doc.Lines[1].LineNo)
}

func TestReceipt_Validate(t *testing.T) {
	ctx := context.Background()

	doc := NewReceipt(id.New(), "")
	require.Error(t, doc.Validate(ctx), "missing supplier")

	doc = NewReceipt(id.ID{}, "Acme Supplies")
	require.Error(t, doc.Validate(ctx), "missing warehouse")

	doc = NewReceipt(id.New(), "Acme Supplies")
	require.NoError(t, doc.Validate(ctx), "draft without lines is fine")
}

func TestReceipt_CanValidate(t *testing.T) {
	ctx := context.Background()

	doc := NewReceipt(id.New(), "Acme Supplies")
	require.Error(t, doc.CanValidate(ctx), "no lines")

	doc.AddLine(id.New(), "SKU-1", qty(10), 0, "A-01")
	require.Error(t, doc.CanValidate(ctx), "nothing received")

	doc.Lines[0].ReceivedQty = qty(10)
	doc.Lines[0].Location = ""
	require.Error(t, doc.CanValidate(ctx), "no location")

	doc.Lines[0].Location = "A-01"
	require.NoError(t, doc.CanValidate(ctx))
}

func TestReceipt_GenerateMoves(t *testing.T) {
	doc := NewReceipt(id.New(), "Acme Supplies")
	doc.Reference = "REC-000042"
	doc.AddLine(id.New(), "SKU-1", qty(10), qty(8), "A-01")
	doc.AddLine(id.New(), "SKU-2", qty(5), qty(5), "B-03")

	entries, err := doc.GenerateMoves(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for i, e := range entries {
		assert.Equal(t, entity.MoveTypeReceipt, e.Type)
		assert.Equal(t, "REC-000042", e.Reference)
		assert.Equal(t, doc.WarehouseID, e.WarehouseID)
		assert.Nil(t, e.FromLocation)
		assert.True(t, e.IsInbound(), "entry %d", i)
	}

	assert.Equal(t, qty(8), entries[0].Quantity)
	assert.Equal(t, "A-01", entries[0].ToLocation)
	assert.Equal(t, qty(5), entries[1].Quantity)
	assert.Equal(t, "B-03", entries[1].ToLocation)
}
