// Package transfer provides the Transfer document: goods moved between
// warehouses or between bins of one warehouse.
package transfer

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/validation"
)

// Transfer represents a stock transfer document. Validating it writes a
// balanced pair of ledger entries per line: an outbound entry at the
// source and an inbound entry at the destination.
type Transfer struct {
	entity.Document

	// Source and destination warehouses (may be the same for bin moves)
	FromWarehouseID id.ID `db:"from_warehouse_id" json:"fromWarehouseId"`
	ToWarehouseID   id.ID `db:"to_warehouse_id" json:"toWarehouseId"`

	// TotalQuantity (calculated from lines)
	TotalQuantity types.Quantity `db:"total_quantity" json:"totalQuantity"`

	// Table part: moved goods
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one product on the transfer.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID  id.ID  `db:"product_id" json:"productId"`
	ProductSKU string `db:"product_sku" json:"productSku"`

	Quantity types.Quantity `db:"quantity" json:"quantity"`

	// Source and destination bins
	FromLocation string `db:"from_location" json:"fromLocation"`
	ToLocation   string `db:"to_location" json:"toLocation"`
}

// NewTransfer creates a new transfer document in draft.
func NewTransfer(fromWarehouseID, toWarehouseID id.ID) *Transfer {
	return &Transfer{
		Document:        entity.NewDocument(),
		FromWarehouseID: fromWarehouseID,
		ToWarehouseID:   toWarehouseID,
		Lines:           make([]Line, 0),
	}
}

// AddLine adds a line to the transfer and recalculates totals.
func (t *Transfer) AddLine(productID id.ID, productSKU string, quantity types.Quantity, fromLocation, toLocation string) {
	line := Line{
		LineID:       id.New(),
		LineNo:       len(t.Lines) + 1,
		ProductID:    productID,
		ProductSKU:   productSKU,
		Quantity:     quantity,
		FromLocation: fromLocation,
		ToLocation:   toLocation,
	}

	t.Lines = append(t.Lines, line)
	t.recalculateTotals()
}

// recalculateTotals updates document totals from lines.
func (t *Transfer) recalculateTotals() {
	t.TotalQuantity = 0

	for _, line := range t.Lines {
		t.TotalQuantity = t.TotalQuantity.Add(line.Quantity)
	}
}

// IsIntraWarehouse reports whether the transfer moves goods between bins
// of a single warehouse.
func (t *Transfer) IsIntraWarehouse() bool {
	return t.FromWarehouseID == t.ToWarehouseID
}

// Validate implements entity.Validatable.
func (t *Transfer) Validate(ctx context.Context) error {
	if err := t.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(t.FromWarehouseID) {
		return apperror.NewValidation("source warehouse is required").
			WithDetail("field", "fromWarehouseId")
	}
	if id.IsNil(t.ToWarehouseID) {
		return apperror.NewValidation("destination warehouse is required").
			WithDetail("field", "toWarehouseId")
	}

	for i, line := range t.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity.IsNegative() {
			return apperror.NewValidation("quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// CanValidate checks completion rules: at least one line, every line with
// a positive quantity and distinct source and destination bins when the
// warehouses are the same.
func (t *Transfer) CanValidate(ctx context.Context) error {
	if err := t.Validate(ctx); err != nil {
		return err
	}

	if len(t.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range t.Lines {
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.FromLocation == "" || line.ToLocation == "" {
			return apperror.NewValidation("source and destination locations are required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if t.IsIntraWarehouse() && line.FromLocation == line.ToLocation {
			return apperror.NewValidation("source and destination locations must differ").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// GetMoveType returns the ledger entry type for this document.
func (t *Transfer) GetMoveType() entity.MoveType {
	return entity.MoveTypeTransfer
}

// GenerateMoves derives a balanced entry pair per line: a negative entry
// at the source warehouse followed by a positive entry at the destination.
// Both carry the full route so the ledger shows where goods came from and
// where they went.
func (t *Transfer) GenerateMoves(ctx context.Context) ([]entity.StockMove, error) {
	entries := make([]entity.StockMove, 0, len(t.Lines)*2)

	for i := range t.Lines {
		line := &t.Lines[i]

		out := entity.NewStockMove(
			t.ID,
			entity.MoveTypeTransfer,
			t.Reference,
			t.FromWarehouseID,
			line.ProductID,
			line.ProductSKU,
			line.Quantity.Neg(),
		).WithRoute(&line.FromLocation, line.ToLocation)

		in := entity.NewStockMove(
			t.ID,
			entity.MoveTypeTransfer,
			t.Reference,
			t.ToWarehouseID,
			line.ProductID,
			line.ProductSKU,
			line.Quantity,
		).WithRoute(&line.FromLocation, line.ToLocation)

		entries = append(entries, out, in)
	}

	return entries, nil
}

// Ensure interface compliance at compile time.
var _ validation.Document = (*Transfer)(nil)
