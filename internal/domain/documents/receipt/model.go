// Package receipt provides the Receipt document: incoming goods from a
// supplier into a warehouse.
package receipt

import (
	"context"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/validation"
)

// Receipt represents an incoming goods document. Validating it raises
// stock at each line's location by the received quantity.
type Receipt struct {
	entity.Document
	entity.WarehouseAware

	// Supplier name (free text, not a catalog reference)
	Supplier string `db:"supplier" json:"supplier"`

	// ExpectedDate is when the goods were due to arrive
	ExpectedDate *time.Time `db:"expected_date" json:"expectedDate,omitempty"`

	// Totals (calculated from lines)
	TotalExpected types.Quantity `db:"total_expected" json:"totalExpected"`
	TotalReceived types.Quantity `db:"total_received" json:"totalReceived"`

	// Table part: received goods
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one product on the receipt.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID  id.ID  `db:"product_id" json:"productId"`
	ProductSKU string `db:"product_sku" json:"productSku"`

	// ExpectedQty is what the supplier promised; ReceivedQty is what arrived
	ExpectedQty types.Quantity `db:"expected_qty" json:"expectedQty"`
	ReceivedQty types.Quantity `db:"received_qty" json:"receivedQty"`

	// Location is the bin the goods are put away to
	Location string `db:"location" json:"location"`
}

// NewReceipt creates a new receipt document in draft.
func NewReceipt(warehouseID id.ID, supplier string) *Receipt {
	return &Receipt{
		Document:       entity.NewDocument(),
		WarehouseAware: entity.WarehouseAware{WarehouseID: warehouseID},
		Supplier:       supplier,
		Lines:          make([]Line, 0),
	}
}

// AddLine adds a line to the receipt and recalculates totals.
func (r *Receipt) AddLine(productID id.ID, productSKU string, expectedQty, receivedQty types.Quantity, location string) {
	line := Line{
		LineID:      id.New(),
		LineNo:      len(r.Lines) + 1,
		ProductID:   productID,
		ProductSKU:  productSKU,
		ExpectedQty: expectedQty,
		ReceivedQty: receivedQty,
		Location:    location,
	}

	r.Lines = append(r.Lines, line)
	r.recalculateTotals()
}

// recalculateTotals updates document totals from lines.
func (r *Receipt) recalculateTotals() {
	r.TotalExpected = 0
	r.TotalReceived = 0

	for _, line := range r.Lines {
		r.TotalExpected = r.TotalExpected.Add(line.ExpectedQty)
		r.TotalReceived = r.TotalReceived.Add(line.ReceivedQty)
	}
}

// Validate implements entity.Validatable.
func (r *Receipt) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}

	if err := r.ValidateWarehouse(ctx); err != nil {
		return err
	}

	if r.Supplier == "" {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplier")
	}

	for i, line := range r.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.ExpectedQty.IsNegative() || line.ReceivedQty.IsNegative() {
			return apperror.NewValidation("quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// CanValidate checks completion rules on top of field validation:
// the receipt needs at least one line, and every line needs a received
// quantity and a put-away location.
func (r *Receipt) CanValidate(ctx context.Context) error {
	if err := r.Validate(ctx); err != nil {
		return err
	}

	if len(r.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range r.Lines {
		if !line.ReceivedQty.IsPositive() {
			return apperror.NewValidation("received quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Location == "" {
			return apperror.NewValidation("location is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// GetMoveType returns the ledger entry type for this document.
func (r *Receipt) GetMoveType() entity.MoveType {
	return entity.MoveTypeReceipt
}

// GenerateMoves derives one inbound ledger entry per line.
func (r *Receipt) GenerateMoves(ctx context.Context) ([]entity.StockMove, error) {
	entries := make([]entity.StockMove, 0, len(r.Lines))

	for _, line := range r.Lines {
		entry := entity.NewStockMove(
			r.ID,
			entity.MoveTypeReceipt,
			r.Reference,
			r.WarehouseID,
			line.ProductID,
			line.ProductSKU,
			line.ReceivedQty,
		).WithRoute(nil, line.Location)

		entries = append(entries, entry)
	}

	return entries, nil
}

// Ensure interface compliance at compile time.
var _ validation.Document = (*Receipt)(nil)
