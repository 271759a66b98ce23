// Package product provides the Product catalog.
// Products are the stock-keeping items tracked by the ledger.
package product

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/types"
)

// Product represents a stock-keeping item.
type Product struct {
	entity.Catalog

	// SKU is the unique stock-keeping unit code
	SKU string `db:"sku" json:"sku"`

	// Category groups products for reporting and ledger filtering
	Category string `db:"category" json:"category"`

	// UOM is the unit of measure (pcs, kg, m, ...)
	UOM string `db:"uom" json:"uom"`

	// Barcode is the item barcode (EAN-13, etc.)
	Barcode *string `db:"barcode" json:"barcode,omitempty"`

	// ReorderPoint is the level below which the item needs replenishment
	ReorderPoint types.Quantity `db:"reorder_point" json:"reorderPoint"`

	// ReorderQuantity is the suggested replenishment amount
	ReorderQuantity types.Quantity `db:"reorder_quantity" json:"reorderQuantity"`

	// Description is a detailed description
	Description *string `db:"description" json:"description,omitempty"`

	// ImageURL is the item image URL
	ImageURL *string `db:"image_url" json:"imageUrl,omitempty"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(sku, name string) *Product {
	return &Product{
		Catalog: entity.NewCatalog(sku, name),
		SKU:     sku,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	// Base catalog validation
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}

	if p.UOM == "" {
		return apperror.NewValidation("unit of measure is required").
			WithDetail("field", "uom")
	}

	if p.ReorderPoint.IsNegative() {
		return apperror.NewValidation("reorder point cannot be negative").
			WithDetail("field", "reorderPoint")
	}

	if p.ReorderQuantity.IsNegative() {
		return apperror.NewValidation("reorder quantity cannot be negative").
			WithDetail("field", "reorderQuantity")
	}

	return nil
}

// NeedsReorder reports whether on-hand stock is at or below the reorder point.
func (p *Product) NeedsReorder(onHand types.Quantity) bool {
	return onHand <= p.ReorderPoint
}
