package entity

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
)

// WarehouseAware is a trait for documents scoped to a single warehouse.
// Used for composition in Receipt, Delivery and Adjustment models.
type WarehouseAware struct {
	// WarehouseID is the warehouse all document lines operate in
	WarehouseID id.ID `db:"warehouse_id" json:"warehouseId"`
}

// ValidateWarehouse ensures a warehouse is set.
func (w *WarehouseAware) ValidateWarehouse(ctx context.Context) error {
	if id.IsNil(w.WarehouseID) {
		return apperror.NewValidation("warehouse is required").
			WithDetail("field", "warehouseId")
	}
	return nil
}

// GetWarehouseID returns the warehouse ID (useful for interfaces).
func (w *WarehouseAware) GetWarehouseID() id.ID {
	return w.WarehouseID
}

// IWarehouseAware is an interface for any document scoped to a warehouse.
type IWarehouseAware interface {
	GetWarehouseID() id.ID
	ValidateWarehouse(ctx context.Context) error
}
