package documents

import (
	"context"
	"fmt"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/catalogs/warehouse"
)

// LocationResolver determines the bin a document line operates on when the
// line does not name one explicitly.
type LocationResolver struct {
	warehouses warehouse.Repository
}

// NewLocationResolver creates a new LocationResolver.
func NewLocationResolver(warehouses warehouse.Repository) *LocationResolver {
	return &LocationResolver{warehouses: warehouses}
}

// ResolveForLine determines the location for a document line based on
// explicit input or the warehouse default.
func (r *LocationResolver) ResolveForLine(
	ctx context.Context,
	explicitLocation string,
	warehouseID id.ID,
) (string, error) {
	// 1. Explicit location on the line
	if explicitLocation != "" {
		return explicitLocation, nil
	}

	// 2. Warehouse default bin
	if !id.IsNil(warehouseID) {
		wh, err := r.warehouses.GetByID(ctx, warehouseID)
		if err == nil && wh != nil && wh.DefaultLocation != "" {
			return wh.DefaultLocation, nil
		}
	}

	return "", fmt.Errorf("no location for line and warehouse has no default")
}
