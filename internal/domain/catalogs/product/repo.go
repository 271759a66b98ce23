package product

import (
	"context"

	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindBySKU retrieves a product by SKU.
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByBarcode retrieves a product by barcode.
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// GetForUpdate retrieves a product with row lock.
	GetForUpdate(ctx context.Context, id id.ID) (*Product, error)

	// FindBelowReorderPoint retrieves products whose total stock is at or
	// below their reorder point.
	FindBelowReorderPoint(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)
}
