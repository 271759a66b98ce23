package product

import (
	"context"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/refgen"
	"stockmaster/internal/core/tx"
	"stockmaster/internal/domain"
)

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo Repository
}

// NewService creates a new Product service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	refGenerator refgen.Generator,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		RefGen:     refGenerator,
		EntityName: "product",
		CodePrefix: "PRD",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkUniqueness)
	base.Hooks().OnBeforeUpdate(svc.checkUniqueness)

	return svc
}

// checkUniqueness rejects duplicate SKUs and barcodes.
func (s *Service) checkUniqueness(ctx context.Context, item *Product) error {
	if item.SKU != "" {
		if exists, _ := s.checkSKUExists(ctx, item.SKU, item.ID); exists {
			return apperror.NewDuplicate("product", "sku", item.SKU)
		}
	}

	if item.Barcode != nil && *item.Barcode != "" {
		if exists, _ := s.checkBarcodeExists(ctx, *item.Barcode, item.ID); exists {
			return apperror.NewDuplicate("product", "barcode", *item.Barcode)
		}
	}

	return nil
}

// --- Entity-specific methods ---

// FindBelowReorderPoint retrieves products needing replenishment.
func (s *Service) FindBelowReorderPoint(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.FindBelowReorderPoint(ctx, filter)
}

// FindBySKU retrieves a product by SKU.
func (s *Service) FindBySKU(ctx context.Context, sku string) (*Product, error) {
	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", sku)
		}
		return nil, err
	}
	return p, nil
}

// FindByBarcode retrieves a product by barcode.
func (s *Service) FindByBarcode(ctx context.Context, barcode string) (*Product, error) {
	return s.repo.FindByBarcode(ctx, barcode)
}

// checkSKUExists checks if the SKU is already used by another product.
func (s *Service) checkSKUExists(ctx context.Context, sku string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}

// checkBarcodeExists checks if the barcode is already used.
func (s *Service) checkBarcodeExists(ctx context.Context, barcode string, excludeID id.ID) (bool, error) {
	existing, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		return false, nil
	}
	return existing.ID != excludeID, nil
}
