package warehouse

import (
	"context"

	"stockmaster/internal/core/refgen"
	"stockmaster/internal/core/tx"
	"stockmaster/internal/domain"
)

// Service provides business logic for the Warehouse catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Warehouse] // Embedded for delegation
	repo Repository
}

// NewService creates a new Warehouse service.
func NewService(
	repo Repository,
	txManager tx.Manager,
	refGenerator refgen.Generator,
) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Warehouse]{
		Repo:       repo,
		TxManager:  txManager,
		RefGen:     refGenerator,
		EntityName: "warehouse",
		CodePrefix: "WH",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareDefault)
	base.Hooks().OnBeforeUpdate(svc.prepareDefault)

	return svc
}

// prepareDefault keeps a single default warehouse.
func (s *Service) prepareDefault(ctx context.Context, wh *Warehouse) error {
	if wh.IsDefault {
		return s.repo.ClearDefault(ctx)
	}
	return nil
}
