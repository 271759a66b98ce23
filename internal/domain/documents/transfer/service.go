package transfer

import (
	"context"
	"fmt"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/refgen"
	"stockmaster/internal/core/tx"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/catalogs/warehouse"
	"stockmaster/internal/domain/validation"
	"stockmaster/pkg/logger"
)

// Service provides business operations for transfer documents.
type Service struct {
	repo       Repository
	warehouses warehouse.Repository
	engine     *validation.Engine
	refGen     refgen.Generator
	txManager  tx.Manager
	hooks      *domain.HookRegistry[*Transfer]
}

// NewService creates a new transfer service.
func NewService(
	repo Repository,
	warehouses warehouse.Repository,
	engine *validation.Engine,
	refGenerator refgen.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:       repo,
		warehouses: warehouses,
		engine:     engine,
		refGen:     refGenerator,
		txManager:  txManager,
		hooks:      domain.NewHookRegistry[*Transfer](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Transfer] {
	return s.hooks
}

// checkWarehouses verifies both warehouses exist and can move stock.
func (s *Service) checkWarehouses(ctx context.Context, doc *Transfer) error {
	for _, whID := range []id.ID{doc.FromWarehouseID, doc.ToWarehouseID} {
		wh, err := s.warehouses.GetByID(ctx, whID)
		if err != nil {
			return err
		}
		if !wh.CanMoveStock() {
			return apperror.NewValidation("warehouse cannot move stock").
				WithDetail("warehouse_id", whID.String()).
				WithDetail("warehouse", wh.Name)
		}
	}
	return nil
}

// Create creates a new transfer document.
func (s *Service) Create(ctx context.Context, doc *Transfer) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.checkWarehouses(ctx, doc); err != nil {
		return err
	}

	if doc.Reference == "" {
		reference, err := s.refGen.Next(ctx, refgen.PrefixTransfer)
		if err != nil {
			return fmt.Errorf("generate reference: %w", err)
		}
		doc.Reference = reference
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, doc); err != nil {
			return fmt.Errorf("create document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if err := s.hooks.RunAfterCreate(ctx, doc); err != nil {
		logger.Warn(ctx, "after-create hook failed", "error", err)
	}

	logger.Info(ctx, "transfer created",
		"id", doc.ID,
		"reference", doc.Reference)

	return nil
}

// GetByID retrieves a transfer with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Transfer, error) {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, docID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	doc.Lines = lines

	return doc, nil
}

// Update updates a transfer document that is not yet terminal.
func (s *Service) Update(ctx context.Context, doc *Transfer) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.checkWarehouses(ctx, doc); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, doc); err != nil {
			return fmt.Errorf("update document: %w", err)
		}

		if err := s.repo.SaveLines(ctx, doc.ID, doc.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}

		return nil
	})
}

// SetStatus applies a lifecycle transition and persists it.
func (s *Service) SetStatus(ctx context.Context, docID id.ID, next entity.DocumentStatus) (*Transfer, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	if err := doc.SetStatus(next); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	})
	if err != nil {
		return nil, err
	}

	return doc, nil
}

// Validate completes the transfer, writing both sides of every line.
// Fails with an insufficient stock error if any source bin is short.
func (s *Service) Validate(ctx context.Context, docID id.ID) (*Transfer, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	persist := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	if err := s.engine.Validate(ctx, doc, persist); err != nil {
		return nil, err
	}

	return doc, nil
}

// Cancel cancels the transfer without touching stock.
func (s *Service) Cancel(ctx context.Context, docID id.ID) (*Transfer, error) {
	doc, err := s.GetByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	persist := func(ctx context.Context) error {
		return s.repo.Update(ctx, doc)
	}

	if err := s.engine.CancelDocument(ctx, doc, persist); err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete removes a non-terminal transfer.
func (s *Service) Delete(ctx context.Context, docID id.ID) error {
	doc, err := s.repo.GetByID(ctx, docID)
	if err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	return s.repo.Delete(ctx, docID)
}

// List retrieves transfers with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transfer], error) {
	return s.repo.List(ctx, filter)
}
