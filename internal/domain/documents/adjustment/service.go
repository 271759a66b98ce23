package adjustment

import (
	"context"
	"fmt"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/refgen"
	"stockmaster/internal/core/tx"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/validation"
	"stockmaster/pkg/logger"
)

// BookQuantities reads the cached book quantity for a bin.
// Implemented by the stock register service.
type BookQuantities interface {
	GetSystemQuantity(ctx context.Context, warehouseID, productID id.ID, location string) (types.Quantity, error)
}

// Service provides business operations for adjustment documents.
type Service struct {
	repo      Repository
	stock     BookQuantities
	engine    *validation.Engine
	refGen    refgen.Generator
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Adjustment]
}

// NewService creates a new adjustment service.
func NewService(
	repo Repository,
	stock BookQuantities,
	engine *validation.Engine,
	refGenerator refgen.Generator,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		stock:     stock,
		engine:    engine,
		refGen:    refGenerator,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Adjustment](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Adjustment] {
	return s.hooks
}

// snapshotSystemQuantities fills each line's book quantity from the level
// cache and rederives the differences. Lines that already carry a snapshot
// keep it: the count compares against the quantity seen when counting
// started, not against later movements.
func (s *Service) snapshotSystemQuantities(ctx context.Context, doc *Adjustment) error {
	for i := range doc.Lines {
		line := &doc.Lines[i]
		if !line.SystemQty.IsZero() {
			continue
		}

		systemQty, err := s.stock.GetSystemQuantity(ctx, doc.WarehouseID, line.ProductID, line.Location)
		if err != nil {
			return fmt.Errorf("line %d: snapshot system quantity: %w", line.LineNo, err)
		}
		line.SystemQty = systemQty
		line.Difference = line.CountedQty.Sub(systemQty)
	}
	return nil
}

// Create creates a new adjustment document.
func (s *Service) Create(ctx context.Context, doc *Adjustment) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.snapshotSystemQuantities(ctx, doc); err != nil {
		return err
	}

	if doc.Reference == "" {
		reference, err := s.refGen.Next(ctx, refgen.PrefixAdjustment)
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

	logger.Info(ctx, "adjustment created",
		"id", doc.ID,
		"reference", doc.Reference,
		"reason", doc.Reason)

	return nil
}

// GetByID retrieves an adjustment with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Adjustment, error) {
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

// Update updates an adjustment document that is not yet terminal.
func (s *Service) Update(ctx context.Context, doc *Adjustment) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	if err := s.snapshotSystemQuantities(ctx, doc); err != nil {
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
func (s *Service) SetStatus(ctx context.Context, docID id.ID, next entity.DocumentStatus) (*Adjustment, error) {
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

// Validate completes the adjustment, writing one ledger entry per counted
// line. A negative difference larger than current stock fails the whole
// document.
func (s *Service) Validate(ctx context.Context, docID id.ID) (*Adjustment, error) {
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

// Cancel cancels the adjustment without touching stock.
func (s *Service) Cancel(ctx context.Context, docID id.ID) (*Adjustment, error) {
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

// Delete removes a non-terminal adjustment.
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

// List retrieves adjustments with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Adjustment], error) {
	return s.repo.List(ctx, filter)
}
