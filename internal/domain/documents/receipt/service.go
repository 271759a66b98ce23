package receipt

import (
	"context"
	"fmt"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/refgen"
	"stockmaster/internal/core/tx"
	"stockmaster/internal/domain"
	"stockmaster/internal/domain/documents"
	"stockmaster/internal/domain/validation"
	"stockmaster/pkg/logger"
)

// Service provides business operations for receipt documents.
type Service struct {
	repo      Repository
	engine    *validation.Engine
	refGen    refgen.Generator
	resolver  *documents.LocationResolver
	txManager tx.Manager
	hooks     *domain.HookRegistry[*Receipt]
}

// NewService creates a new receipt service.
func NewService(
	repo Repository,
	engine *validation.Engine,
	refGenerator refgen.Generator,
	resolver *documents.LocationResolver,
	txManager tx.Manager,
) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		refGen:    refGenerator,
		resolver:  resolver,
		txManager: txManager,
		hooks:     domain.NewHookRegistry[*Receipt](),
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Receipt] {
	return s.hooks
}

// resolveLocations fills empty line locations from the warehouse default.
func (s *Service) resolveLocations(ctx context.Context, doc *Receipt) error {
	for i := range doc.Lines {
		if doc.Lines[i].Location != "" {
			continue
		}
		location, err := s.resolver.ResolveForLine(ctx, doc.Lines[i].Location, doc.WarehouseID)
		if err != nil {
			return fmt.Errorf("line %d: %w", doc.Lines[i].LineNo, err)
		}
		doc.Lines[i].Location = location
	}
	return nil
}

// Create creates a new receipt document.
func (s *Service) Create(ctx context.Context, doc *Receipt) error {
	if err := s.hooks.RunBeforeCreate(ctx, doc); err != nil {
		return err
	}

	if err := s.resolveLocations(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
		return err
	}

	// Generate reference if empty
	if doc.Reference == "" {
		reference, err := s.refGen.Next(ctx, refgen.PrefixReceipt)
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

	logger.Info(ctx, "receipt created",
		"id", doc.ID,
		"reference", doc.Reference)

	return nil
}

// GetByID retrieves a receipt with lines.
func (s *Service) GetByID(ctx context.Context, docID id.ID) (*Receipt, error) {
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

// Update updates a receipt document that is not yet terminal.
func (s *Service) Update(ctx context.Context, doc *Receipt) error {
	if err := s.hooks.RunBeforeUpdate(ctx, doc); err != nil {
		return err
	}

	if err := doc.CanModify(); err != nil {
		return err
	}

	if err := s.resolveLocations(ctx, doc); err != nil {
		return err
	}

	if err := doc.Validate(ctx); err != nil {
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
func (s *Service) SetStatus(ctx context.Context, docID id.ID, next entity.DocumentStatus) (*Receipt, error) {
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

// Validate completes the receipt and writes its ledger entries.
func (s *Service) Validate(ctx context.Context, docID id.ID) (*Receipt, error) {
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

// Cancel cancels the receipt without touching stock.
func (s *Service) Cancel(ctx context.Context, docID id.ID) (*Receipt, error) {
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

// Delete removes a draft receipt. Terminal documents are immutable.
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

// List retrieves receipts with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Receipt], error) {
	return s.repo.List(ctx, filter)
}
