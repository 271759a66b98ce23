// Package validation provides the document validation engine.
// Validating a document is the only way it reaches the done status and the
// only way ledger entries are written.
package validation

import (
	"context"
	"fmt"

	"stockmaster/internal/core/apperror"
	appctx "stockmaster/internal/core/context"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/tx"
	"stockmaster/pkg/logger"
)

// Document is implemented by validatable document types.
// entity.Document provides defaults for everything except GetMoveType
// and GenerateMoves.
type Document interface {
	GetID() id.ID
	GetReference() string
	GetStatus() entity.DocumentStatus
	GetMoveType() entity.MoveType

	// CanValidate checks document-specific completion rules
	CanValidate(ctx context.Context) error

	// GenerateMoves derives one signed ledger entry per document line
	GenerateMoves(ctx context.Context) ([]entity.StockMove, error)

	// MarkDone flips the document to its terminal done status
	MarkDone()
}

// Ledger is the stock register surface the engine drives.
// Implemented by registers/stock.Service.
type Ledger interface {
	// Apply projects entries onto cached levels; fails on any shortage
	Apply(ctx context.Context, entries []entity.StockMove) error

	// Append writes the immutable ledger entries
	Append(ctx context.Context, entries []entity.StockMove) error
}

// Engine validates documents: it derives ledger entries, updates stock
// levels, appends the entries and completes the document in one transaction.
type Engine struct {
	ledger    Ledger
	txManager tx.Manager
}

// NewEngine creates a validation engine.
func NewEngine(ledger Ledger, txManager tx.Manager) *Engine {
	return &Engine{
		ledger:    ledger,
		txManager: txManager,
	}
}

// Validate completes a document.
//
// Sequence inside one transaction:
//  1. derive entries from document lines
//  2. project them onto stock levels (locks rows; shortage aborts here,
//     before anything reaches the ledger)
//  3. append the ledger entries
//  4. mark the document done and persist it
//
// persist must save the document with an optimistic version check: of two
// concurrent validations the loser fails its update, the transaction rolls
// back, and its entries never existed.
func (e *Engine) Validate(ctx context.Context, doc Document, persist func(ctx context.Context) error) error {
	if doc.GetStatus().IsTerminal() {
		return apperror.NewInvalidState(
			doc.GetID().String(),
			string(doc.GetStatus()),
			string(entity.StatusDone),
		)
	}

	if err := doc.CanValidate(ctx); err != nil {
		return err
	}

	var entryCount int
	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		entries, err := doc.GenerateMoves(ctx)
		if err != nil {
			return fmt.Errorf("generate moves: %w", err)
		}

		userID := appctx.GetUserID(ctx)
		for i := range entries {
			entries[i].UserID = userID
		}

		if err := e.ledger.Apply(ctx, entries); err != nil {
			return err
		}

		if err := e.ledger.Append(ctx, entries); err != nil {
			return err
		}

		doc.MarkDone()
		if err := persist(ctx); err != nil {
			return fmt.Errorf("persist document: %w", err)
		}

		entryCount = len(entries)
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document validated",
		"id", doc.GetID(),
		"type", doc.GetMoveType(),
		"reference", doc.GetReference(),
		"entries", entryCount,
	)

	return nil
}

// Cancel moves a non-terminal document to canceled without touching stock.
type cancelable interface {
	MarkCanceled() error
}

// CancelDocument cancels a document and persists it in one transaction.
func (e *Engine) CancelDocument(ctx context.Context, doc Document, persist func(ctx context.Context) error) error {
	c, ok := doc.(cancelable)
	if !ok {
		return apperror.NewInternal(fmt.Errorf("document %T does not support cancel", doc))
	}
	if err := c.MarkCanceled(); err != nil {
		return err
	}

	err := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return persist(ctx)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document canceled",
		"id", doc.GetID(),
		"reference", doc.GetReference(),
	)

	return nil
}
