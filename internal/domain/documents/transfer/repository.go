package transfer

import (
	"context"
	"time"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
)

// Repository defines operations for transfer documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Transfer) error
	GetByID(ctx context.Context, docID id.ID) (*Transfer, error)
	GetByReference(ctx context.Context, reference string) (*Transfer, error)
	Update(ctx context.Context, doc *Transfer) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Transfer], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Transfer, error)
}

// ListFilter for filtering transfers.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	Status          *entity.DocumentStatus
	FromWarehouseID *id.ID
	ToWarehouseID   *id.ID
	DateFrom        *time.Time
	DateTo          *time.Time
}
