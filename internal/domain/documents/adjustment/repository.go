package adjustment

import (
	"context"
	"time"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain"
)

// Repository defines operations for adjustment documents.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, doc *Adjustment) error
	GetByID(ctx context.Context, docID id.ID) (*Adjustment, error)
	GetByReference(ctx context.Context, reference string) (*Adjustment, error)
	Update(ctx context.Context, doc *Adjustment) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Adjustment], error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Adjustment, error)
}

// ListFilter for filtering adjustments.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	Status      *entity.DocumentStatus
	WarehouseID *id.ID
	Reason      string
	DateFrom    *time.Time
	DateTo      *time.Time
}
