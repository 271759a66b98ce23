package entity

import (
	"context"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/id"
)

// DocumentStatus is the lifecycle state of an operational document.
type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "draft"
	StatusWaiting  DocumentStatus = "waiting"
	StatusReady    DocumentStatus = "ready"
	StatusDone     DocumentStatus = "done"
	StatusCanceled DocumentStatus = "canceled"
)

// IsTerminal reports whether the status admits no further transitions.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// IsValid reports whether s is a known status value.
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCanceled:
		return true
	}
	return false
}

// statusRank orders the forward chain draft < waiting < ready < done.
func statusRank(s DocumentStatus) int {
	switch s {
	case StatusDraft:
		return 0
	case StatusWaiting:
		return 1
	case StatusReady:
		return 2
	case StatusDone:
		return 3
	}
	return -1
}

// CanTransitionTo reports whether s may move to next.
// The chain is forward-only; canceled is reachable from any non-terminal state.
func (s DocumentStatus) CanTransitionTo(next DocumentStatus) bool {
	if s.IsTerminal() || !next.IsValid() {
		return false
	}
	if next == StatusCanceled {
		return true
	}
	return statusRank(next) > statusRank(s)
}

// Document is the base type for operational documents:
// Receipt, Delivery, Transfer, Adjustment.
type Document struct {
	BaseDocument

	// Reference is the document reference (auto-generated, e.g. REC-000042)
	Reference string `db:"reference" json:"reference"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Status is the lifecycle state; ledger entries exist only for done documents
	Status DocumentStatus `db:"status" json:"status"`

	// Notes is an optional user comment
	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewDocument creates a new Document in draft with generated ID.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
		Status:       StatusDraft,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	if !d.Status.IsValid() {
		return apperror.NewValidation("unknown document status").
			WithDetail("status", string(d.Status))
	}
	return nil
}

// CanModify checks if document fields can still be edited.
// Done and canceled documents are immutable.
func (d *Document) CanModify() error {
	if d.Status.IsTerminal() {
		return apperror.NewInvalidState(d.ID.String(), string(d.Status), "update")
	}
	return nil
}

// SetStatus applies a lifecycle transition. Done is only reachable
// through validation, which uses MarkDone directly.
func (d *Document) SetStatus(next DocumentStatus) error {
	if next == StatusDone {
		return apperror.NewInvalidState(d.ID.String(), string(d.Status), string(next)).
			WithDetail("hint", "validate the document to complete it")
	}
	if !d.Status.CanTransitionTo(next) {
		return apperror.NewInvalidState(d.ID.String(), string(d.Status), string(next))
	}
	d.Status = next
	d.Touch()
	return nil
}

// MarkDone completes the document. Called by the validation engine
// after ledger entries are written.
func (d *Document) MarkDone() {
	d.Status = StatusDone
	d.Touch()
}

// MarkCanceled cancels a non-terminal document.
func (d *Document) MarkCanceled() error {
	if !d.Status.CanTransitionTo(StatusCanceled) {
		return apperror.NewInvalidState(d.ID.String(), string(d.Status), string(StatusCanceled))
	}
	d.Status = StatusCanceled
	d.Touch()
	return nil
}

// IsBackdated checks if document date is in the past.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}

// --- Validatable document interface default implementations ---
// Document-specific types only need GetDocumentType() and GenerateMoves().

// GetID returns the document ID.
func (d *Document) GetID() id.ID {
	return d.ID
}

// GetReference returns the document reference shared by its ledger entries.
func (d *Document) GetReference() string {
	return d.Reference
}

// GetStatus returns the current lifecycle state.
func (d *Document) GetStatus() DocumentStatus {
	return d.Status
}

// CanValidate checks if the document may be completed.
// Override in specific document types if additional checks are needed.
func (d *Document) CanValidate(ctx context.Context) error {
	if d.Status.IsTerminal() {
		return apperror.NewInvalidState(d.ID.String(), string(d.Status), string(StatusDone))
	}
	return d.Validate(ctx)
}
