package reports

import (
	"context"

	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/types"
)

// Repository defines report data access interface.
type Repository interface {
	// Stock reports
	GetStockBalanceReport(ctx context.Context, filter StockBalanceReportFilter) (*StockBalanceReport, error)
	GetStockTurnoverReport(ctx context.Context, filter StockTurnoverReportFilter) (*StockTurnoverReport, error)

	// Document journal
	GetDocumentJournal(ctx context.Context, filter DocumentJournalFilter) (*DocumentJournal, error)
	GetDocumentTypeSummary(ctx context.Context, filter DocumentJournalFilter) ([]DocumentTypeSummary, error)

	// Dashboard aggregates
	CountProducts(ctx context.Context) (int, error)
	CountWarehouses(ctx context.Context) (int, error)
	CountBelowReorderPoint(ctx context.Context) (int, error)
	GetTotalOnHand(ctx context.Context) (types.Quantity, error)
	GetRecentMoves(ctx context.Context, limit int) ([]entity.StockMove, error)
}
