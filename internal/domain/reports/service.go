package reports

import (
	"context"
	"fmt"
	"time"

	"stockmaster/pkg/logger"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetStockBalance generates the current stock balance report.
func (s *Service) GetStockBalance(ctx context.Context, filter StockBalanceReportFilter) (*StockBalanceReport, error) {
	// Set default pagination
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetStockBalanceReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get stock balance report: %w", err)
	}

	return report, nil
}

// GetStockTurnover generates an inbound/outbound turnover report for a period.
func (s *Service) GetStockTurnover(ctx context.Context, filter StockTurnoverReportFilter) (*StockTurnoverReport, error) {
	// Validate required dates
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, fmt.Errorf("fromDate and toDate are required")
	}

	if filter.FromDate.After(filter.ToDate) {
		return nil, fmt.Errorf("fromDate must be before toDate")
	}

	// Set default pagination
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetStockTurnoverReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get stock turnover report: %w", err)
	}

	return report, nil
}

// GetDocumentJournal returns the cross-type document journal.
func (s *Service) GetDocumentJournal(ctx context.Context, filter DocumentJournalFilter) (*DocumentJournal, error) {
	// Set default pagination
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	// Default sort
	if filter.SortBy == "" {
		filter.SortBy = "date"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}

	journal, err := s.repo.GetDocumentJournal(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get document journal: %w", err)
	}

	// Summary only for the first page
	if filter.Offset == 0 {
		summary, err := s.repo.GetDocumentTypeSummary(ctx, filter)
		if err == nil {
			journal.Summary = summary
		}
	}

	return journal, nil
}

// GetDashboard assembles the overview aggregates. Partial failures degrade
// the dashboard instead of failing it.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	dashboard := &Dashboard{GeneratedAt: time.Now().UTC()}

	var err error
	if dashboard.TotalProducts, err = s.repo.CountProducts(ctx); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if dashboard.TotalWarehouses, err = s.repo.CountWarehouses(ctx); err != nil {
		return nil, fmt.Errorf("count warehouses: %w", err)
	}
	if dashboard.BelowReorderPoint, err = s.repo.CountBelowReorderPoint(ctx); err != nil {
		return nil, fmt.Errorf("count below reorder point: %w", err)
	}
	if dashboard.TotalOnHand, err = s.repo.GetTotalOnHand(ctx); err != nil {
		return nil, fmt.Errorf("total on hand: %w", err)
	}

	summary, err := s.repo.GetDocumentTypeSummary(ctx, DocumentJournalFilter{})
	if err != nil {
		logger.Warn(ctx, "dashboard document summary failed", "error", err)
	} else {
		dashboard.OpenDocuments = summary
	}

	moves, err := s.repo.GetRecentMoves(ctx, 10)
	if err != nil {
		logger.Warn(ctx, "dashboard recent moves failed", "error", err)
	} else {
		dashboard.RecentMoves = moves
	}

	return dashboard, nil
}
