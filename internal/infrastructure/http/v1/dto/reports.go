package dto

import (
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/domain/reports"
)

// Report responses are served straight from the domain report structs,
// which already carry JSON tags. Only the query-string requests live here.

// --- Stock Balance Report ---

// StockBalanceReportRequest represents query parameters for the stock balance report.
type StockBalanceReportRequest struct {
	WarehouseIDs []string `form:"warehouseId"`
	ProductIDs   []string `form:"productId"`
	Category     string   `form:"category"`
	Location     string   `form:"location"`
	ExcludeZero  bool     `form:"excludeZero"`
	Limit        int      `form:"limit"`
	Offset       int      `form:"offset"`
}

// ToFilter converts the request to a domain filter.
func (r *StockBalanceReportRequest) ToFilter() (reports.StockBalanceReportFilter, error) {
	warehouseIDs, err := parseIDList(r.WarehouseIDs, "warehouseId")
	if err != nil {
		return reports.StockBalanceReportFilter{}, err
	}
	productIDs, err := parseIDList(r.ProductIDs, "productId")
	if err != nil {
		return reports.StockBalanceReportFilter{}, err
	}

	return reports.StockBalanceReportFilter{
		WarehouseIDs: warehouseIDs,
		ProductIDs:   productIDs,
		Category:     r.Category,
		Location:     r.Location,
		ExcludeZero:  r.ExcludeZero,
		Limit:        r.Limit,
		Offset:       r.Offset,
	}, nil
}

// --- Stock Turnover Report ---

// StockTurnoverReportRequest represents query parameters for the turnover report.
// The period bounds are required; ToDate is exclusive.
type StockTurnoverReportRequest struct {
	FromDate     time.Time `form:"fromDate" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	ToDate       time.Time `form:"toDate" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	WarehouseIDs []string  `form:"warehouseId"`
	ProductIDs   []string  `form:"productId"`
	Limit        int       `form:"limit"`
	Offset       int       `form:"offset"`
}

// ToFilter converts the request to a domain filter.
func (r *StockTurnoverReportRequest) ToFilter() (reports.StockTurnoverReportFilter, error) {
	warehouseIDs, err := parseIDList(r.WarehouseIDs, "warehouseId")
	if err != nil {
		return reports.StockTurnoverReportFilter{}, err
	}
	productIDs, err := parseIDList(r.ProductIDs, "productId")
	if err != nil {
		return reports.StockTurnoverReportFilter{}, err
	}

	return reports.StockTurnoverReportFilter{
		FromDate:     r.FromDate,
		ToDate:       r.ToDate,
		WarehouseIDs: warehouseIDs,
		ProductIDs:   productIDs,
		Limit:        r.Limit,
		Offset:       r.Offset,
	}, nil
}

// --- Document Journal ---

// DocumentJournalRequest represents query parameters for the document journal.
type DocumentJournalRequest struct {
	FromDate      *time.Time `form:"fromDate" time_format:"2006-01-02T15:04:05Z07:00"`
	ToDate        *time.Time `form:"toDate" time_format:"2006-01-02T15:04:05Z07:00"`
	DocumentTypes []string   `form:"documentType"`
	Statuses      []string   `form:"status"`
	Reference     string     `form:"reference"`
	WarehouseIDs  []string   `form:"warehouseId"`
	SortBy        string     `form:"sortBy"`
	SortOrder     string     `form:"sortOrder"`
	Limit         int        `form:"limit"`
	Offset        int        `form:"offset"`
}

// ToFilter converts the request to a domain filter.
func (r *DocumentJournalRequest) ToFilter() (reports.DocumentJournalFilter, error) {
	warehouseIDs, err := parseIDList(r.WarehouseIDs, "warehouseId")
	if err != nil {
		return reports.DocumentJournalFilter{}, err
	}

	var docTypes []entity.MoveType
	for _, t := range r.DocumentTypes {
		mt := entity.MoveType(t)
		if !mt.IsValid() {
			return reports.DocumentJournalFilter{}, apperror.NewValidation("invalid documentType").
				WithDetail("documentType", t)
		}
		docTypes = append(docTypes, mt)
	}

	var statuses []entity.DocumentStatus
	for _, s := range r.Statuses {
		st := entity.DocumentStatus(s)
		if !st.IsValid() {
			return reports.DocumentJournalFilter{}, apperror.NewValidation("invalid status").
				WithDetail("status", s)
		}
		statuses = append(statuses, st)
	}

	return reports.DocumentJournalFilter{
		FromDate:          r.FromDate,
		ToDate:            r.ToDate,
		DocumentTypes:     docTypes,
		Statuses:          statuses,
		ReferenceContains: r.Reference,
		WarehouseIDs:      warehouseIDs,
		SortBy:            r.SortBy,
		SortOrder:         r.SortOrder,
		Limit:             r.Limit,
		Offset:            r.Offset,
	}, nil
}

func parseIDList(values []string, field string) ([]id.ID, error) {
	if len(values) == 0 {
		return nil, nil
	}

	ids := make([]id.ID, 0, len(values))
	for _, v := range values {
		parsed, err := id.Parse(v)
		if err != nil {
			return nil, apperror.NewValidation("invalid " + field + " format").
				WithDetail(field, v)
		}
		ids = append(ids, parsed)
	}
	return ids, nil
}
