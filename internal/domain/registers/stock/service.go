// Package stock provides the stock ledger service and level projector.
package stock

import (
	"context"
	"fmt"
	"time"

	"stockmaster/internal/core/apperror"
	"stockmaster/internal/core/entity"
	"stockmaster/internal/core/id"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain"
	"stockmaster/pkg/logger"
)

// Service provides business operations for the stock ledger.
// Transactions are managed by the caller (validation engine).
type Service struct {
	repo Repository
}

// NewService creates a new stock ledger service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Append writes ledger entries produced by a document validation.
// Called within the validation transaction, after Apply has succeeded.
func (s *Service) Append(ctx context.Context, entries []entity.StockMove) error {
	if len(entries) == 0 {
		return nil
	}

	// Validate entries
	for i, e := range entries {
		if id.IsNil(e.DocumentID) {
			return apperror.NewValidation(fmt.Sprintf("entry %d: document_id is required", i))
		}
		if e.Reference == "" {
			return apperror.NewValidation(fmt.Sprintf("entry %d: reference is required", i))
		}
		if e.ToLocation == "" {
			return apperror.NewValidation(fmt.Sprintf("entry %d: to_location is required", i))
		}
	}

	if err := s.repo.AppendEntries(ctx, entries); err != nil {
		return fmt.Errorf("append entries: %w", err)
	}

	logger.Info(ctx, "appended ledger entries",
		"count", len(entries),
		"document_id", entries[0].DocumentID,
		"reference", entries[0].Reference,
	)

	return nil
}

type levelKey struct {
	warehouseID id.ID
	productID   id.ID
	location    string
}

type levelDelta struct {
	key   levelKey
	sku   string
	delta types.Quantity
}

// Apply projects ledger entries onto the cached stock levels.
// Called within the validation transaction BEFORE the entries are appended:
// a shortage anywhere fails the whole validation and nothing is written.
//
// A positive entry adds at its destination; a negative entry subtracts at
// its source (or destination when no source is set). The OUT sink never
// accumulates stock.
func (s *Service) Apply(ctx context.Context, entries []entity.StockMove) error {
	deltas := collectDeltas(entries)

	now := time.Now().UTC()
	for _, d := range deltas {
		level, err := s.repo.GetLevelForUpdate(ctx, d.key.warehouseID, d.key.productID, d.key.location)
		if err != nil {
			return fmt.Errorf("get level for %s at %s: %w", d.key.productID, d.key.location, err)
		}

		newQty := level.Quantity.Add(d.delta)
		if newQty.IsNegative() {
			return apperror.NewInsufficientStock(
				d.sku,
				d.delta.Neg().Float64(),
				level.Quantity.Float64(),
			).
				WithDetail("warehouse_id", d.key.warehouseID.String()).
				WithDetail("location", d.key.location)
		}

		level.WarehouseID = d.key.warehouseID
		level.ProductID = d.key.productID
		level.Location = d.key.location
		level.Quantity = newQty
		level.LastMovementAt = now
		level.UpdatedAt = now

		if err := s.repo.UpsertLevel(ctx, level); err != nil {
			return fmt.Errorf("upsert level for %s at %s: %w", d.key.productID, d.key.location, err)
		}
	}

	return nil
}

// collectDeltas folds entries into one delta per (warehouse, product, location),
// preserving first-seen order. Entries touching only the OUT sink are skipped.
func collectDeltas(entries []entity.StockMove) []levelDelta {
	index := make(map[levelKey]int, len(entries))
	deltas := make([]levelDelta, 0, len(entries))

	for i := range entries {
		e := &entries[i]
		if e.Quantity.IsZero() {
			continue
		}
		location := e.EffectiveLocation()
		if location == entity.LocationOut {
			continue
		}

		key := levelKey{
			warehouseID: e.WarehouseID,
			productID:   e.ProductID,
			location:    location,
		}
		if idx, ok := index[key]; ok {
			deltas[idx].delta = deltas[idx].delta.Add(e.Quantity)
			continue
		}
		index[key] = len(deltas)
		deltas = append(deltas, levelDelta{key: key, sku: e.ProductSKU, delta: e.Quantity})
	}

	return deltas
}

// ListLedger retrieves ledger entries with filtering, in insertion order.
func (s *Service) ListLedger(ctx context.Context, filter LedgerFilter) (domain.ListResult[entity.StockMove], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.ListEntries(ctx, filter)
}

// GetEntriesByDocument retrieves all entries written for a document.
func (s *Service) GetEntriesByDocument(ctx context.Context, documentID id.ID) ([]entity.StockMove, error) {
	return s.repo.GetEntriesByDocument(ctx, documentID)
}

// GetProductAvailability returns on-hand quantity across all warehouses.
func (s *Service) GetProductAvailability(ctx context.Context, productID id.ID) (types.Quantity, error) {
	levels, err := s.repo.GetLevelsByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("get levels: %w", err)
	}

	var total types.Quantity
	for _, l := range levels {
		total += l.Quantity
	}

	return total, nil
}

// GetProductLevels returns per-location levels for a product.
func (s *Service) GetProductLevels(ctx context.Context, productID id.ID) ([]entity.StockLevel, error) {
	return s.repo.GetLevelsByProduct(ctx, productID)
}

// GetWarehouseStock returns all products with stock in a warehouse.
func (s *Service) GetWarehouseStock(ctx context.Context, warehouseID id.ID) ([]entity.StockLevel, error) {
	return s.repo.GetLevelsByWarehouse(ctx, warehouseID, LevelFilter{
		ExcludeZero: true,
	})
}

// GetSystemQuantity returns the cached quantity for one bin.
// Used by adjustments to snapshot the book quantity.
func (s *Service) GetSystemQuantity(ctx context.Context, warehouseID, productID id.ID, location string) (types.Quantity, error) {
	level, err := s.repo.GetLevel(ctx, warehouseID, productID, location)
	if err != nil {
		return 0, err
	}
	return level.Quantity, nil
}

// GetTurnover generates inbound/outbound totals for a period.
func (s *Service) GetTurnover(ctx context.Context, filter TurnoverFilter) (Turnover, error) {
	return s.repo.GetTurnover(ctx, filter)
}

// RecalculateLevels rebuilds the level cache from the ledger, optionally
// scoped to one warehouse or product. The ledger stays untouched.
func (s *Service) RecalculateLevels(ctx context.Context, warehouseID, productID *id.ID) error {
	logger.Info(ctx, "recalculating stock levels from ledger")
	return s.repo.RecalculateLevels(ctx, warehouseID, productID)
}
