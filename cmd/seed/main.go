// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"stockmaster/internal/config"
	"stockmaster/internal/core/types"
	"stockmaster/internal/domain/catalogs/product"
	"stockmaster/internal/domain/catalogs/warehouse"
	"stockmaster/internal/domain/documents/adjustment"
	"stockmaster/internal/domain/registers/stock"
	"stockmaster/internal/domain/validation"
	"stockmaster/internal/infrastructure/refgen"
	"stockmaster/internal/infrastructure/storage/postgres"
	"stockmaster/internal/infrastructure/storage/postgres/catalog_repo"
	"stockmaster/internal/infrastructure/storage/postgres/document_repo"
	"stockmaster/internal/infrastructure/storage/postgres/register_repo"
	"stockmaster/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	withStock := flag.Bool("with-stock", false, "seed opening stock via an adjustment")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalw("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.Database.DSN))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)
	refGen := refgen.New(pool.Unwrap())

	warehouseRepo := catalog_repo.NewWarehouseRepo(txManager)
	warehouseService := warehouse.NewService(warehouseRepo, txManager, refGen)

	productRepo := catalog_repo.NewProductRepo(txManager)
	productService := product.NewService(productRepo, txManager, refGen)

	warehouses, err := seedWarehouses(ctx, warehouseService, log)
	if err != nil {
		log.Fatalw("failed to seed warehouses", "error", err)
	}

	products, err := seedProducts(ctx, productService, log)
	if err != nil {
		log.Fatalw("failed to seed products", "error", err)
	}

	if *withStock {
		stockRepo := register_repo.NewStockRepo(txManager)
		stockService := stock.NewService(stockRepo)
		engine := validation.NewEngine(stockService, txManager)

		adjustmentRepo := document_repo.NewAdjustmentRepo(txManager)
		adjustmentService := adjustment.NewService(adjustmentRepo, stockService, engine, refGen, txManager)

		if err := seedOpeningStock(ctx, adjustmentService, warehouses, products, log); err != nil {
			log.Fatalw("failed to seed opening stock", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func strPtr(s string) *string { return &s }

// seedWarehouses creates the demo sites, skipping codes that already exist.
func seedWarehouses(ctx context.Context, svc *warehouse.Service, log *logger.Logger) ([]*warehouse.Warehouse, error) {
	type seed struct {
		code            string
		name            string
		whType          warehouse.WarehouseType
		address         string
		isDefault       bool
		defaultLocation string
	}

	seeds := []seed{
		{"WH-000001", "Central Warehouse", warehouse.TypeMain, "12 Harbor Road, Rotterdam", true, "RECEIVING"},
		{"WH-000002", "Downtown Store", warehouse.TypeRetail, "4 Market Square, Rotterdam", false, "FLOOR"},
		{"WH-000003", "Transit Hub", warehouse.TypeTransit, "", false, "DOCK"},
	}

	result := make([]*warehouse.Warehouse, 0, len(seeds))
	for _, s := range seeds {
		existing, err := svc.GetByCode(ctx, s.code)
		if err == nil {
			log.Infow("warehouse already exists", "code", s.code)
			result = append(result, existing)
			continue
		}

		wh := warehouse.NewWarehouse(s.code, s.name, s.whType)
		wh.IsDefault = s.isDefault
		wh.DefaultLocation = s.defaultLocation
		if s.address != "" {
			wh.Address = strPtr(s.address)
		}

		if err := svc.Create(ctx, wh); err != nil {
			return nil, fmt.Errorf("create warehouse %s: %w", s.code, err)
		}
		log.Infow("warehouse created", "code", wh.Code, "name", wh.Name)
		result = append(result, wh)
	}

	return result, nil
}

// seedProducts creates the demo items, skipping SKUs that already exist.
func seedProducts(ctx context.Context, svc *product.Service, log *logger.Logger) ([]*product.Product, error) {
	type seed struct {
		sku          string
		name         string
		category     string
		uom          string
		barcode      string
		reorderPoint float64
	}

	seeds := []seed{
		{"PAP-A4-500", "Copy Paper A4 500 sheets", "office", "pack", "8711234500017", 20},
		{"PEN-BLU-10", "Ballpoint Pen Blue 10-pack", "office", "pack", "8711234500024", 15},
		{"STP-DESK", "Desktop Stapler", "office", "pcs", "8711234500031", 5},
		{"BOX-M", "Shipping Box Medium", "packaging", "pcs", "8711234500048", 50},
		{"TAPE-48", "Packing Tape 48mm", "packaging", "pcs", "8711234500055", 30},
		{"LBL-A6", "Label Roll A6", "packaging", "pcs", "", 10},
	}

	result := make([]*product.Product, 0, len(seeds))
	for _, s := range seeds {
		existing, err := svc.FindBySKU(ctx, s.sku)
		if err == nil {
			log.Infow("product already exists", "sku", s.sku)
			result = append(result, existing)
			continue
		}

		p := product.NewProduct(s.sku, s.name)
		p.Category = s.category
		p.UOM = s.uom
		p.ReorderPoint = types.NewQuantityFromFloat64(s.reorderPoint)
		p.ReorderQuantity = types.NewQuantityFromFloat64(s.reorderPoint * 2)
		if s.barcode != "" {
			p.Barcode = &s.barcode
		}

		if err := svc.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("create product %s: %w", s.sku, err)
		}
		log.Infow("product created", "sku", s.sku, "name", s.name)
		result = append(result, p)
	}

	return result, nil
}

// seedOpeningStock books opening quantities through a validated adjustment,
// so the ledger and level cache stay consistent with normal operation.
func seedOpeningStock(
	ctx context.Context,
	svc *adjustment.Service,
	warehouses []*warehouse.Warehouse,
	products []*product.Product,
	log *logger.Logger,
) error {
	if len(warehouses) == 0 || len(products) == 0 {
		return fmt.Errorf("no warehouses or products to stock")
	}

	central := warehouses[0]

	doc := adjustment.NewAdjustment(central.ID, "opening stock")
	for i, p := range products {
		counted := types.NewQuantityFromFloat64(float64(100 + i*25))
		doc.AddLine(p.ID, p.SKU, central.DefaultLocation, 0, counted)
	}

	if err := svc.Create(ctx, doc); err != nil {
		return fmt.Errorf("create opening adjustment: %w", err)
	}

	validated, err := svc.Validate(ctx, doc.ID)
	if err != nil {
		return fmt.Errorf("validate opening adjustment: %w", err)
	}

	log.Infow("opening stock booked",
		"reference", validated.Reference,
		"warehouse", central.Code,
		"lines", len(validated.Lines),
	)
	return nil
}
