package handlers

import (
	"stockmaster/internal/domain/catalogs/warehouse"
	"stockmaster/internal/infrastructure/http/v1/dto"
)

// WarehouseHandler serves the warehouse catalog over the generic CRUD set.
type WarehouseHandler = CatalogHandler[
	*warehouse.Warehouse,
	dto.CreateWarehouseRequest,
	dto.UpdateWarehouseRequest,
]

// NewWarehouseHandler creates the warehouse catalog handler.
func NewWarehouseHandler(
	base *BaseHandler,
	service *warehouse.Service,
) *WarehouseHandler {
	config := CatalogHandlerConfig[
		*warehouse.Warehouse,
		dto.CreateWarehouseRequest,
		dto.UpdateWarehouseRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "warehouse",

		MapCreateDTO: func(req dto.CreateWarehouseRequest) *warehouse.Warehouse {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateWarehouseRequest, existing *warehouse.Warehouse) *warehouse.Warehouse {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(wh *warehouse.Warehouse) any {
			return dto.FromWarehouse(wh)
		},
	}

	return NewCatalogHandler(base, config)
}
