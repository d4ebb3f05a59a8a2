package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amanahtour/gudang-api/internal/domain/repository"
)

// MasterHandler menyajikan data master (barang, gudang) untuk dropdown
// dan layar referensi. Read-only.
type MasterHandler struct {
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
}

// NewMasterHandler membangun handler data master.
func NewMasterHandler(itemRepo repository.ItemRepository, warehouseRepo repository.WarehouseRepository) *MasterHandler {
	return &MasterHandler{itemRepo: itemRepo, warehouseRepo: warehouseRepo}
}

// ListItems mengembalikan seluruh barang master.
func (h *MasterHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.itemRepo.List()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(items)
}

// ListWarehouses mengembalikan gudang aktif.
func (h *MasterHandler) ListWarehouses(c *fiber.Ctx) error {
	warehouses, err := h.warehouseRepo.List()
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(warehouses)
}
