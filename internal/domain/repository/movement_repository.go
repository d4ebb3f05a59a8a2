package repository

import (
	"github.com/shopspring/decimal"

	"github.com/amanahtour/gudang-api/internal/domain/entity"
)

// MovementRepository port persistensi ledger pergerakan stok (append-only).
type MovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// SumByItemAndWarehouse menjumlahkan quantity bertanda seluruh movement
	// untuk pasangan (barang, gudang). Inilah sumber kebenaran saldo per gudang.
	SumByItemAndWarehouse(itemID, warehouseID string) (decimal.Decimal, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.StockMovement, error)
}
