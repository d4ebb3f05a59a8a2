package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseStock adalah saldo stok per pasangan (barang, gudang).
// Nilainya selalu hasil rekalkulasi dari log stock_movements, tidak pernah
// di-increment/decrement langsung, sehingga self-healing terhadap drift.
type WarehouseStock struct {
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
