package repository

import (
	"github.com/shopspring/decimal"

	"github.com/amanahtour/gudang-api/internal/domain/entity"
)

// WarehouseStockRepository port untuk saldo stok per (barang, gudang).
// Dipakai di dalam transaksi untuk menjaga konsistensi.
//
// Kontrak: Get dan GetForUpdate tidak pernah mengembalikan nil untuk
// pasangan yang belum pernah bergerak; implementasi mengembalikan baris
// bersaldo nol. Caller boleh langsung membaca Quantity.
type WarehouseStockRepository interface {
	Get(itemID, warehouseID string) (*entity.WarehouseStock, error)
	// GetForUpdate mengunci baris stok (SELECT FOR UPDATE) supaya dua debit
	// bersamaan tidak lolos validasi dari snapshot yang sama.
	GetForUpdate(itemID, warehouseID string) (*entity.WarehouseStock, error)
	Upsert(stock *entity.WarehouseStock) error
	// SumByItem menjumlahkan saldo seluruh gudang untuk satu barang (stok global).
	SumByItem(itemID string) (decimal.Decimal, error)
	ListByItem(itemID string) ([]*entity.WarehouseStock, error)
}
