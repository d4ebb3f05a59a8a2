package repository

import "github.com/amanahtour/gudang-api/internal/domain/entity"

// SummaryFilter filter opsional untuk ringkasan stok.
type SummaryFilter struct {
	ItemID      string
	WarehouseID string
}

// SummaryRepository port baca untuk ringkasan stok (join warehouse_stock,
// items, warehouses). Read-only; klasifikasi status dilakukan use case.
type SummaryRepository interface {
	StockSummary(filter SummaryFilter) ([]*entity.StockSummaryRow, error)
}
