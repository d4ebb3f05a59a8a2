package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status stok hasil klasifikasi reporting accessor.
const (
	StockStatusLow    = "low"
	StockStatusMedium = "medium"
	StockStatusGood   = "good"
)

// StockSummaryRow adalah satu baris ringkasan stok per (barang, gudang)
// untuk dashboard. Status diisi oleh use case reporting, bukan oleh query.
type StockSummaryRow struct {
	ItemID        string          `json:"item_id"`
	ItemCode      string          `json:"item_code"`
	ItemName      string          `json:"item_name"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"current_stock"`
	MinimumStock  decimal.Decimal `json:"min_stock"`
	Status        string          `json:"stock_status"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
