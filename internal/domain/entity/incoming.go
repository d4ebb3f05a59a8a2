package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomingReceipt adalah record bisnis barang masuk (pembelian dari supplier).
// TotalPrice dihitung recorder: quantity x unit price.
type IncomingReceipt struct {
	ID          string
	SupplierID  string
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	InvoiceNo   string
	ReceivedAt  time.Time
	Notes       string
	CreatedAt   time.Time
}
