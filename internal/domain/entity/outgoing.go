package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OutgoingIssue adalah record bisnis barang keluar (pengeluaran ke penerima
// atau tujuan, misalnya perlengkapan jamaah).
type OutgoingIssue struct {
	ID          string
	ItemID      string
	WarehouseID string
	Quantity    decimal.Decimal
	Recipient   string // penerima
	Destination string // tujuan
	IssuedAt    time.Time
	Notes       string
	CreatedAt   time.Time
}
