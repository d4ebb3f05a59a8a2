package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status transfer antar gudang. Transfer dibuat pending dan langsung
// ditandai completed di akhir transaksi yang sama; kegagalan di tengah
// membatalkan seluruh transaksi sehingga tidak ada row transfer tersisa.
const (
	TransferStatusPending   = "pending"
	TransferStatusCompleted = "completed"
)

// Transfer merepresentasikan perpindahan barang dari satu gudang ke gudang
// lain. Net perubahan stok global selalu nol; yang berubah hanya distribusi
// per gudang (dua movement: OUT di asal, IN di tujuan).
type Transfer struct {
	ID              string
	TransferNumber  string // format TRF-<unix millis>
	ItemID          string
	FromWarehouseID string
	ToWarehouseID   string
	Quantity        decimal.Decimal
	Status          string
	Notes           string
	RequestedBy     string
	CreatedAt       time.Time
}
