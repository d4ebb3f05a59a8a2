package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipe pergerakan stok.
const (
	MovementTypeIN  = "IN"  // barang masuk
	MovementTypeOUT = "OUT" // barang keluar
)

// Reference type yang menghubungkan movement ke record bisnis asalnya.
const (
	ReferenceTypeIncoming = "incoming"
	ReferenceTypeOutgoing = "outgoing"
	ReferenceTypeTransfer = "transfer"
)

// StockMovement adalah entri ledger append-only: satu perubahan kuantitas
// bertanda untuk satu barang di satu gudang. Quantity disimpan bertanda
// (IN positif, OUT negatif) sehingga saldo per gudang = SUM(quantity).
// Setelah tertulis, movement tidak pernah diubah efek kuantitasnya.
type StockMovement struct {
	ID            string
	ItemID        string
	WarehouseID   string
	Type          string
	Quantity      decimal.Decimal
	ReferenceType string // incoming | outgoing | transfer
	ReferenceID   string
	Notes         string
	CreatedAt     time.Time
}
