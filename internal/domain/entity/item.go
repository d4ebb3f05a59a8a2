package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item merepresentasikan barang perlengkapan di master barang.
// OnHandQuantity adalah agregat denormalisasi (total semua gudang) dan hanya
// boleh diubah oleh ledger engine, bukan oleh CRUD master barang.
type Item struct {
	ID              string
	Code            string // kode barang, unik
	Name            string
	Unit            string // satuan: pcs, box, koli
	MinimumQuantity decimal.Decimal
	OnHandQuantity  decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
