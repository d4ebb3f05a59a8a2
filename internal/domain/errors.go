package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error domain (tanpa dependensi eksternal).
var (
	ErrNotFound          = errors.New("data tidak ditemukan")
	ErrUserNotFound      = errors.New("user tidak ditemukan")
	ErrInvalidInput      = errors.New("input tidak valid")
	ErrDuplicate         = errors.New("data sudah ada")
	ErrUnauthorized      = errors.New("tidak terautentikasi")
	ErrInsufficientStock = errors.New("stock tidak mencukupi")
)

// InsufficientStockError dikembalikan saat stok gudang tidak cukup untuk
// transaksi keluar atau transfer. Membawa stok tersedia dan jumlah yang
// diminta supaya caller bisa menampilkan pesan yang jelas ke user.
type InsufficientStockError struct {
	ItemID      string
	WarehouseID string
	Available   decimal.Decimal
	Required    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Stock tidak mencukupi. Tersedia: %s, Dibutuhkan: %s", e.Available, e.Required)
}

// Unwrap supaya errors.Is(err, ErrInsufficientStock) tetap bekerja.
func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
