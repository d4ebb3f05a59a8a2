package repository

import (
	"github.com/shopspring/decimal"

	"github.com/amanahtour/gudang-api/internal/domain/entity"
)

// ItemRepository port persistensi master barang.
// UpdateOnHand hanya boleh dipanggil ledger engine (hasil rekalkulasi global).
type ItemRepository interface {
	GetByID(id string) (*entity.Item, error)
	// GetForUpdate seperti GetByID tapi mengunci baris items (SELECT FOR
	// UPDATE) sampai akhir transaksi. Ledger engine memanggilnya di awal
	// setiap operasi tulis supaya seluruh mutasi satu barang terserialisasi
	// dan rekalkulasi dari log selalu melihat movement yang sudah commit.
	GetForUpdate(id string) (*entity.Item, error)
	List() ([]*entity.Item, error)
	// ListBelowMinimum mengembalikan barang dengan on-hand <= minimum (minimum > 0),
	// diurutkan dari rasio paling kritis. Dipakai monitor stok rendah.
	ListBelowMinimum() ([]*entity.Item, error)
	UpdateOnHand(id string, quantity decimal.Decimal) error
}
