package entity

import "time"

// Warehouse merepresentasikan lokasi gudang penyimpanan barang.
type Warehouse struct {
	ID        string
	Code      string // kode lokasi
	Name      string // nama lokasi
	BranchID  string // cabang pemilik, opsional
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
