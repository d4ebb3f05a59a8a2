package repository

import "github.com/amanahtour/gudang-api/internal/domain/entity"

// WarehouseRepository port persistensi lokasi gudang.
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
	// List mengembalikan gudang untuk dropdown; hanya yang aktif bila skema
	// punya kolom is_active (lihat SchemaCapabilities).
	List() ([]*entity.Warehouse, error)
}
