package repository

import "github.com/amanahtour/gudang-api/internal/domain/entity"

// IncomingRepository port persistensi record barang masuk.
type IncomingRepository interface {
	Create(receipt *entity.IncomingReceipt) error
	GetByID(id string) (*entity.IncomingReceipt, error)
	List(limit, offset int) ([]*entity.IncomingReceipt, error)
}
