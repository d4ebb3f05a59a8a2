package repository

import "github.com/amanahtour/gudang-api/internal/domain/entity"

// TransferRepository port persistensi transfer antar gudang.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	UpdateStatus(id, status string) error
	List(limit, offset int) ([]*entity.Transfer, error)
}
