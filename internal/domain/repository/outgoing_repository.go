package repository

import "github.com/amanahtour/gudang-api/internal/domain/entity"

// OutgoingRepository port persistensi record barang keluar.
type OutgoingRepository interface {
	Create(issue *entity.OutgoingIssue) error
	GetByID(id string) (*entity.OutgoingIssue, error)
	List(limit, offset int) ([]*entity.OutgoingIssue, error)
}
