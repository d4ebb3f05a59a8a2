package repository

import "github.com/amanahtour/gudang-api/internal/domain/entity"

// UserRepository port persistensi user.
type UserRepository interface {
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
