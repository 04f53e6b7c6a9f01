package repository

import "github.com/jhoicas/caixa-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
// Los Get* devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
}
