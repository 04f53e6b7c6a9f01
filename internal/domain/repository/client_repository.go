package repository

import "github.com/jhoicas/caixa-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByEmail(email string) (*entity.Client, error)
	GetByCPF(cpf string) (*entity.Client, error)
	List() ([]*entity.Client, error)
	Update(client *entity.Client) error
}
