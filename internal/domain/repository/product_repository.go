package repository

import "github.com/jhoicas/caixa-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// Code y Name son únicos solo entre productos activos: un producto
// desactivado libera su código y su nombre.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetActiveByCode(code string) (*entity.Product, error)
	GetActiveByName(name string) (*entity.Product, error)
	ListActive() ([]*entity.Product, error)
	Update(product *entity.Product) error
	// DecrementStock descuenta qty solo si hay existencias suficientes
	// (update condicional). Devuelve false si el stock no alcanza.
	DecrementStock(id string, qty int64) (bool, error)
}
