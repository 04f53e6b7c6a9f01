package repository

import "github.com/jhoicas/caixa-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para Sale.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	// ListByVendedor devuelve las ventas de un vendedor, más recientes primero.
	ListByVendedor(vendedorID string) ([]*entity.Sale, error)
	List() ([]*entity.Sale, error)
}
