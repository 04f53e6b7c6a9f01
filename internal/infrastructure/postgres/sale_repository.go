package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// Los nombres de producto, cliente y vendedor son snapshots persistidos con
// la venta, no joins.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, product_id, product_name, client_id, client_name, quantity, unit_price, total_value, payment_method, vendedor_id, vendedor_name, sale_date`

// Create persiste una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ProductID, sale.ProductName,
		nullable(sale.ClientID), sale.ClientName,
		sale.Quantity, sale.UnitPrice, sale.TotalValue, sale.PaymentMethod,
		sale.VendedorID, sale.VendedorName, sale.SaleDate,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByVendedor devuelve las ventas de un vendedor, más recientes primero.
func (r *SaleRepo) ListByVendedor(vendedorID string) ([]*entity.Sale, error) {
	return r.queryMany(
		`SELECT `+saleColumns+` FROM sales WHERE vendedor_id = $1 ORDER BY sale_date DESC`,
		vendedorID)
}

// List devuelve todas las ventas, más recientes primero.
func (r *SaleRepo) List() ([]*entity.Sale, error) {
	return r.queryMany(`SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC`)
}

func (r *SaleRepo) queryMany(query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var clientID *string
		if err := rows.Scan(
			&s.ID, &s.ProductID, &s.ProductName, &clientID, &s.ClientName,
			&s.Quantity, &s.UnitPrice, &s.TotalValue, &s.PaymentMethod,
			&s.VendedorID, &s.VendedorName, &s.SaleDate,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if clientID != nil {
			s.ClientID = *clientID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
