package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto vendible.
// Stock nil significa sin control de existencias (ilimitado); con valor,
// cada venta lo decrementa. Active es el tombstone del soft delete: las
// cuentas y transacciones históricas conservan los datos capturados al
// momento de crearse y no cambian si el producto se edita o desactiva.
type Product struct {
	ID          string
	Code        string // único entre productos activos
	Name        string // único entre productos activos
	Description string
	Price       decimal.Decimal // > 0
	Stock       *int64          // nil = ilimitado
	Active      bool
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasStockControl indica si el producto maneja existencias.
func (p *Product) HasStockControl() bool { return p.Stock != nil }
