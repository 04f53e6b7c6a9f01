package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta registrada por un vendedor.
// ProductName y ClientName son snapshots capturados al momento de la venta:
// no cambian si el producto o el cliente se editan después.
type Sale struct {
	ID            string
	ProductID     string
	ProductName   string
	ClientID      string // opcional
	ClientName    string
	Quantity      int64 // >= 1
	UnitPrice     decimal.Decimal
	TotalValue    decimal.Decimal
	PaymentMethod string
	VendedorID    string
	VendedorName  string
	SaleDate      time.Time
}
