package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest registro de venta por un vendedor.
type CreateSaleRequest struct {
	ProductID     string `json:"product_id"`
	ClientID      string `json:"client_id,omitempty"`
	Quantity      int64  `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
}

// SaleResponse representación pública de una venta.
type SaleResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ClientID      string          `json:"client_id,omitempty"`
	ClientName    string          `json:"client_name,omitempty"`
	Quantity      int64           `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalValue    decimal.Decimal `json:"total_value"`
	PaymentMethod string          `json:"payment_method"`
	VendedorID    string          `json:"vendedor_id"`
	VendedorName  string          `json:"vendedor_name"`
	SaleDate      time.Time       `json:"sale_date"`
}

// MySalesResponse listado de ventas propias con totales.
type MySalesResponse struct {
	Sales        []SaleResponse  `json:"sales"`
	TotalSales   int             `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// VendedorPerformance totales por vendedor para el dashboard.
type VendedorPerformance struct {
	VendedorID   string          `json:"vendedor_id"`
	VendedorName string          `json:"vendedor_name"`
	TotalSales   int             `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// PerformanceDashboardResponse dashboard de desempeño de ventas.
type PerformanceDashboardResponse struct {
	Vendedores   []VendedorPerformance `json:"vendedores"`
	TotalSales   int                   `json:"total_sales"`
	TotalRevenue decimal.Decimal       `json:"total_revenue"`
}
