package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBillRequest alta de conta parcelada.
// Si ProductID está presente, el precio vigente del producto manda sobre
// TotalAmount; sin producto, TotalAmount es obligatorio.
type CreateBillRequest struct {
	ClientID         string           `json:"client_id"`
	ProductID        string           `json:"product_id,omitempty"`
	Description      string           `json:"description,omitempty"`
	TotalAmount      *decimal.Decimal `json:"total_amount,omitempty"`
	InstallmentCount int              `json:"installment_count"`
}

// BillResponse conta con sus parcelas.
type BillResponse struct {
	ID                string                `json:"id"`
	ClientID          string                `json:"client_id"`
	ClientName        string                `json:"client_name,omitempty"`
	ProductID         string                `json:"product_id,omitempty"`
	Description       string                `json:"description,omitempty"`
	TotalAmount       decimal.Decimal       `json:"total_amount"`
	InstallmentCount  int                   `json:"installment_count"`
	InstallmentAmount decimal.Decimal       `json:"installment_amount"`
	Cancelled         bool                  `json:"cancelled"`
	CreatedAt         time.Time             `json:"created_at"`
	Installments      []InstallmentResponse `json:"installments,omitempty"`
}

// InstallmentResponse parcela. Overdue se deriva en lectura, nunca se persiste.
type InstallmentResponse struct {
	ID            string          `json:"id"`
	BillID        string          `json:"bill_id"`
	Number        int             `json:"installment_number"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	Overdue       bool            `json:"overdue"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// PayInstallmentRequest pago de una parcela.
type PayInstallmentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// PayAllResponse resultado del pago en lote de una conta.
type PayAllResponse struct {
	BillID    string          `json:"bill_id"`
	PaidCount int             `json:"paid_count"`
	PaidTotal decimal.Decimal `json:"paid_total"`
}

// PendingInstallmentResponse fila del listado global de parcelas pendientes,
// enriquecida con el contexto de su conta.
type PendingInstallmentResponse struct {
	InstallmentResponse
	Description string `json:"description,omitempty"`
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name"`
	ProductID   string `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
}

// ClientPaymentRequest asignación de un pago de cliente a su parcela
// pendiente más antigua.
type ClientPaymentRequest struct {
	ClientID      string `json:"client_id"`
	ProductID     string `json:"product_id,omitempty"`
	PaymentMethod string `json:"payment_method"`
}

// ClientPaymentResponse resultado de la asignación.
type ClientPaymentResponse struct {
	TransactionID     string          `json:"transaction_id"`
	InstallmentID     string          `json:"installment_id"`
	InstallmentNumber int             `json:"installment_number"`
	Amount            decimal.Decimal `json:"amount"`
}

// ClientWithBillsResponse cliente con el total pendiente de sus contas.
type ClientWithBillsResponse struct {
	ClientResponse
	PendingBills int             `json:"pending_bills"`
	TotalPending decimal.Decimal `json:"total_pending"`
}
