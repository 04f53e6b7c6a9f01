package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest alta de movimiento de caixa (entrada o saida).
type CreateTransactionRequest struct {
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	PaymentMethod string          `json:"payment_method"`
	ProductID     string          `json:"product_id,omitempty"`
	ClientID      string          `json:"client_id,omitempty"`
}

// TransactionResponse representación pública de una transacción.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"payment_method"`
	ProductID     string          `json:"product_id,omitempty"`
	ClientID      string          `json:"client_id,omitempty"`
	InstallmentID string          `json:"installment_id,omitempty"`
	UserID        string          `json:"user_id"`
	Cancelled     bool            `json:"cancelled"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionSummaryResponse resumen agregado de movimientos.
type TransactionSummaryResponse struct {
	TotalEntrada      decimal.Decimal `json:"total_entrada"`
	TotalSaida        decimal.Decimal `json:"total_saida"`
	Saldo             decimal.Decimal `json:"saldo"`
	TotalTransactions int             `json:"total_transactions"`
}
