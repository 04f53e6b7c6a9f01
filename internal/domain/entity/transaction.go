package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción.
const (
	TransactionEntrada          = "entrada"
	TransactionSaida            = "saida"
	TransactionPagamentoCliente = "pagamento_cliente"
)

// Métodos de pago.
const (
	MethodDinheiro = "dinheiro"
	MethodCartao   = "cartao"
	MethodPix      = "pix"
	MethodBoleto   = "boleto"
)

// ValidMethod indica si method es un método de pago conocido.
func ValidMethod(method string) bool {
	switch method {
	case MethodDinheiro, MethodCartao, MethodPix, MethodBoleto:
		return true
	}
	return false
}

// SaidaMethodAllowed indica si el método es aceptable para una salida.
// El dinero que sale del negocio solo admite liquidación inmediata
// (dinheiro o pix); cartao y boleto difieren el pago.
func SaidaMethodAllowed(method string) bool {
	return method == MethodDinheiro || method == MethodPix
}

// Transaction representa un movimiento del caixa.
// pagamento_cliente es una entrada especializada ligada a una parcela;
// su cancelación revierte la parcela a pendiente.
type Transaction struct {
	ID            string
	Type          string
	Amount        decimal.Decimal
	Description   string
	PaymentMethod string
	ProductID     string // opcional
	ClientID      string // opcional
	InstallmentID string // opcional; presente en pagamento_cliente
	UserID        string
	Cancelled     bool
	CancelledBy   string
	CancelledAt   *time.Time
	CreatedAt     time.Time
}
