package entity

import (
	"encoding/json"
	"time"
)

// Tipos de actividad registrados en el historial.
const (
	ActivityUserCreated          = "user_created"
	ActivityUserUpdated          = "user_updated"
	ActivityUserDeleted          = "user_deleted"
	ActivityPasswordChanged      = "password_changed"
	ActivityPasswordReset        = "password_reset"
	ActivityProductCreated       = "product_created"
	ActivityProductUpdated       = "product_updated"
	ActivityProductDeleted       = "product_deleted"
	ActivityClientCreated        = "client_created"
	ActivityClientUpdated        = "client_updated"
	ActivityBillCreated          = "bill_created"
	ActivityBillCancelled        = "bill_cancelled"
	ActivityInstallmentPaid      = "installment_paid"
	ActivityInstallmentsPaid     = "installments_paid"
	ActivityPaymentReverted      = "installment_payment_cancelled"
	ActivityClientPayment        = "client_payment"
	ActivityTransactionCreated   = "transaction_created"
	ActivityTransactionCancelled = "transaction_cancelled"
	ActivitySaleCreated          = "sale_created"
)

// ActivityLog es una entrada inmutable del historial de actividades.
// Se crea exactamente una por operación mutadora exitosa; nunca se
// actualiza ni se elimina.
type ActivityLog struct {
	ID          string
	UserID      string
	UserName    string
	Action      string
	Description string
	Details     json.RawMessage // payload estructurado opcional
	CreatedAt   time.Time
}
