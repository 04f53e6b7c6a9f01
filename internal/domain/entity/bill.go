package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una parcela. "Vencida" no es un estado persistido: se deriva en
// lectura (pendiente con vencimiento anterior a ahora).
const (
	InstallmentPending   = "pending"
	InstallmentPaid      = "paid"
	InstallmentCancelled = "cancelled"
)

// Bill representa una conta a cobrar dividida en parcelas.
// Invariante: la suma de las parcelas es igual a TotalAmount al centavo
// (la última parcela absorbe el resto del redondeo).
type Bill struct {
	ID               string
	ClientID         string
	ProductID        string // opcional; vacío cuando la conta no referencia producto
	Description      string
	TotalAmount      decimal.Decimal
	InstallmentCount int // >= 1
	InstallmentAmount decimal.Decimal
	Cancelled        bool
	CancelledBy      string
	CancelledAt      *time.Time
	CreatedBy        string
	CreatedAt        time.Time
}

// Installment representa una parcela de una conta.
// Transiciones permitidas: pending→paid, pending→cancelled (directa o por
// cancelación de la conta padre), paid→pending (solo reversión) y
// paid→cancelled (cascada de la conta padre).
type Installment struct {
	ID            string
	BillID        string
	Number        int // 1-based
	Amount        decimal.Decimal
	DueDate       time.Time // creación + 30×Number días
	Status        string
	PaidAt        *time.Time
	PaidBy        string
	PaymentMethod string
	CancelledBy   string
	CancelledAt   *time.Time
}

// Overdue indica si la parcela está vencida al momento now (derivado, nunca persistido).
func (i *Installment) Overdue(now time.Time) bool {
	return i.Status == InstallmentPending && i.DueDate.Before(now)
}
