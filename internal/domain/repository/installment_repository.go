package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caixa-api/internal/domain/entity"
)

// PendingInstallmentRow es la vista de una parcela pendiente enriquecida con
// el contexto de su conta padre (cliente y producto).
type PendingInstallmentRow struct {
	Installment entity.Installment
	BillID      string
	Description string
	ClientID    string
	ClientName  string
	ProductID   string
	ProductName string
}

// PendingFilter filtros del listado global de parcelas pendientes.
// Los punteros en nil significan "sin filtro"; ClientName se aplica en la
// capa de aplicación (búsqueda insensible a acentos).
type PendingFilter struct {
	OverdueOnly bool
	Month       *int // 1-12, sobre el vencimiento
	Year        *int
}

// InstallmentRepository define el puerto de persistencia para Installment.
// Las transiciones de estado son updates condicionales: la precondición va
// en el WHERE y el caller decide por las filas afectadas, de modo que dos
// pagos simultáneos de la misma parcela no pueden pasar ambos.
type InstallmentRepository interface {
	Create(installment *entity.Installment) error
	GetByID(id string) (*entity.Installment, error)
	ListByBill(billID string) ([]*entity.Installment, error) // ordenadas por Number
	ListPendingByBill(billID string) ([]*entity.Installment, error)
	// MarkPaid pasa pending→paid. Devuelve false si la parcela no estaba pendiente.
	MarkPaid(id, paidBy, method string, paidAt time.Time) (bool, error)
	// RevertPayment pasa paid→pending limpiando los metadatos de pago.
	// Devuelve false si la parcela no estaba paga.
	RevertPayment(id string) (bool, error)
	// CancelByBill cancela todas las parcelas de la conta sin importar su
	// estado (incluidas las pagas). Devuelve cuántas cambiaron.
	CancelByBill(billID, cancelledBy string, cancelledAt time.Time) (int, error)
	// OldestPendingForClient devuelve la parcela pendiente más antigua (por
	// vencimiento) de contas no canceladas del cliente, opcionalmente
	// restringida a un producto. (nil, nil) si no hay ninguna.
	OldestPendingForClient(clientID, productID string) (*entity.Installment, error)
	ListPending(filter PendingFilter) ([]*PendingInstallmentRow, error)
	// SumPendingByBill suma los montos pendientes de una conta.
	SumPendingByBill(billID string) (decimal.Decimal, error)
}
