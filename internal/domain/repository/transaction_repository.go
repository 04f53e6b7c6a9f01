package repository

import (
	"time"

	"github.com/jhoicas/caixa-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para Transaction.
type TransactionRepository interface {
	Create(txn *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	// GetActiveByInstallment devuelve la transacción no cancelada ligada a la
	// parcela, o (nil, nil) si no existe.
	GetActiveByInstallment(installmentID string) (*entity.Transaction, error)
	// List devuelve transacciones ordenadas de la más reciente a la más
	// antigua; from/to en nil significan "sin límite".
	List(from, to *time.Time) ([]*entity.Transaction, error)
	// MarkCancelled cancela la transacción solo si aún no lo está.
	// Devuelve false si ya estaba cancelada.
	MarkCancelled(id, cancelledBy string, cancelledAt time.Time) (bool, error)
}
