package repository

import (
	"time"

	"github.com/jhoicas/caixa-api/internal/domain/entity"
)

// BillRepository define el puerto de persistencia para Bill.
type BillRepository interface {
	Create(bill *entity.Bill) error
	GetByID(id string) (*entity.Bill, error)
	List() ([]*entity.Bill, error)
	ListByClient(clientID string) ([]*entity.Bill, error)
	// MarkCancelled marca la conta como cancelada solo si aún no lo está
	// (update condicional). Devuelve false si ya estaba cancelada.
	MarkCancelled(id, cancelledBy string, cancelledAt time.Time) (bool, error)
}
