package billing

import (
	"fmt"
	"time"

	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
)

// CancelBill cancela una conta y, en cascada, todas sus parcelas (también las
// pagas). El marcado de la conta es un update condicional: dos cancelaciones
// simultáneas no pueden pasar ambas.
func (uc *UseCase) CancelBill(actor *entity.User, billID string) error {
	bill, err := uc.bills.GetByID(billID)
	if err != nil {
		return err
	}
	if bill == nil {
		return fmt.Errorf("%w: conta no encontrada", domain.ErrNotFound)
	}

	now := time.Now()
	var cascaded int
	err = uc.runner.RunBilling(func(tx Tx) error {
		ok, err := tx.Bills().MarkCancelled(billID, actor.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: la conta ya está cancelada", domain.ErrBusinessRule)
		}
		cascaded, err = tx.Installments().CancelByBill(billID, actor.ID, now)
		return err
	})
	if err != nil {
		return err
	}

	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityBillCancelled,
		fmt.Sprintf("conta %s cancelada com %d parcelas", billID, cascaded),
		map[string]any{"bill_id": billID, "installments_cancelled": cascaded})
	return nil
}
