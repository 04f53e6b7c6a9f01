package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
)

// PayInstallment paga una parcela pendiente y registra la entrada
// correspondiente en el caixa. La transición pending→paid es un update
// condicional: de dos pagos simultáneos solo uno pasa.
func (uc *UseCase) PayInstallment(actor *entity.User, installmentID string, in dto.PayInstallmentRequest) (*dto.InstallmentResponse, error) {
	if !entity.ValidMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago desconocido", domain.ErrInvalidInput)
	}
	installment, err := uc.installments.GetByID(installmentID)
	if err != nil {
		return nil, err
	}
	if installment == nil {
		return nil, fmt.Errorf("%w: parcela no encontrada", domain.ErrNotFound)
	}
	bill, err := uc.bills.GetByID(installment.BillID)
	if err != nil {
		return nil, err
	}
	if bill == nil || bill.Cancelled {
		return nil, fmt.Errorf("%w: la conta de la parcela está cancelada", domain.ErrBusinessRule)
	}

	now := time.Now()
	err = uc.runner.RunBilling(func(tx Tx) error {
		ok, err := tx.Installments().MarkPaid(installmentID, actor.ID, in.PaymentMethod, now)
		if err != nil {
			return err
		}
		if !ok {
			switch installment.Status {
			case entity.InstallmentPaid:
				return fmt.Errorf("%w: la parcela ya está paga", domain.ErrBusinessRule)
			case entity.InstallmentCancelled:
				return fmt.Errorf("%w: la parcela está cancelada", domain.ErrBusinessRule)
			}
			return fmt.Errorf("%w: la parcela ya no está pendiente", domain.ErrBusinessRule)
		}
		return tx.Transactions().Create(uc.paymentTransaction(actor, bill, installment, in.PaymentMethod, now))
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityInstallmentPaid,
		fmt.Sprintf("parcela %d/%d da conta %s paga via %s", installment.Number, bill.InstallmentCount, bill.ID, in.PaymentMethod),
		map[string]any{"installment_id": installmentID, "bill_id": bill.ID, "amount": installment.Amount.String()})

	installment.Status = entity.InstallmentPaid
	installment.PaidAt = &now
	installment.PaidBy = actor.ID
	installment.PaymentMethod = in.PaymentMethod
	resp := toInstallmentResponse(installment, now)
	return &resp, nil
}

// PayAllInstallments paga todas las parcelas pendientes de una conta en una
// sola transacción, con un movimiento del caixa por parcela.
func (uc *UseCase) PayAllInstallments(actor *entity.User, billID string, in dto.PayInstallmentRequest) (*dto.PayAllResponse, error) {
	if !entity.ValidMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago desconocido", domain.ErrInvalidInput)
	}
	bill, err := uc.bills.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, fmt.Errorf("%w: conta no encontrada", domain.ErrNotFound)
	}
	if bill.Cancelled {
		return nil, fmt.Errorf("%w: la conta está cancelada", domain.ErrBusinessRule)
	}

	now := time.Now()
	paidCount := 0
	paidTotal := decimal.Zero
	err = uc.runner.RunBilling(func(tx Tx) error {
		pending, err := tx.Installments().ListPendingByBill(billID)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return fmt.Errorf("%w: la conta no tiene parcelas pendientes", domain.ErrBusinessRule)
		}
		for _, inst := range pending {
			ok, err := tx.Installments().MarkPaid(inst.ID, actor.ID, in.PaymentMethod, now)
			if err != nil {
				return err
			}
			if !ok {
				// otro pago concurrente la tomó; el caller reintenta
				return fmt.Errorf("%w: la parcela %d ya no está pendiente", domain.ErrBusinessRule, inst.Number)
			}
			if err := tx.Transactions().Create(uc.paymentTransaction(actor, bill, inst, in.PaymentMethod, now)); err != nil {
				return err
			}
			paidCount++
			paidTotal = paidTotal.Add(inst.Amount)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityInstallmentsPaid,
		fmt.Sprintf("%d parcelas da conta %s pagas via %s", paidCount, billID, in.PaymentMethod),
		map[string]any{"bill_id": billID, "paid_count": paidCount, "paid_total": paidTotal.String()})

	return &dto.PayAllResponse{BillID: billID, PaidCount: paidCount, PaidTotal: paidTotal}, nil
}

// CancelInstallmentPayment revierte el pago de una parcela: vuelve a
// pendiente y cancela el movimiento del caixa que la pagó.
func (uc *UseCase) CancelInstallmentPayment(actor *entity.User, installmentID string) (*dto.InstallmentResponse, error) {
	installment, err := uc.installments.GetByID(installmentID)
	if err != nil {
		return nil, err
	}
	if installment == nil {
		return nil, fmt.Errorf("%w: parcela no encontrada", domain.ErrNotFound)
	}
	bill, err := uc.bills.GetByID(installment.BillID)
	if err != nil {
		return nil, err
	}
	if bill == nil || bill.Cancelled {
		return nil, fmt.Errorf("%w: la conta de la parcela está cancelada", domain.ErrBusinessRule)
	}

	now := time.Now()
	err = uc.runner.RunBilling(func(tx Tx) error {
		ok, err := tx.Installments().RevertPayment(installmentID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: la parcela no está paga", domain.ErrBusinessRule)
		}
		txn, err := tx.Transactions().GetActiveByInstallment(installmentID)
		if err != nil {
			return err
		}
		if txn != nil {
			if _, err := tx.Transactions().MarkCancelled(txn.ID, actor.ID, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityPaymentReverted,
		fmt.Sprintf("pagamento da parcela %d da conta %s cancelado", installment.Number, bill.ID),
		map[string]any{"installment_id": installmentID, "bill_id": bill.ID})

	installment.Status = entity.InstallmentPending
	installment.PaidAt = nil
	installment.PaidBy = ""
	installment.PaymentMethod = ""
	resp := toInstallmentResponse(installment, now)
	return &resp, nil
}

// paymentTransaction arma el movimiento pagamento_cliente ligado a la parcela.
func (uc *UseCase) paymentTransaction(actor *entity.User, bill *entity.Bill, inst *entity.Installment, method string, now time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:            uuid.New().String(),
		Type:          entity.TransactionPagamentoCliente,
		Amount:        inst.Amount,
		Description:   fmt.Sprintf("pagamento da parcela %d/%d", inst.Number, bill.InstallmentCount),
		PaymentMethod: method,
		ProductID:     bill.ProductID,
		ClientID:      bill.ClientID,
		InstallmentID: inst.ID,
		UserID:        actor.ID,
		CreatedAt:     now,
	}
}
