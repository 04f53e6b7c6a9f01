package billing

import (
	"fmt"
	"time"

	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
)

// ClientPayment asigna un pago de cliente a su parcela pendiente más antigua
// (por vencimiento), opcionalmente restringida a un producto. La selección y
// el marcado ocurren dentro de la misma transacción: dos pagos simultáneos
// del mismo cliente toman parcelas distintas.
func (uc *UseCase) ClientPayment(actor *entity.User, in dto.ClientPaymentRequest) (*dto.ClientPaymentResponse, error) {
	if !entity.ValidMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago desconocido", domain.ErrInvalidInput)
	}
	client, err := uc.clients.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente no encontrado", domain.ErrNotFound)
	}

	now := time.Now()
	var resp *dto.ClientPaymentResponse
	err = uc.runner.RunBilling(func(tx Tx) error {
		inst, err := tx.Installments().OldestPendingForClient(in.ClientID, in.ProductID)
		if err != nil {
			return err
		}
		if inst == nil {
			return fmt.Errorf("%w: o cliente não tem parcelas pendentes", domain.ErrBusinessRule)
		}
		ok, err := tx.Installments().MarkPaid(inst.ID, actor.ID, in.PaymentMethod, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: a parcela já não está pendente", domain.ErrBusinessRule)
		}
		bill, err := tx.Bills().GetByID(inst.BillID)
		if err != nil {
			return err
		}
		txn := uc.paymentTransaction(actor, bill, inst, in.PaymentMethod, now)
		if err := tx.Transactions().Create(txn); err != nil {
			return err
		}
		resp = &dto.ClientPaymentResponse{
			TransactionID:     txn.ID,
			InstallmentID:     inst.ID,
			InstallmentNumber: inst.Number,
			Amount:            inst.Amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityClientPayment,
		fmt.Sprintf("pagamento de %s alocado à parcela %d do cliente %s", resp.Amount.StringFixed(2), resp.InstallmentNumber, client.Name),
		map[string]any{"client_id": client.ID, "installment_id": resp.InstallmentID, "transaction_id": resp.TransactionID})

	return resp, nil
}
