package billing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain"
	domainbilling "github.com/jhoicas/caixa-api/internal/domain/billing"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
)

// CreateBill crea una conta parcelada. Con producto, el precio vigente del
// producto manda sobre el total pedido; sin producto, el total es obligatorio.
// Conta y parcelas se persisten en una sola transacción: nunca queda una
// conta sin su plan completo.
func (uc *UseCase) CreateBill(actor *entity.User, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	client, err := uc.clients.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente no encontrado", domain.ErrNotFound)
	}

	var total decimal.Decimal
	description := in.Description
	if in.ProductID != "" {
		product, err := uc.products.GetByID(in.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.Active {
			return nil, fmt.Errorf("%w: producto no encontrado", domain.ErrNotFound)
		}
		total = product.Price
		if description == "" {
			description = product.Name
		}
	} else {
		if in.TotalAmount == nil {
			return nil, fmt.Errorf("%w: total_amount es requerido sin producto", domain.ErrInvalidInput)
		}
		total = *in.TotalAmount
	}

	now := time.Now()
	schedule, err := domainbilling.BuildSchedule(total, in.InstallmentCount, now)
	if err != nil {
		return nil, err
	}

	bill := &entity.Bill{
		ID:                uuid.New().String(),
		ClientID:          client.ID,
		ProductID:         in.ProductID,
		Description:       description,
		TotalAmount:       total,
		InstallmentCount:  in.InstallmentCount,
		InstallmentAmount: domainbilling.InstallmentAmount(total, in.InstallmentCount),
		CreatedBy:         actor.ID,
		CreatedAt:         now,
	}
	installments := make([]*entity.Installment, len(schedule))
	for i, item := range schedule {
		installments[i] = &entity.Installment{
			ID:      uuid.New().String(),
			BillID:  bill.ID,
			Number:  item.Number,
			Amount:  item.Amount,
			DueDate: item.DueDate,
			Status:  entity.InstallmentPending,
		}
	}

	err = uc.runner.RunBilling(func(tx Tx) error {
		if err := tx.Bills().Create(bill); err != nil {
			return err
		}
		for _, inst := range installments {
			if err := tx.Installments().Create(inst); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityBillCreated,
		fmt.Sprintf("conta de %s em %d parcelas criada para %s", total.StringFixed(2), in.InstallmentCount, client.Name),
		map[string]any{"bill_id": bill.ID, "client_id": client.ID, "total": total.String()})

	resp := toBillResponse(bill, installments, client.Name, now)
	return resp, nil
}
