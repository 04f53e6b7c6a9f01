package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
	"github.com/jhoicas/caixa-api/pkg/textutil"
)

// GetBill devuelve una conta con sus parcelas ordenadas por número.
func (uc *UseCase) GetBill(billID string) (*dto.BillResponse, error) {
	bill, err := uc.bills.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, fmt.Errorf("%w: conta no encontrada", domain.ErrNotFound)
	}
	installments, err := uc.installments.ListByBill(billID)
	if err != nil {
		return nil, err
	}
	var clientName string
	if client, err := uc.clients.GetByID(bill.ClientID); err == nil && client != nil {
		clientName = client.Name
	}
	return toBillResponse(bill, installments, clientName, time.Now()), nil
}

// ListBills devuelve todas las contas, sin parcelas.
func (uc *UseCase) ListBills() ([]dto.BillResponse, error) {
	bills, err := uc.bills.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, *toBillResponse(b, nil, "", time.Time{}))
	}
	return out, nil
}

// ListPendingInstallments lista las parcelas pendientes de contas no
// canceladas. clientName filtra por substring del nombre del cliente,
// insensible a mayúsculas y acentos.
func (uc *UseCase) ListPendingInstallments(filter repository.PendingFilter, clientName string) ([]dto.PendingInstallmentResponse, error) {
	rows, err := uc.installments.ListPending(filter)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.PendingInstallmentResponse, 0, len(rows))
	for _, row := range rows {
		if clientName != "" && !textutil.ContainsFold(row.ClientName, clientName) {
			continue
		}
		out = append(out, dto.PendingInstallmentResponse{
			InstallmentResponse: toInstallmentResponse(&row.Installment, now),
			Description:         row.Description,
			ClientID:            row.ClientID,
			ClientName:          row.ClientName,
			ProductID:           row.ProductID,
			ProductName:         row.ProductName,
		})
	}
	return out, nil
}

// ClientsWithBills devuelve los clientes que tienen contas activas, con el
// número de contas con saldo y el total pendiente de cada uno.
func (uc *UseCase) ClientsWithBills() ([]dto.ClientWithBillsResponse, error) {
	clients, err := uc.clients.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientWithBillsResponse, 0)
	for _, c := range clients {
		bills, err := uc.bills.ListByClient(c.ID)
		if err != nil {
			return nil, err
		}
		pendingBills := 0
		totalPending := decimal.Zero
		hasActive := false
		for _, b := range bills {
			if b.Cancelled {
				continue
			}
			hasActive = true
			sum, err := uc.installments.SumPendingByBill(b.ID)
			if err != nil {
				return nil, err
			}
			if sum.GreaterThan(decimal.Zero) {
				pendingBills++
				totalPending = totalPending.Add(sum)
			}
		}
		if !hasActive {
			continue
		}
		out = append(out, dto.ClientWithBillsResponse{
			ClientResponse: dto.ClientResponse{
				ID:        c.ID,
				Name:      c.Name,
				Email:     c.Email,
				CPF:       c.CPF,
				Phone:     c.Phone,
				Address:   c.Address,
				CreatedAt: c.CreatedAt,
			},
			PendingBills: pendingBills,
			TotalPending: totalPending,
		})
	}
	return out, nil
}

// ClientPendingBills devuelve las contas activas de un cliente con sus
// parcelas pendientes.
func (uc *UseCase) ClientPendingBills(clientID string) ([]dto.BillResponse, error) {
	client, err := uc.clients.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cliente no encontrado", domain.ErrNotFound)
	}
	bills, err := uc.bills.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.BillResponse, 0)
	for _, b := range bills {
		if b.Cancelled {
			continue
		}
		pending, err := uc.installments.ListPendingByBill(b.ID)
		if err != nil {
			return nil, err
		}
		if len(pending) == 0 {
			continue
		}
		out = append(out, *toBillResponse(b, pending, client.Name, now))
	}
	return out, nil
}

func toBillResponse(b *entity.Bill, installments []*entity.Installment, clientName string, now time.Time) *dto.BillResponse {
	resp := &dto.BillResponse{
		ID:                b.ID,
		ClientID:          b.ClientID,
		ClientName:        clientName,
		ProductID:         b.ProductID,
		Description:       b.Description,
		TotalAmount:       b.TotalAmount,
		InstallmentCount:  b.InstallmentCount,
		InstallmentAmount: b.InstallmentAmount,
		Cancelled:         b.Cancelled,
		CreatedAt:         b.CreatedAt,
	}
	for _, inst := range installments {
		resp.Installments = append(resp.Installments, toInstallmentResponse(inst, now))
	}
	return resp
}

func toInstallmentResponse(i *entity.Installment, now time.Time) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		ID:            i.ID,
		BillID:        i.BillID,
		Number:        i.Number,
		Amount:        i.Amount,
		DueDate:       i.DueDate,
		Status:        i.Status,
		Overdue:       i.Overdue(now),
		PaidAt:        i.PaidAt,
		PaymentMethod: i.PaymentMethod,
	}
}
