package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

func TestListPendingInstallments_FiltersByClientNameWithoutAccents(t *testing.T) {
	f := newFixture()
	f.seedClient("c1", "João Conceição")
	f.seedClient("c2", "Maria Silva")
	seedBill(t, f, "c1", "100.00", 2)
	seedBill(t, f, "c2", "200.00", 2)

	rows, err := f.uc.ListPendingInstallments(repository.PendingFilter{}, "joao conceicao")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "João Conceição", row.ClientName)
	}
}

func TestListPendingInstallments_OverdueOnly(t *testing.T) {
	f := newFixture()
	f.seedClient("c1", "Maria Silva")
	bill := seedBill(t, f, "c1", "100.00", 2)

	// forzar una parcela al pasado
	inst, _ := f.installments.GetByID(bill.Installments[0].ID)
	inst.DueDate = time.Now().AddDate(0, 0, -5)

	rows, err := f.uc.ListPendingInstallments(repository.PendingFilter{OverdueOnly: true}, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, bill.Installments[0].ID, rows[0].ID)
	assert.True(t, rows[0].Overdue)
}

func TestListPendingInstallments_ExcludesPaidAndCancelled(t *testing.T) {
	f := newFixture()
	f.seedClient("c1", "Maria Silva")
	bill := seedBill(t, f, "c1", "300.00", 3)
	cancelled := seedBill(t, f, "c1", "100.00", 1)

	_, err := f.uc.PayInstallment(f.actor, bill.Installments[0].ID, dto.PayInstallmentRequest{PaymentMethod: entity.MethodPix})
	require.NoError(t, err)
	require.NoError(t, f.uc.CancelBill(f.actor, cancelled.ID))

	rows, err := f.uc.ListPendingInstallments(repository.PendingFilter{}, "")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "quedan las dos parcelas no pagas de la conta activa")
}

func TestGetBill_DerivesOverdueOnRead(t *testing.T) {
	f := newFixture()
	f.seedClient("c1", "Maria Silva")
	bill := seedBill(t, f, "c1", "100.00", 2)

	inst, _ := f.installments.GetByID(bill.Installments[0].ID)
	inst.DueDate = time.Now().AddDate(0, 0, -1)

	resp, err := f.uc.GetBill(bill.ID)
	require.NoError(t, err)
	require.Len(t, resp.Installments, 2)
	assert.True(t, resp.Installments[0].Overdue)
	assert.False(t, resp.Installments[1].Overdue)
	assert.Equal(t, "Maria Silva", resp.ClientName)
}

func TestClientsWithBills_TotalsPending(t *testing.T) {
	f := newFixture()
	f.seedClient("c1", "Maria Silva")
	f.seedClient("c2", "João Conceição")
	f.seedClient("c3", "Sem Contas")
	bill := seedBill(t, f, "c1", "300.00", 3)
	seedBill(t, f, "c2", "100.00", 2)

	_, err := f.uc.PayInstallment(f.actor, bill.Installments[0].ID, dto.PayInstallmentRequest{PaymentMethod: entity.MethodPix})
	require.NoError(t, err)

	rows, err := f.uc.ClientsWithBills()
	require.NoError(t, err)
	require.Len(t, rows, 2, "clientes sin contas no aparecen")

	byID := map[string]dto.ClientWithBillsResponse{}
	for _, r := range rows {
		byID[r.ID] = r
	}
	assert.True(t, byID["c1"].TotalPending.Equal(dec("200")))
	assert.Equal(t, 1, byID["c1"].PendingBills)
	assert.True(t, byID["c2"].TotalPending.Equal(dec("100")))
}

func TestClientPendingBills_OnlyActiveWithPending(t *testing.T) {
	f := newFixture()
	f.seedClient("c1", "Maria Silva")
	withPending := seedBill(t, f, "c1", "300.00", 3)
	fullyPaid := seedBill(t, f, "c1", "100.00", 1)
	cancelled := seedBill(t, f, "c1", "50.00", 1)

	_, err := f.uc.PayAllInstallments(f.actor, fullyPaid.ID, dto.PayInstallmentRequest{PaymentMethod: entity.MethodPix})
	require.NoError(t, err)
	require.NoError(t, f.uc.CancelBill(f.actor, cancelled.ID))

	bills, err := f.uc.ClientPendingBills("c1")
	require.NoError(t, err)
	require.Len(t, bills, 1)
	assert.Equal(t, withPending.ID, bills[0].ID)
	assert.Len(t, bills[0].Installments, 3)
}
