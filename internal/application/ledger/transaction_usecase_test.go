package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/caixa-api/internal/application/audit"
	"github.com/jhoicas/caixa-api/internal/application/billing"
	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/authz"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
	"github.com/jhoicas/caixa-api/pkg/logger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type memTransactions struct {
	items map[string]*entity.Transaction
	order []string
}

func (m *memTransactions) Create(t *entity.Transaction) error {
	m.items[t.ID] = t
	m.order = append(m.order, t.ID)
	return nil
}
func (m *memTransactions) GetByID(id string) (*entity.Transaction, error) { return m.items[id], nil }
func (m *memTransactions) GetActiveByInstallment(installmentID string) (*entity.Transaction, error) {
	for _, id := range m.order {
		if t := m.items[id]; t.InstallmentID == installmentID && !t.Cancelled {
			return t, nil
		}
	}
	return nil, nil
}
func (m *memTransactions) List(from, to *time.Time) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0)
	for i := len(m.order) - 1; i >= 0; i-- {
		t := m.items[m.order[i]]
		if from != nil && t.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && t.CreatedAt.After(*to) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
func (m *memTransactions) MarkCancelled(id, cancelledBy string, cancelledAt time.Time) (bool, error) {
	t, ok := m.items[id]
	if !ok || t.Cancelled {
		return false, nil
	}
	t.Cancelled = true
	t.CancelledBy = cancelledBy
	t.CancelledAt = &cancelledAt
	return true, nil
}

type memInstallments struct {
	items map[string]*entity.Installment
}

func (m *memInstallments) Create(i *entity.Installment) error { m.items[i.ID] = i; return nil }
func (m *memInstallments) GetByID(id string) (*entity.Installment, error) {
	return m.items[id], nil
}
func (m *memInstallments) ListByBill(string) ([]*entity.Installment, error) { return nil, nil }
func (m *memInstallments) ListPendingByBill(string) ([]*entity.Installment, error) {
	return nil, nil
}
func (m *memInstallments) MarkPaid(id, paidBy, method string, paidAt time.Time) (bool, error) {
	i, ok := m.items[id]
	if !ok || i.Status != entity.InstallmentPending {
		return false, nil
	}
	i.Status = entity.InstallmentPaid
	i.PaidAt = &paidAt
	i.PaidBy = paidBy
	i.PaymentMethod = method
	return true, nil
}
func (m *memInstallments) RevertPayment(id string) (bool, error) {
	i, ok := m.items[id]
	if !ok || i.Status != entity.InstallmentPaid {
		return false, nil
	}
	i.Status = entity.InstallmentPending
	i.PaidAt = nil
	i.PaidBy = ""
	i.PaymentMethod = ""
	return true, nil
}
func (m *memInstallments) CancelByBill(string, string, time.Time) (int, error) { return 0, nil }
func (m *memInstallments) OldestPendingForClient(string, string) (*entity.Installment, error) {
	return nil, nil
}
func (m *memInstallments) ListPending(repository.PendingFilter) ([]*repository.PendingInstallmentRow, error) {
	return nil, nil
}
func (m *memInstallments) SumPendingByBill(string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type memActivity struct {
	entries []*entity.ActivityLog
}

func (m *memActivity) Create(l *entity.ActivityLog) error { m.entries = append(m.entries, l); return nil }
func (m *memActivity) List(*time.Time, *time.Time, string) ([]*entity.ActivityLog, error) {
	return m.entries, nil
}

type fakeTx struct {
	transactions *memTransactions
	installments *memInstallments
}

func (t *fakeTx) Bills() repository.BillRepository               { return nil }
func (t *fakeTx) Installments() repository.InstallmentRepository { return t.installments }
func (t *fakeTx) Transactions() repository.TransactionRepository { return t.transactions }

type fakeRunner struct{ tx *fakeTx }

func (r *fakeRunner) RunBilling(fn func(tx billing.Tx) error) error { return fn(r.tx) }

type fixture struct {
	uc           *TransactionUseCase
	transactions *memTransactions
	installments *memInstallments
	activity     *memActivity
	actor        *entity.User
}

func newFixture() *fixture {
	transactions := &memTransactions{items: map[string]*entity.Transaction{}}
	installments := &memInstallments{items: map[string]*entity.Installment{}}
	activity := &memActivity{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	recorder := audit.NewRecorder(activity, log)
	runner := &fakeRunner{tx: &fakeTx{transactions: transactions, installments: installments}}
	return &fixture{
		uc:           NewTransactionUseCase(transactions, installments, runner, recorder),
		transactions: transactions,
		installments: installments,
		activity:     activity,
		actor:        &entity.User{ID: "u1", Username: "admin", Role: authz.RoleAdmin, Active: true},
	}
}

func TestCreateTransaction_EntradaAcceptsAnyMethod(t *testing.T) {
	f := newFixture()
	for _, method := range []string{entity.MethodDinheiro, entity.MethodCartao, entity.MethodPix, entity.MethodBoleto} {
		resp, err := f.uc.Create(f.actor, dto.CreateTransactionRequest{
			Type:          entity.TransactionEntrada,
			Amount:        dec("10.00"),
			Description:   "venda avulsa",
			PaymentMethod: method,
		})
		require.NoError(t, err, "método %s", method)
		assert.Equal(t, entity.TransactionEntrada, resp.Type)
	}
}

func TestCreateTransaction_SaidaRestrictedToImmediateMethods(t *testing.T) {
	f := newFixture()

	for _, method := range []string{entity.MethodDinheiro, entity.MethodPix} {
		_, err := f.uc.Create(f.actor, dto.CreateTransactionRequest{
			Type:          entity.TransactionSaida,
			Amount:        dec("5.00"),
			PaymentMethod: method,
		})
		require.NoError(t, err, "método %s", method)
	}
	for _, method := range []string{entity.MethodCartao, entity.MethodBoleto} {
		_, err := f.uc.Create(f.actor, dto.CreateTransactionRequest{
			Type:          entity.TransactionSaida,
			Amount:        dec("5.00"),
			PaymentMethod: method,
		})
		assert.ErrorIs(t, err, domain.ErrBusinessRule, "método %s", method)
	}
}

func TestCreateTransaction_Validation(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(f.actor, dto.CreateTransactionRequest{
		Type: "pagamento_cliente", Amount: dec("10"), PaymentMethod: entity.MethodPix,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "pagamento_cliente no se crea manualmente")

	_, err = f.uc.Create(f.actor, dto.CreateTransactionRequest{
		Type: entity.TransactionEntrada, Amount: decimal.Zero, PaymentMethod: entity.MethodPix,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(f.actor, dto.CreateTransactionRequest{
		Type: entity.TransactionEntrada, Amount: dec("10"), PaymentMethod: "cheque",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCancelTransaction_RevertsLinkedInstallment(t *testing.T) {
	f := newFixture()
	paidAt := time.Now()
	f.installments.items["i1"] = &entity.Installment{
		ID: "i1", BillID: "b1", Number: 1,
		Amount: dec("100"), Status: entity.InstallmentPaid,
		PaidAt: &paidAt, PaidBy: "u1", PaymentMethod: entity.MethodPix,
	}
	txn := &entity.Transaction{
		ID: "t1", Type: entity.TransactionPagamentoCliente,
		Amount: dec("100"), PaymentMethod: entity.MethodPix,
		InstallmentID: "i1", UserID: "u1", CreatedAt: time.Now(),
	}
	require.NoError(t, f.transactions.Create(txn))

	resp, err := f.uc.Cancel(f.actor, "t1")
	require.NoError(t, err)
	assert.True(t, resp.Cancelled)

	inst := f.installments.items["i1"]
	assert.Equal(t, entity.InstallmentPending, inst.Status)
	assert.Nil(t, inst.PaidAt)
}

func TestCancelTransaction_AlreadyCancelled(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.Create(f.actor, dto.CreateTransactionRequest{
		Type: entity.TransactionEntrada, Amount: dec("10"), PaymentMethod: entity.MethodPix,
	})
	require.NoError(t, err)

	_, err = f.uc.Cancel(f.actor, resp.ID)
	require.NoError(t, err)
	_, err = f.uc.Cancel(f.actor, resp.ID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
}

func TestSummary_IgnoresCancelled(t *testing.T) {
	f := newFixture()

	entrada, err := f.uc.Create(f.actor, dto.CreateTransactionRequest{
		Type: entity.TransactionEntrada, Amount: dec("100.00"), PaymentMethod: entity.MethodPix,
	})
	require.NoError(t, err)
	_, err = f.uc.Create(f.actor, dto.CreateTransactionRequest{
		Type: entity.TransactionEntrada, Amount: dec("50.00"), PaymentMethod: entity.MethodCartao,
	})
	require.NoError(t, err)
	_, err = f.uc.Create(f.actor, dto.CreateTransactionRequest{
		Type: entity.TransactionSaida, Amount: dec("30.00"), PaymentMethod: entity.MethodDinheiro,
	})
	require.NoError(t, err)

	summary, err := f.uc.Summary(nil, nil)
	require.NoError(t, err)
	assert.True(t, summary.TotalEntrada.Equal(dec("150")))
	assert.True(t, summary.TotalSaida.Equal(dec("30")))
	assert.True(t, summary.Saldo.Equal(dec("120")))
	assert.Equal(t, 3, summary.TotalTransactions)

	_, err = f.uc.Cancel(f.actor, entrada.ID)
	require.NoError(t, err)

	summary, err = f.uc.Summary(nil, nil)
	require.NoError(t, err)
	assert.True(t, summary.TotalEntrada.Equal(dec("50")))
	assert.True(t, summary.Saldo.Equal(dec("20")))
	assert.Equal(t, 2, summary.TotalTransactions)
}
