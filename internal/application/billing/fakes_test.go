package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/caixa-api/internal/application/audit"
	"github.com/jhoicas/caixa-api/internal/domain/authz"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
	"github.com/jhoicas/caixa-api/pkg/logger"
)

// Fakes en memoria para los puertos de persistencia. Replican los contratos
// de los repositorios reales, incluidos los updates condicionales.

type memClients struct {
	items map[string]*entity.Client
}

func newMemClients() *memClients { return &memClients{items: map[string]*entity.Client{}} }

func (m *memClients) Create(c *entity.Client) error { m.items[c.ID] = c; return nil }
func (m *memClients) GetByID(id string) (*entity.Client, error) {
	return m.items[id], nil
}
func (m *memClients) GetByEmail(email string) (*entity.Client, error) {
	for _, c := range m.items {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memClients) GetByCPF(cpf string) (*entity.Client, error) {
	for _, c := range m.items {
		if c.CPF == cpf {
			return c, nil
		}
	}
	return nil, nil
}
func (m *memClients) List() ([]*entity.Client, error) {
	out := make([]*entity.Client, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
func (m *memClients) Update(c *entity.Client) error { m.items[c.ID] = c; return nil }

type memProducts struct {
	items map[string]*entity.Product
}

func newMemProducts() *memProducts { return &memProducts{items: map[string]*entity.Product{}} }

func (m *memProducts) Create(p *entity.Product) error { m.items[p.ID] = p; return nil }
func (m *memProducts) GetByID(id string) (*entity.Product, error) {
	return m.items[id], nil
}
func (m *memProducts) GetActiveByCode(code string) (*entity.Product, error) {
	for _, p := range m.items {
		if p.Active && p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memProducts) GetActiveByName(name string) (*entity.Product, error) {
	for _, p := range m.items {
		if p.Active && p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memProducts) ListActive() ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	for _, p := range m.items {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memProducts) Update(p *entity.Product) error { m.items[p.ID] = p; return nil }
func (m *memProducts) DecrementStock(id string, qty int64) (bool, error) {
	p, ok := m.items[id]
	if !ok || p.Stock == nil || *p.Stock < qty {
		return false, nil
	}
	remaining := *p.Stock - qty
	p.Stock = &remaining
	return true, nil
}

type memBills struct {
	items map[string]*entity.Bill
	order []string
}

func newMemBills() *memBills { return &memBills{items: map[string]*entity.Bill{}} }

func (m *memBills) Create(b *entity.Bill) error {
	m.items[b.ID] = b
	m.order = append(m.order, b.ID)
	return nil
}
func (m *memBills) GetByID(id string) (*entity.Bill, error) { return m.items[id], nil }
func (m *memBills) List() ([]*entity.Bill, error) {
	out := make([]*entity.Bill, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.items[id])
	}
	return out, nil
}
func (m *memBills) ListByClient(clientID string) ([]*entity.Bill, error) {
	out := make([]*entity.Bill, 0)
	for _, id := range m.order {
		if m.items[id].ClientID == clientID {
			out = append(out, m.items[id])
		}
	}
	return out, nil
}
func (m *memBills) MarkCancelled(id, cancelledBy string, cancelledAt time.Time) (bool, error) {
	b, ok := m.items[id]
	if !ok || b.Cancelled {
		return false, nil
	}
	b.Cancelled = true
	b.CancelledBy = cancelledBy
	b.CancelledAt = &cancelledAt
	return true, nil
}

type memInstallments struct {
	items   map[string]*entity.Installment
	bills   *memBills
	clients *memClients
}

func newMemInstallments(bills *memBills, clients *memClients) *memInstallments {
	return &memInstallments{items: map[string]*entity.Installment{}, bills: bills, clients: clients}
}

func (m *memInstallments) Create(i *entity.Installment) error { m.items[i.ID] = i; return nil }
func (m *memInstallments) GetByID(id string) (*entity.Installment, error) {
	return m.items[id], nil
}
func (m *memInstallments) ListByBill(billID string) ([]*entity.Installment, error) {
	out := make([]*entity.Installment, 0)
	for _, i := range m.items {
		if i.BillID == billID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Number < out[b].Number })
	return out, nil
}
func (m *memInstallments) ListPendingByBill(billID string) ([]*entity.Installment, error) {
	all, _ := m.ListByBill(billID)
	out := make([]*entity.Installment, 0)
	for _, i := range all {
		if i.Status == entity.InstallmentPending {
			out = append(out, i)
		}
	}
	return out, nil
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
func (m *memInstallments) CancelByBill(billID, cancelledBy string, cancelledAt time.Time) (int, error) {
	changed := 0
	for _, i := range m.items {
		if i.BillID == billID && i.Status != entity.InstallmentCancelled {
			i.Status = entity.InstallmentCancelled
			i.CancelledBy = cancelledBy
			i.CancelledAt = &cancelledAt
			changed++
		}
	}
	return changed, nil
}
func (m *memInstallments) OldestPendingForClient(clientID, productID string) (*entity.Installment, error) {
	var oldest *entity.Installment
	for _, i := range m.items {
		if i.Status != entity.InstallmentPending {
			continue
		}
		bill := m.bills.items[i.BillID]
		if bill == nil || bill.Cancelled || bill.ClientID != clientID {
			continue
		}
		if productID != "" && bill.ProductID != productID {
			continue
		}
		if oldest == nil || i.DueDate.Before(oldest.DueDate) {
			oldest = i
		}
	}
	return oldest, nil
}
func (m *memInstallments) ListPending(filter repository.PendingFilter) ([]*repository.PendingInstallmentRow, error) {
	now := time.Now()
	out := make([]*repository.PendingInstallmentRow, 0)
	for _, i := range m.items {
		if i.Status != entity.InstallmentPending {
			continue
		}
		bill := m.bills.items[i.BillID]
		if bill == nil || bill.Cancelled {
			continue
		}
		if filter.OverdueOnly && !i.Overdue(now) {
			continue
		}
		if filter.Month != nil && int(i.DueDate.Month()) != *filter.Month {
			continue
		}
		if filter.Year != nil && i.DueDate.Year() != *filter.Year {
			continue
		}
		var clientName string
		if c := m.clients.items[bill.ClientID]; c != nil {
			clientName = c.Name
		}
		out = append(out, &repository.PendingInstallmentRow{
			Installment: *i,
			BillID:      bill.ID,
			Description: bill.Description,
			ClientID:    bill.ClientID,
			ClientName:  clientName,
			ProductID:   bill.ProductID,
		})
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].Installment.DueDate.Before(out[b].Installment.DueDate)
	})
	return out, nil
}
func (m *memInstallments) SumPendingByBill(billID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, i := range m.items {
		if i.BillID == billID && i.Status == entity.InstallmentPending {
			sum = sum.Add(i.Amount)
		}
	}
	return sum, nil
}

type memTransactions struct {
	items map[string]*entity.Transaction
	order []string
}

func newMemTransactions() *memTransactions {
	return &memTransactions{items: map[string]*entity.Transaction{}}
}

func (m *memTransactions) Create(t *entity.Transaction) error {
	m.items[t.ID] = t
	m.order = append(m.order, t.ID)
	return nil
}
func (m *memTransactions) GetByID(id string) (*entity.Transaction, error) {
	return m.items[id], nil
}
func (m *memTransactions) GetActiveByInstallment(installmentID string) (*entity.Transaction, error) {
	for _, id := range m.order {
		t := m.items[id]
		if t.InstallmentID == installmentID && !t.Cancelled {
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

type memActivity struct {
	entries []*entity.ActivityLog
}

func (m *memActivity) Create(l *entity.ActivityLog) error {
	m.entries = append(m.entries, l)
	return nil
}
func (m *memActivity) List(start, end *time.Time, action string) ([]*entity.ActivityLog, error) {
	out := make([]*entity.ActivityLog, 0)
	for i := len(m.entries) - 1; i >= 0; i-- {
		e := m.entries[i]
		if action != "" && e.Action != action {
			continue
		}
		if start != nil && e.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && e.CreatedAt.After(*end) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *memActivity) last() *entity.ActivityLog {
	if len(m.entries) == 0 {
		return nil
	}
	return m.entries[len(m.entries)-1]
}

// fakeTx expone los fakes como una transacción; el runner aplica los cambios
// directamente, lo que basta para probar la lógica de los casos de uso.
type fakeTx struct {
	bills        *memBills
	installments *memInstallments
	transactions *memTransactions
}

func (t *fakeTx) Bills() repository.BillRepository               { return t.bills }
func (t *fakeTx) Installments() repository.InstallmentRepository { return t.installments }
func (t *fakeTx) Transactions() repository.TransactionRepository { return t.transactions }

type fakeRunner struct {
	tx *fakeTx
}

func (r *fakeRunner) RunBilling(fn func(tx Tx) error) error { return fn(r.tx) }

// fixture arma un caso de uso completo sobre fakes.
type fixture struct {
	uc           *UseCase
	clients      *memClients
	products     *memProducts
	bills        *memBills
	installments *memInstallments
	transactions *memTransactions
	activity     *memActivity
	actor        *entity.User
}

func newFixture() *fixture {
	clients := newMemClients()
	products := newMemProducts()
	bills := newMemBills()
	installments := newMemInstallments(bills, clients)
	transactions := newMemTransactions()
	activity := &memActivity{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	recorder := audit.NewRecorder(activity, log)
	runner := &fakeRunner{tx: &fakeTx{bills: bills, installments: installments, transactions: transactions}}
	uc := NewUseCase(clients, products, bills, installments, transactions, runner, recorder)
	actor := &entity.User{
		ID:       "user-admin",
		Username: "admin",
		Role:     authz.RoleAdmin,
		Active:   true,
	}
	return &fixture{
		uc:           uc,
		clients:      clients,
		products:     products,
		bills:        bills,
		installments: installments,
		transactions: transactions,
		activity:     activity,
		actor:        actor,
	}
}

func (f *fixture) seedClient(id, name string) *entity.Client {
	c := &entity.Client{ID: id, Name: name, Email: id + "@test.com", CPF: "529.982.247-25", CreatedAt: time.Now()}
	f.clients.items[id] = c
	return c
}

func (f *fixture) seedProduct(id, name string, price decimal.Decimal) *entity.Product {
	p := &entity.Product{ID: id, Code: "C-" + id, Name: name, Price: price, Active: true}
	f.products.items[id] = p
	return p
}
