package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/caixa-api/internal/application/billing"
	"github.com/jhoicas/caixa-api/internal/application/usecase"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

var _ billing.TxRunner = (*TxRunner)(nil)
var _ usecase.SaleTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción, ejecuta fn con los repos de facturación
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunBilling(fn func(tx billing.Tx) error) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&billingTx{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con los repos de ventas atados a la tx.
func (r *TxRunner) RunSale(fn func(tx usecase.SaleTx) error) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&saleTx{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type billingTx struct {
	q Querier
}

func (t *billingTx) Bills() repository.BillRepository { return NewBillRepository(t.q) }
func (t *billingTx) Installments() repository.InstallmentRepository {
	return NewInstallmentRepository(t.q)
}
func (t *billingTx) Transactions() repository.TransactionRepository {
	return NewTransactionRepository(t.q)
}

type saleTx struct {
	q Querier
}

func (t *saleTx) Products() repository.ProductRepository { return NewProductRepository(t.q) }
func (t *saleTx) Sales() repository.SaleRepository       { return NewSaleRepository(t.q) }
func (t *saleTx) Transactions() repository.TransactionRepository {
	return NewTransactionRepository(t.q)
}
