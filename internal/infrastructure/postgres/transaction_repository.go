package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, type, amount, description, payment_method, product_id, client_id, installment_id, user_id, cancelled, cancelled_by, cancelled_at, created_at`

// Create persiste un movimiento del caixa.
func (r *TransactionRepo) Create(txn *entity.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		txn.ID, txn.Type, txn.Amount, txn.Description, txn.PaymentMethod,
		nullable(txn.ProductID), nullable(txn.ClientID), nullable(txn.InstallmentID),
		txn.UserID, txn.Cancelled, nullable(txn.CancelledBy), txn.CancelledAt,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.q.QueryRow(context.Background(),
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// GetActiveByInstallment devuelve el movimiento no cancelado ligado a la parcela.
func (r *TransactionRepo) GetActiveByInstallment(installmentID string) (*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE installment_id = $1 AND NOT cancelled
		ORDER BY created_at DESC LIMIT 1`
	t, err := scanTransaction(r.q.QueryRow(context.Background(), query, installmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction by installment: %w", err)
	}
	return t, nil
}

// List lista los movimientos del rango, más recientes primero.
func (r *TransactionRepo) List(from, to *time.Time) ([]*entity.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// MarkCancelled cancela el movimiento con la precondición en el WHERE.
func (r *TransactionRepo) MarkCancelled(id, cancelledBy string, cancelledAt time.Time) (bool, error) {
	query := `
		UPDATE transactions
		SET cancelled = true, cancelled_by = $2, cancelled_at = $3
		WHERE id = $1 AND NOT cancelled`
	tag, err := r.q.Exec(context.Background(), query, id, cancelledBy, cancelledAt)
	if err != nil {
		return false, fmt.Errorf("cancel transaction: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var productID, clientID, installmentID, cancelledBy *string
	if err := row.Scan(
		&t.ID, &t.Type, &t.Amount, &t.Description, &t.PaymentMethod,
		&productID, &clientID, &installmentID, &t.UserID,
		&t.Cancelled, &cancelledBy, &t.CancelledAt, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	if productID != nil {
		t.ProductID = *productID
	}
	if clientID != nil {
		t.ClientID = *clientID
	}
	if installmentID != nil {
		t.InstallmentID = *installmentID
	}
	if cancelledBy != nil {
		t.CancelledBy = *cancelledBy
	}
	return &t, nil
}
