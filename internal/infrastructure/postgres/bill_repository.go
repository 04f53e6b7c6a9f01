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

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo implementación del puerto BillRepository sobre PostgreSQL.
type BillRepo struct {
	q Querier
}

// NewBillRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, client_id, product_id, description, total_amount, installment_count, installment_amount, cancelled, cancelled_by, cancelled_at, created_by, created_at`

// Create persiste una nueva conta.
func (r *BillRepo) Create(bill *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		bill.ID, bill.ClientID, nullable(bill.ProductID), bill.Description,
		bill.TotalAmount, bill.InstallmentCount, bill.InstallmentAmount,
		bill.Cancelled, nullable(bill.CancelledBy), bill.CancelledAt,
		nullable(bill.CreatedBy), bill.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID obtiene una conta por ID.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	b, err := scanBill(r.q.QueryRow(context.Background(),
		`SELECT `+billColumns+` FROM bills WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return b, nil
}

// List lista todas las contas, más recientes primero.
func (r *BillRepo) List() ([]*entity.Bill, error) {
	return r.queryMany(`SELECT ` + billColumns + ` FROM bills ORDER BY created_at DESC`)
}

// ListByClient lista las contas de un cliente, más recientes primero.
func (r *BillRepo) ListByClient(clientID string) ([]*entity.Bill, error) {
	return r.queryMany(`SELECT `+billColumns+` FROM bills WHERE client_id = $1 ORDER BY created_at DESC`, clientID)
}

// MarkCancelled marca la conta como cancelada con la precondición en el
// WHERE; las filas afectadas deciden si este caller ganó la transición.
func (r *BillRepo) MarkCancelled(id, cancelledBy string, cancelledAt time.Time) (bool, error) {
	query := `
		UPDATE bills
		SET cancelled = true, cancelled_by = $2, cancelled_at = $3
		WHERE id = $1 AND NOT cancelled`
	tag, err := r.q.Exec(context.Background(), query, id, cancelledBy, cancelledAt)
	if err != nil {
		return false, fmt.Errorf("cancel bill: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BillRepo) queryMany(query string, args ...any) ([]*entity.Bill, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBill(row pgx.Row) (*entity.Bill, error) {
	var b entity.Bill
	var productID, cancelledBy, createdBy *string
	if err := row.Scan(
		&b.ID, &b.ClientID, &productID, &b.Description, &b.TotalAmount,
		&b.InstallmentCount, &b.InstallmentAmount, &b.Cancelled,
		&cancelledBy, &b.CancelledAt, &createdBy, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	if productID != nil {
		b.ProductID = *productID
	}
	if cancelledBy != nil {
		b.CancelledBy = *cancelledBy
	}
	if createdBy != nil {
		b.CreatedBy = *createdBy
	}
	return &b, nil
}
