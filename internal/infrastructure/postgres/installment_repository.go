package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

// InstallmentRepo implementación del puerto InstallmentRepository sobre
// PostgreSQL. Las transiciones de estado llevan la precondición en el WHERE.
type InstallmentRepo struct {
	q Querier
}

// NewInstallmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallmentRepository(q Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

const installmentColumns = `id, bill_id, number, amount, due_date, status, paid_at, paid_by, payment_method, cancelled_by, cancelled_at`

// Create persiste una parcela.
func (r *InstallmentRepo) Create(installment *entity.Installment) error {
	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		installment.ID, installment.BillID, installment.Number, installment.Amount,
		installment.DueDate, installment.Status, installment.PaidAt,
		nullable(installment.PaidBy), nullable(installment.PaymentMethod),
		nullable(installment.CancelledBy), installment.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("insert installment: %w", err)
	}
	return nil
}

// GetByID obtiene una parcela por ID.
func (r *InstallmentRepo) GetByID(id string) (*entity.Installment, error) {
	i, err := scanInstallment(r.q.QueryRow(context.Background(),
		`SELECT `+installmentColumns+` FROM installments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return i, nil
}

// ListByBill lista las parcelas de una conta ordenadas por número.
func (r *InstallmentRepo) ListByBill(billID string) ([]*entity.Installment, error) {
	return r.queryMany(
		`SELECT `+installmentColumns+` FROM installments WHERE bill_id = $1 ORDER BY number`,
		billID)
}

// ListPendingByBill lista las parcelas pendientes de una conta por número.
func (r *InstallmentRepo) ListPendingByBill(billID string) ([]*entity.Installment, error) {
	return r.queryMany(
		`SELECT `+installmentColumns+` FROM installments WHERE bill_id = $1 AND status = $2 ORDER BY number`,
		billID, entity.InstallmentPending)
}

// MarkPaid pasa pending→paid; la precondición va en el WHERE y las filas
// afectadas deciden, de modo que dos pagos simultáneos no pasan ambos.
func (r *InstallmentRepo) MarkPaid(id, paidBy, method string, paidAt time.Time) (bool, error) {
	query := `
		UPDATE installments
		SET status = $2, paid_at = $3, paid_by = $4, payment_method = $5
		WHERE id = $1 AND status = $6`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.InstallmentPaid, paidAt, paidBy, method, entity.InstallmentPending)
	if err != nil {
		return false, fmt.Errorf("mark installment paid: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// RevertPayment pasa paid→pending limpiando los metadatos de pago.
func (r *InstallmentRepo) RevertPayment(id string) (bool, error) {
	query := `
		UPDATE installments
		SET status = $2, paid_at = NULL, paid_by = NULL, payment_method = NULL
		WHERE id = $1 AND status = $3`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.InstallmentPending, entity.InstallmentPaid)
	if err != nil {
		return false, fmt.Errorf("revert installment payment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// CancelByBill cancela todas las parcelas de la conta sin importar su estado.
func (r *InstallmentRepo) CancelByBill(billID, cancelledBy string, cancelledAt time.Time) (int, error) {
	query := `
		UPDATE installments
		SET status = $2, cancelled_by = $3, cancelled_at = $4
		WHERE bill_id = $1 AND status <> $2`
	tag, err := r.q.Exec(context.Background(), query,
		billID, entity.InstallmentCancelled, cancelledBy, cancelledAt)
	if err != nil {
		return 0, fmt.Errorf("cancel installments by bill: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// OldestPendingForClient devuelve la parcela pendiente que vence primero
// entre las contas no canceladas del cliente. FOR UPDATE SKIP LOCKED hace que
// dos asignaciones concurrentes tomen parcelas distintas.
func (r *InstallmentRepo) OldestPendingForClient(clientID, productID string) (*entity.Installment, error) {
	query := `
		SELECT i.id, i.bill_id, i.number, i.amount, i.due_date, i.status,
		       i.paid_at, i.paid_by, i.payment_method, i.cancelled_by, i.cancelled_at
		FROM installments i
		JOIN bills b ON b.id = i.bill_id
		WHERE b.client_id = $1 AND NOT b.cancelled AND i.status = $2
		  AND ($3 = '' OR b.product_id = $3)
		ORDER BY i.due_date, i.number
		LIMIT 1
		FOR UPDATE OF i SKIP LOCKED`
	i, err := scanInstallment(r.q.QueryRow(context.Background(), query,
		clientID, entity.InstallmentPending, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("oldest pending installment: %w", err)
	}
	return i, nil
}

// ListPending lista las parcelas pendientes de contas no canceladas con el
// contexto de cliente y producto, ordenadas por vencimiento.
func (r *InstallmentRepo) ListPending(filter repository.PendingFilter) ([]*repository.PendingInstallmentRow, error) {
	query := `
		SELECT i.id, i.bill_id, i.number, i.amount, i.due_date, i.status,
		       i.paid_at, i.paid_by, i.payment_method, i.cancelled_by, i.cancelled_at,
		       b.id, b.description, b.client_id, c.name,
		       COALESCE(b.product_id, ''), COALESCE(p.name, '')
		FROM installments i
		JOIN bills b ON b.id = i.bill_id
		JOIN clients c ON c.id = b.client_id
		LEFT JOIN products p ON p.id = b.product_id
		WHERE NOT b.cancelled AND i.status = $1
		  AND (NOT $2 OR i.due_date < now())
		  AND ($3::int IS NULL OR EXTRACT(MONTH FROM i.due_date) = $3)
		  AND ($4::int IS NULL OR EXTRACT(YEAR FROM i.due_date) = $4)
		ORDER BY i.due_date, i.number`
	rows, err := r.q.Query(context.Background(), query,
		entity.InstallmentPending, filter.OverdueOnly, filter.Month, filter.Year)
	if err != nil {
		return nil, fmt.Errorf("list pending installments: %w", err)
	}
	defer rows.Close()
	var list []*repository.PendingInstallmentRow
	for rows.Next() {
		var row repository.PendingInstallmentRow
		var paidBy, method, cancelledBy *string
		if err := rows.Scan(
			&row.Installment.ID, &row.Installment.BillID, &row.Installment.Number,
			&row.Installment.Amount, &row.Installment.DueDate, &row.Installment.Status,
			&row.Installment.PaidAt, &paidBy, &method, &cancelledBy, &row.Installment.CancelledAt,
			&row.BillID, &row.Description, &row.ClientID, &row.ClientName,
			&row.ProductID, &row.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan pending installment: %w", err)
		}
		if paidBy != nil {
			row.Installment.PaidBy = *paidBy
		}
		if method != nil {
			row.Installment.PaymentMethod = *method
		}
		if cancelledBy != nil {
			row.Installment.CancelledBy = *cancelledBy
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// SumPendingByBill suma los montos pendientes de una conta.
func (r *InstallmentRepo) SumPendingByBill(billID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM installments WHERE bill_id = $1 AND status = $2`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, billID, entity.InstallmentPending).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum pending installments: %w", err)
	}
	return sum, nil
}

func (r *InstallmentRepo) queryMany(query string, args ...any) ([]*entity.Installment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Installment
	for rows.Next() {
		i, err := scanInstallment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

func scanInstallment(row pgx.Row) (*entity.Installment, error) {
	var i entity.Installment
	var paidBy, method, cancelledBy *string
	if err := row.Scan(
		&i.ID, &i.BillID, &i.Number, &i.Amount, &i.DueDate, &i.Status,
		&i.PaidAt, &paidBy, &method, &cancelledBy, &i.CancelledAt,
	); err != nil {
		return nil, err
	}
	if paidBy != nil {
		i.PaidBy = *paidBy
	}
	if method != nil {
		i.PaymentMethod = *method
	}
	if cancelledBy != nil {
		i.CancelledBy = *cancelledBy
	}
	return &i, nil
}
