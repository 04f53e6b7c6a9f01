// Package ledger implementa los movimientos del caixa: entradas, saídas y su
// cancelación, más el resumen agregado.
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/caixa-api/internal/application/audit"
	"github.com/jhoicas/caixa-api/internal/application/billing"
	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

// TransactionUseCase movimientos del caixa.
type TransactionUseCase struct {
	transactions repository.TransactionRepository
	installments repository.InstallmentRepository
	runner       billing.TxRunner
	recorder     *audit.Recorder
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	transactions repository.TransactionRepository,
	installments repository.InstallmentRepository,
	runner billing.TxRunner,
	recorder *audit.Recorder,
) *TransactionUseCase {
	return &TransactionUseCase{
		transactions: transactions,
		installments: installments,
		runner:       runner,
		recorder:     recorder,
	}
}

// Create registra una entrada o saída manual. Los pagamento_cliente no se
// crean por aquí: nacen del pago de parcelas. Las saídas solo admiten
// dinheiro o pix.
func (uc *TransactionUseCase) Create(actor *entity.User, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	if in.Type != entity.TransactionEntrada && in.Type != entity.TransactionSaida {
		return nil, fmt.Errorf("%w: tipo de transacción desconocido", domain.ErrInvalidInput)
	}
	if !in.Amount.GreaterThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: el valor debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if !entity.ValidMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago desconocido", domain.ErrInvalidInput)
	}
	if in.Type == entity.TransactionSaida && !entity.SaidaMethodAllowed(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: saídas solo admiten dinheiro o pix", domain.ErrBusinessRule)
	}

	txn := &entity.Transaction{
		ID:            uuid.New().String(),
		Type:          in.Type,
		Amount:        in.Amount,
		Description:   in.Description,
		PaymentMethod: in.PaymentMethod,
		ProductID:     in.ProductID,
		ClientID:      in.ClientID,
		UserID:        actor.ID,
		CreatedAt:     time.Now(),
	}
	if err := uc.transactions.Create(txn); err != nil {
		return nil, err
	}
	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityTransactionCreated,
		fmt.Sprintf("%s de %s via %s", txn.Type, txn.Amount.StringFixed(2), txn.PaymentMethod),
		map[string]any{"transaction_id": txn.ID, "type": txn.Type, "amount": txn.Amount.String()})
	return toTransactionResponse(txn), nil
}

// List devuelve los movimientos, más recientes primero, con rango de fechas
// opcional.
func (uc *TransactionUseCase) List(from, to *time.Time) ([]dto.TransactionResponse, error) {
	txns, err := uc.transactions.List(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, *toTransactionResponse(t))
	}
	return out, nil
}

// Cancel cancela un movimiento. La cancelación es simétrica al pago: si el
// movimiento era un pagamento_cliente, la parcela vuelve a pendiente en la
// misma transacción.
func (uc *TransactionUseCase) Cancel(actor *entity.User, id string) (*dto.TransactionResponse, error) {
	txn, err := uc.transactions.GetByID(id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, fmt.Errorf("%w: transacción no encontrada", domain.ErrNotFound)
	}

	now := time.Now()
	err = uc.runner.RunBilling(func(tx billing.Tx) error {
		ok, err := tx.Transactions().MarkCancelled(id, actor.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: la transacción ya está cancelada", domain.ErrBusinessRule)
		}
		if txn.Type == entity.TransactionPagamentoCliente && txn.InstallmentID != "" {
			if _, err := tx.Installments().RevertPayment(txn.InstallmentID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.recorder.Record(actor.ID, actor.Username, entity.ActivityTransactionCancelled,
		fmt.Sprintf("%s de %s cancelada", txn.Type, txn.Amount.StringFixed(2)),
		map[string]any{"transaction_id": txn.ID})

	txn.Cancelled = true
	txn.CancelledBy = actor.ID
	txn.CancelledAt = &now
	return toTransactionResponse(txn), nil
}

// Summary agrega los movimientos no cancelados del rango: total de entradas
// (incluye pagamento_cliente), total de saídas y saldo.
func (uc *TransactionUseCase) Summary(from, to *time.Time) (*dto.TransactionSummaryResponse, error) {
	txns, err := uc.transactions.List(from, to)
	if err != nil {
		return nil, err
	}
	return Summarize(txns), nil
}

// Summarize calcula el resumen sobre un conjunto de movimientos; las
// transacciones canceladas no cuentan.
func Summarize(txns []*entity.Transaction) *dto.TransactionSummaryResponse {
	summary := &dto.TransactionSummaryResponse{
		TotalEntrada: decimal.Zero,
		TotalSaida:   decimal.Zero,
	}
	for _, t := range txns {
		if t.Cancelled {
			continue
		}
		summary.TotalTransactions++
		switch t.Type {
		case entity.TransactionSaida:
			summary.TotalSaida = summary.TotalSaida.Add(t.Amount)
		default:
			summary.TotalEntrada = summary.TotalEntrada.Add(t.Amount)
		}
	}
	summary.Saldo = summary.TotalEntrada.Sub(summary.TotalSaida)
	return summary
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Amount:        t.Amount,
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
		ProductID:     t.ProductID,
		ClientID:      t.ClientID,
		InstallmentID: t.InstallmentID,
		UserID:        t.UserID,
		Cancelled:     t.Cancelled,
		CreatedAt:     t.CreatedAt,
	}
}
