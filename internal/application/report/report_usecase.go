// Package report arma los informes imprimibles del caixa.
package report

import (
	"context"
	"time"

	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/application/ledger"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

// TransactionsReport datos listos para render: período, totales y filas.
type TransactionsReport struct {
	From         *time.Time
	To           *time.Time
	GeneratedAt  time.Time
	GeneratedBy  string
	Summary      dto.TransactionSummaryResponse
	Transactions []*entity.Transaction
}

// PDFGenerator puerto de render; la infraestructura decide el layout.
type PDFGenerator interface {
	GenerateTransactionsReport(ctx context.Context, rep *TransactionsReport) ([]byte, error)
}

// UseCase genera informes del caixa.
type UseCase struct {
	transactions repository.TransactionRepository
	generator    PDFGenerator
}

// NewUseCase construye el caso de uso de informes.
func NewUseCase(transactions repository.TransactionRepository, generator PDFGenerator) *UseCase {
	return &UseCase{transactions: transactions, generator: generator}
}

// TransactionsPDF genera el informe de movimientos del período en PDF.
// Las transacciones canceladas aparecen en el listado marcadas como tales
// pero no suman en los totales.
func (uc *UseCase) TransactionsPDF(ctx context.Context, actor *entity.User, from, to *time.Time) ([]byte, error) {
	txns, err := uc.transactions.List(from, to)
	if err != nil {
		return nil, err
	}
	rep := &TransactionsReport{
		From:         from,
		To:           to,
		GeneratedAt:  time.Now(),
		GeneratedBy:  actor.Username,
		Summary:      *ledger.Summarize(txns),
		Transactions: txns,
	}
	return uc.generator.GenerateTransactionsReport(ctx, rep)
}
