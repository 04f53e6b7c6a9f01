// Package billing implementa el ciclo de vida de contas parceladas: creación,
// pagos, reversión y cancelación, junto con sus consultas.
package billing

import (
	"github.com/jhoicas/caixa-api/internal/application/audit"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

// Tx repositorios visibles dentro de una transacción de facturación.
type Tx interface {
	Bills() repository.BillRepository
	Installments() repository.InstallmentRepository
	Transactions() repository.TransactionRepository
}

// TxRunner ejecuta fn de forma atómica. Cualquier error revierte todos los
// cambios hechos a través de tx.
type TxRunner interface {
	RunBilling(fn func(tx Tx) error) error
}

// UseCase operaciones sobre contas y parcelas.
type UseCase struct {
	clients      repository.ClientRepository
	products     repository.ProductRepository
	bills        repository.BillRepository
	installments repository.InstallmentRepository
	transactions repository.TransactionRepository
	runner       TxRunner
	recorder     *audit.Recorder
}

// NewUseCase construye el caso de uso de facturación.
func NewUseCase(
	clients repository.ClientRepository,
	products repository.ProductRepository,
	bills repository.BillRepository,
	installments repository.InstallmentRepository,
	transactions repository.TransactionRepository,
	runner TxRunner,
	recorder *audit.Recorder,
) *UseCase {
	return &UseCase{
		clients:      clients,
		products:     products,
		bills:        bills,
		installments: installments,
		transactions: transactions,
		runner:       runner,
		recorder:     recorder,
	}
}
