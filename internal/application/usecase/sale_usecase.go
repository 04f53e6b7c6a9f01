package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/caixa-api/internal/application/audit"
	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

// SaleTx repositorios visibles dentro de la transacción de venta.
type SaleTx interface {
	Products() repository.ProductRepository
	Sales() repository.SaleRepository
	Transactions() repository.TransactionRepository
}

// SaleTxRunner ejecuta fn de forma atómica: venta, descuento de stock y
// movimiento del caixa se confirman juntos o no se confirma nada.
type SaleTxRunner interface {
	RunSale(fn func(tx SaleTx) error) error
}

// SaleUseCase registro y consulta de ventas.
type SaleUseCase struct {
	products repository.ProductRepository
	clients  repository.ClientRepository
	sales    repository.SaleRepository
	runner   SaleTxRunner
	recorder *audit.Recorder
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	products repository.ProductRepository,
	clients repository.ClientRepository,
	sales repository.SaleRepository,
	runner SaleTxRunner,
	recorder *audit.Recorder,
) *SaleUseCase {
	return &SaleUseCase{
		products: products,
		clients:  clients,
		sales:    sales,
		runner:   runner,
		recorder: recorder,
	}
}

// Create registra una venta. Captura snapshots de nombres, descuenta stock
// con update condicional cuando el producto controla existencias y genera la
// entrada correspondiente en el caixa, todo en una transacción.
func (uc *SaleUseCase) Create(actor *entity.User, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity debe ser al menos 1", domain.ErrInvalidInput)
	}
	if !entity.ValidMethod(in.PaymentMethod) {
		return nil, fmt.Errorf("%w: método de pago desconocido", domain.ErrInvalidInput)
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Active {
		return nil, domain.ErrNotFound
	}
	var clientName string
	if in.ClientID != "" {
		client, err := uc.clients.GetByID(in.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, domain.ErrNotFound
		}
		clientName = client.Name
	}

	now := time.Now()
	total := product.Price.Mul(decimal.NewFromInt(in.Quantity))
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		ClientID:      in.ClientID,
		ClientName:    clientName,
		Quantity:      in.Quantity,
		UnitPrice:     product.Price,
		TotalValue:    total,
		PaymentMethod: in.PaymentMethod,
		VendedorID:    actor.ID,
		VendedorName:  actor.Username,
		SaleDate:      now,
	}
	txn := &entity.Transaction{
		ID:            uuid.New().String(),
		Type:          entity.TransactionEntrada,
		Amount:        total,
		Description:   fmt.Sprintf("venda de %dx %s", in.Quantity, product.Name),
		PaymentMethod: in.PaymentMethod,
		ProductID:     product.ID,
		ClientID:      in.ClientID,
		UserID:        actor.ID,
		CreatedAt:     now,
	}
	err = uc.runner.RunSale(func(tx SaleTx) error {
		if product.HasStockControl() {
			ok, err := tx.Products().DecrementStock(product.ID, in.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrInsufficientStock
			}
		}
		if err := tx.Sales().Create(sale); err != nil {
			return err
		}
		return tx.Transactions().Create(txn)
	})
	if err != nil {
		return nil, err
	}
	uc.recorder.Record(actor.ID, actor.Username, entity.ActivitySaleCreated,
		fmt.Sprintf("venda de %dx %s registrada", in.Quantity, product.Name),
		map[string]any{"sale_id": sale.ID, "total": total.String()})
	return toSaleResponse(sale), nil
}

// MySales devuelve las ventas del propio vendedor con totales.
func (uc *SaleUseCase) MySales(actor *entity.User) (*dto.MySalesResponse, error) {
	sales, err := uc.sales.ListByVendedor(actor.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.MySalesResponse{
		Sales:        make([]dto.SaleResponse, 0, len(sales)),
		TotalRevenue: decimal.Zero,
	}
	for _, s := range sales {
		out.Sales = append(out.Sales, *toSaleResponse(s))
		out.TotalRevenue = out.TotalRevenue.Add(s.TotalValue)
	}
	out.TotalSales = len(sales)
	return out, nil
}

// List devuelve todas las ventas.
func (uc *SaleUseCase) List() ([]dto.SaleResponse, error) {
	sales, err := uc.sales.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

// PerformanceDashboard agrega las ventas por vendedor.
func (uc *SaleUseCase) PerformanceDashboard() (*dto.PerformanceDashboardResponse, error) {
	sales, err := uc.sales.List()
	if err != nil {
		return nil, err
	}
	byVendedor := make(map[string]*dto.VendedorPerformance)
	order := make([]string, 0)
	totalRevenue := decimal.Zero
	for _, s := range sales {
		perf, ok := byVendedor[s.VendedorID]
		if !ok {
			perf = &dto.VendedorPerformance{
				VendedorID:   s.VendedorID,
				VendedorName: s.VendedorName,
				TotalRevenue: decimal.Zero,
			}
			byVendedor[s.VendedorID] = perf
			order = append(order, s.VendedorID)
		}
		perf.TotalSales++
		perf.TotalRevenue = perf.TotalRevenue.Add(s.TotalValue)
		totalRevenue = totalRevenue.Add(s.TotalValue)
	}
	resp := &dto.PerformanceDashboardResponse{
		Vendedores:   make([]dto.VendedorPerformance, 0, len(order)),
		TotalSales:   len(sales),
		TotalRevenue: totalRevenue,
	}
	for _, id := range order {
		resp.Vendedores = append(resp.Vendedores, *byVendedor[id])
	}
	return resp, nil
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		ClientID:      s.ClientID,
		ClientName:    s.ClientName,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice,
		TotalValue:    s.TotalValue,
		PaymentMethod: s.PaymentMethod,
		VendedorID:    s.VendedorID,
		VendedorName:  s.VendedorName,
		SaleDate:      s.SaleDate,
	}
}
