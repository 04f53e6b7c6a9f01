package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caixa-api/internal/application/audit"
	"github.com/jhoicas/caixa-api/internal/application/auth"
	"github.com/jhoicas/caixa-api/internal/application/billing"
	"github.com/jhoicas/caixa-api/internal/application/ledger"
	"github.com/jhoicas/caixa-api/internal/application/report"
	"github.com/jhoicas/caixa-api/internal/application/usecase"
	"github.com/jhoicas/caixa-api/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	ClientUC      *usecase.ClientUseCase
	SaleUC        *usecase.SaleUseCase
	BillingUC     *billing.UseCase
	TransactionUC *ledger.TransactionUseCase
	ActivityUC    *audit.QueryUseCase
	ReportUC      *report.UseCase
	Users         actorLoader
	JWTSecret     string
}

// Router registra las rutas de la API. Cada endpoint protegido declara su
// acción de la matriz de permisos; el cambio de contraseña propio solo exige
// autenticación.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público; me y change-password solo autenticados)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas: Bearer Token + usuario resuelto contra la DB
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), LoadActor(deps.Users))

	protectedAuth := protected.Group("/auth")
	protectedAuth.Get("/me", authHandler.Me)
	protectedAuth.Post("/change-password", authHandler.ChangePassword)

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", RequireAction(authz.ActionUserCreate), userHandler.Create)
	users.Get("/", RequireAction(authz.ActionUserList), userHandler.List)
	users.Put("/:id", RequireAction(authz.ActionUserUpdate), userHandler.Update)
	users.Delete("/:id", RequireAction(authz.ActionUserDelete), userHandler.Delete)
	users.Post("/:id/reset-password", RequireAction(authz.ActionUserResetPassword), userHandler.ResetPassword)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireAction(authz.ActionProductCreate), productHandler.Create)
	products.Get("/", RequireAction(authz.ActionProductView), productHandler.List)
	products.Get("/:id", RequireAction(authz.ActionProductView), productHandler.GetByID)
	products.Put("/:id", RequireAction(authz.ActionProductUpdate), productHandler.Update)
	products.Delete("/:id", RequireAction(authz.ActionProductDelete), productHandler.Delete)

	// Clients (las rutas fijas van antes de /:id)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	billHandler := NewBillHandler(deps.BillingUC)
	clients.Get("/with-bills", RequireAction(authz.ActionBillView), billHandler.ClientsWithBills)
	clients.Post("/", RequireAction(authz.ActionClientCreate), clientHandler.Create)
	clients.Get("/", RequireAction(authz.ActionClientView), clientHandler.List)
	clients.Get("/:id", RequireAction(authz.ActionClientView), clientHandler.GetByID)
	clients.Put("/:id", RequireAction(authz.ActionClientUpdate), clientHandler.Update)
	clients.Get("/:id/pending-bills", RequireAction(authz.ActionBillView), billHandler.ClientPendingBills)

	// Bills
	bills := protected.Group("/bills")
	bills.Post("/", RequireAction(authz.ActionBillCreate), billHandler.Create)
	bills.Get("/", RequireAction(authz.ActionBillView), billHandler.List)
	bills.Get("/:id/installments", RequireAction(authz.ActionBillView), billHandler.GetByID)
	bills.Delete("/:id/cancel", RequireAction(authz.ActionBillCancel), billHandler.Cancel)
	bills.Put("/:id/pay-all", RequireAction(authz.ActionInstallmentPay), billHandler.PayAll)

	// Installments
	installments := protected.Group("/installments")
	installmentHandler := NewInstallmentHandler(deps.BillingUC)
	installments.Get("/pending", RequireAction(authz.ActionBillView), installmentHandler.ListPending)
	installments.Put("/:id/pay", RequireAction(authz.ActionInstallmentPay), installmentHandler.Pay)
	installments.Put("/:id/cancel-payment", RequireAction(authz.ActionInstallmentPay), installmentHandler.CancelPayment)

	// Transactions
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC, deps.BillingUC)
	transactions.Get("/summary", RequireAction(authz.ActionTransactionView), transactionHandler.Summary)
	transactions.Post("/client-payment", RequireAction(authz.ActionClientPayment), transactionHandler.ClientPayment)
	transactions.Post("/", RequireAction(authz.ActionTransactionCreate), transactionHandler.Create)
	transactions.Get("/", RequireAction(authz.ActionTransactionView), transactionHandler.List)
	transactions.Delete("/:id", RequireAction(authz.ActionTransactionCancel), transactionHandler.Cancel)

	// Sales
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/my-reports", RequireAction(authz.ActionSaleOwnReport), saleHandler.MySales)
	sales.Post("/", RequireAction(authz.ActionSaleCreate), saleHandler.Create)
	sales.Get("/", RequireAction(authz.ActionReportView), saleHandler.List)
	protected.Get("/performance/dashboard", RequireAction(authz.ActionDashboardView), saleHandler.Performance)

	// Activity logs (solo admin por la matriz)
	activity := protected.Group("/activity-logs")
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activity.Get("/", RequireAction(authz.ActionActivityLogView), activityHandler.List)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/transactions/pdf", RequireAction(authz.ActionReportView), reportHandler.TransactionsPDF)
}
