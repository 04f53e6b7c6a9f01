package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/caixa-api/internal/application/audit"
	"github.com/jhoicas/caixa-api/internal/application/auth"
	appbilling "github.com/jhoicas/caixa-api/internal/application/billing"
	"github.com/jhoicas/caixa-api/internal/application/ledger"
	"github.com/jhoicas/caixa-api/internal/application/report"
	"github.com/jhoicas/caixa-api/internal/application/usecase"
	"github.com/jhoicas/caixa-api/internal/domain/authz"
	"github.com/jhoicas/caixa-api/internal/domain/entity"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
	infrapdf "github.com/jhoicas/caixa-api/internal/infrastructure/pdf"
	"github.com/jhoicas/caixa-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/caixa-api/internal/interfaces/http"
	"github.com/jhoicas/caixa-api/pkg/config"
	"github.com/jhoicas/caixa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	installmentRepo := postgres.NewInstallmentRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	activityRepo := postgres.NewActivityLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := audit.NewRecorder(activityRepo, log)

	if err := seedAdmin(userRepo, cfg.Seed, log); err != nil {
		log.Fatal().Err(err).Msg("siembra del usuario admin")
	}

	authUC := auth.NewAuthUseCase(userRepo, recorder, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo, recorder, cfg.Seed.AdminUsername)
	productUC := usecase.NewProductUseCase(productRepo, recorder)
	clientUC := usecase.NewClientUseCase(clientRepo, recorder)
	saleUC := usecase.NewSaleUseCase(productRepo, clientRepo, saleRepo, txRunner, recorder)
	billingUC := appbilling.NewUseCase(
		clientRepo, productRepo, billRepo, installmentRepo, transactionRepo,
		txRunner, recorder,
	)
	transactionUC := ledger.NewTransactionUseCase(transactionRepo, installmentRepo, txRunner, recorder)
	activityUC := audit.NewQueryUseCase(activityRepo)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewUseCase(transactionRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Caixa API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		ProductUC:     productUC,
		ClientUC:      clientUC,
		SaleUC:        saleUC,
		BillingUC:     billingUC,
		TransactionUC: transactionUC,
		ActivityUC:    activityUC,
		ReportUC:      reportUC,
		Users:         userRepo,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// seedAdmin crea el usuario administrador inicial si no existe. La cuenta
// sembrada no puede eliminarse después desde la API.
func seedAdmin(users repository.UserRepository, seed config.SeedConfig, log *logger.Logger) error {
	existing, err := users.GetByUsername(seed.AdminUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	if seed.AdminPassword == "" {
		log.Warn().
			Str("username", seed.AdminUsername).
			Msg("ADMIN_PASSWORD no definido; se omite la siembra del admin")
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New().String(),
		Username:     seed.AdminUsername,
		Email:        seed.AdminEmail,
		PasswordHash: string(hash),
		Role:         authz.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(admin); err != nil {
		return err
	}
	log.Info().
		Str("username", admin.Username).
		Msg("usuario administrador inicial creado")
	return nil
}
