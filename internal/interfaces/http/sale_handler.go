package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/application/usecase"
)

// SaleHandler maneja las ventas de los vendedores.
type SaleHandler struct {
	uc *usecase.SaleUseCase
}

// NewSaleHandler construye el handler de ventas.
func NewSaleHandler(uc *usecase.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock si el producto lo controla y registra la entrada de caixa correspondiente.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateSaleRequest  true  "product_id, quantity, payment_method"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// MySales godoc
// @Summary      Ventas propias del vendedor autenticado
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MySalesResponse
// @Router       /api/sales/my-reports [get]
func (h *SaleHandler) MySales(c *fiber.Ctx) error {
	out, err := h.uc.MySales(GetActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar todas las ventas
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Performance godoc
// @Summary      Dashboard de desempeño por vendedor
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.PerformanceDashboardResponse
// @Router       /api/performance/dashboard [get]
func (h *SaleHandler) Performance(c *fiber.Ctx) error {
	out, err := h.uc.PerformanceDashboard()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
