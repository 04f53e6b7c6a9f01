package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caixa-api/internal/application/billing"
	"github.com/jhoicas/caixa-api/internal/application/dto"
)

// BillHandler maneja las contas parceladas.
type BillHandler struct {
	uc *billing.UseCase
}

// NewBillHandler construye el handler de contas.
func NewBillHandler(uc *billing.UseCase) *BillHandler {
	return &BillHandler{uc: uc}
}

// Create godoc
// @Summary      Crear conta parcelada
// @Description  Con product_id el precio vigente del producto manda sobre total_amount; sin producto, total_amount es obligatorio.
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateBillRequest  true  "client_id, installment_count, product_id o total_amount"
// @Success      201   {object}  dto.BillResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bills [post]
func (h *BillHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBillRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateBill(GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar contas
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.BillResponse
// @Router       /api/bills [get]
func (h *BillHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListBills()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener conta con sus parcelas
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la conta"
// @Success      200  {object}  dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/installments [get]
func (h *BillHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetBill(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar conta
// @Description  Cancela la conta y todas sus parcelas, incluidas las ya pagas.
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la conta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/cancel [delete]
func (h *BillHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.CancelBill(GetActor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "conta cancelada"})
}

// PayAll godoc
// @Summary      Pagar todas las parcelas pendientes de una conta
// @Tags         bills
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la conta"
// @Param        body  body  dto.PayInstallmentRequest  true  "payment_method"
// @Success      200   {object}  dto.PayAllResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bills/{id}/pay-all [put]
func (h *BillHandler) PayAll(c *fiber.Ctx) error {
	var in dto.PayInstallmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.PayAllInstallments(GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ClientsWithBills godoc
// @Summary      Clientes con contas activas y su total pendiente
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.ClientWithBillsResponse
// @Router       /api/clients/with-bills [get]
func (h *BillHandler) ClientsWithBills(c *fiber.Ctx) error {
	out, err := h.uc.ClientsWithBills()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ClientPendingBills godoc
// @Summary      Contas activas con parcelas pendientes de un cliente
// @Tags         bills
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {array}   dto.BillResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id}/pending-bills [get]
func (h *BillHandler) ClientPendingBills(c *fiber.Ctx) error {
	out, err := h.uc.ClientPendingBills(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
