package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caixa-api/internal/application/billing"
	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/domain/repository"
)

// InstallmentHandler maneja las parcelas.
type InstallmentHandler struct {
	uc *billing.UseCase
}

// NewInstallmentHandler construye el handler de parcelas.
func NewInstallmentHandler(uc *billing.UseCase) *InstallmentHandler {
	return &InstallmentHandler{uc: uc}
}

// ListPending godoc
// @Summary      Listar parcelas pendientes
// @Description  Parcelas pendientes de contas no canceladas, ordenadas por vencimiento. El filtro client_name es insensible a mayúsculas y acentos.
// @Tags         installments
// @Produce      json
// @Security     BearerAuth
// @Param        overdue      query  bool    false  "solo vencidas"
// @Param        month        query  int     false  "mes de vencimiento (1-12)"
// @Param        year         query  int     false  "año de vencimiento"
// @Param        client_name  query  string  false  "substring del nombre del cliente"
// @Success      200  {array}   dto.PendingInstallmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/installments/pending [get]
func (h *InstallmentHandler) ListPending(c *fiber.Ctx) error {
	month, err := queryInt(c.Query("month"), "month")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	year, err := queryInt(c.Query("year"), "year")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	filter := repository.PendingFilter{
		OverdueOnly: c.QueryBool("overdue"),
		Month:       month,
		Year:        year,
	}
	out, err := h.uc.ListPendingInstallments(filter, c.Query("client_name"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Pagar una parcela
// @Description  Marca la parcela como paga y registra el movimiento pagamento_cliente ligado.
// @Tags         installments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string  true  "ID de la parcela"
// @Param        body  body  dto.PayInstallmentRequest  true  "payment_method"
// @Success      200   {object}  dto.InstallmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/installments/{id}/pay [put]
func (h *InstallmentHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayInstallmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.PayInstallment(GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// CancelPayment godoc
// @Summary      Revertir el pago de una parcela
// @Description  Vuelve la parcela a pendiente y cancela el movimiento de caixa ligado.
// @Tags         installments
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID de la parcela"
// @Success      200  {object}  dto.InstallmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/installments/{id}/cancel-payment [put]
func (h *InstallmentHandler) CancelPayment(c *fiber.Ctx) error {
	out, err := h.uc.CancelInstallmentPayment(GetActor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
