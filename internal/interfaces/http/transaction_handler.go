package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caixa-api/internal/application/billing"
	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/application/ledger"
)

// TransactionHandler maneja los movimientos de caixa.
type TransactionHandler struct {
	uc      *ledger.TransactionUseCase
	billing *billing.UseCase
}

// NewTransactionHandler construye el handler de movimientos.
func NewTransactionHandler(uc *ledger.TransactionUseCase, billingUC *billing.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc, billing: billingUC}
}

// Create godoc
// @Summary      Registrar movimiento de caixa
// @Description  Solo entrada o saida; los movimientos pagamento_cliente nacen del pago de parcelas. Las saídas admiten únicamente dinheiro o pix.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTransactionRequest  true  "type, amount, description, payment_method"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        to    query  string  false  "fecha final YYYY-MM-DD (inclusiva)"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	from, err := queryDate(c.Query("from"), "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := queryDateEnd(c.Query("to"), "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.List(from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de caixa (entradas, saídas, saldo)
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        to    query  string  false  "fecha final YYYY-MM-DD (inclusiva)"
// @Success      200  {object}  dto.TransactionSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/transactions/summary [get]
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	from, err := queryDate(c.Query("from"), "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := queryDateEnd(c.Query("to"), "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Summary(from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar movimiento
// @Description  El movimiento queda marcado como cancelado, nunca se borra. Si era un pagamento_cliente ligado a una parcela, la parcela vuelve a pendiente.
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(GetActor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ClientPayment godoc
// @Summary      Registrar pago de cliente
// @Description  Asigna el pago a la parcela pendiente que vence primero entre las contas no canceladas del cliente, opcionalmente restringida a un producto.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ClientPaymentRequest  true  "client_id, payment_method, product_id opcional"
// @Success      201   {object}  dto.ClientPaymentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transactions/client-payment [post]
func (h *TransactionHandler) ClientPayment(c *fiber.Ctx) error {
	var in dto.ClientPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.billing.ClientPayment(GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
