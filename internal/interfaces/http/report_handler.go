package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caixa-api/internal/application/dto"
	"github.com/jhoicas/caixa-api/internal/application/report"
)

// ReportHandler genera reportes descargables.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// TransactionsPDF godoc
// @Summary      Reporte PDF de movimientos de caixa
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        from  query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        to    query  string  false  "fecha final YYYY-MM-DD (inclusiva)"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/transactions/pdf [get]
func (h *ReportHandler) TransactionsPDF(c *fiber.Ctx) error {
	from, err := queryDate(c.Query("from"), "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	to, err := queryDateEnd(c.Query("to"), "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	pdf, err := h.uc.TransactionsPDF(c.Context(), GetActor(c), from, to)
	if err != nil {
		return fail(c, err)
	}
	filename := fmt.Sprintf("movimentos-%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
