package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/caixa-api/internal/application/audit"
	"github.com/jhoicas/caixa-api/internal/application/dto"
)

// ActivityHandler expone el historial de actividades (restricto al admin).
type ActivityHandler struct {
	uc *audit.QueryUseCase
}

// NewActivityHandler construye el handler del historial.
func NewActivityHandler(uc *audit.QueryUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// List godoc
// @Summary      Consultar historial de actividades
// @Description  Filtra por rango de fechas inclusivo, substring del nombre del actor (insensible a acentos) y tipo de acción exacto.
// @Tags         activity-logs
// @Produce      json
// @Security     BearerAuth
// @Param        start_date  query  string  false  "fecha inicial YYYY-MM-DD"
// @Param        end_date    query  string  false  "fecha final YYYY-MM-DD (inclusiva)"
// @Param        user_name   query  string  false  "substring del nombre del usuario"
// @Param        activity_type  query  string  false  "tipo de acción exacto"
// @Success      200  {array}   dto.ActivityLogResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/activity-logs [get]
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	start, err := queryDate(c.Query("start_date"), "start_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	end, err := queryDateEnd(c.Query("end_date"), "end_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.List(start, end, c.Query("user_name"), c.Query("activity_type"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
