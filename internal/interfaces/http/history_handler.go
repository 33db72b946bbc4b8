package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pharmatrack/pharmatrack-api/internal/application/dto"
	"github.com/pharmatrack/pharmatrack-api/internal/application/reporting"
	"github.com/pharmatrack/pharmatrack-api/internal/domain"
)

// HistoryHandler maneja el reporte de historial de órdenes.
type HistoryHandler struct {
	uc *reporting.HistoryUseCase
}

// NewHistoryHandler construye el handler.
func NewHistoryHandler(uc *reporting.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// GetReport devuelve órdenes filtradas, totales y series por día.
// GET /api/history/report?start=YYYY-MM-DD&end=YYYY-MM-DD
// GET /api/history/report?preset=today|last7|month
//
// Sin rango ni preset responde 200 con el estado vacío "seleccione un rango";
// solo un fallo real del fetch produce un error HTTP.
func (h *HistoryHandler) GetReport(c *fiber.Ctx) error {
	var req dto.HistoryReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	rep, err := h.uc.GetReport(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRange) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_RANGE", Message: err.Error(),
			})
		}
		return upstreamError(c, err, "Failed to fetch order history")
	}
	return c.JSON(rep)
}
