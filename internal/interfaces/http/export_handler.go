package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pharmatrack/pharmatrack-api/internal/application/dto"
	"github.com/pharmatrack/pharmatrack-api/internal/application/reporting"
	"github.com/pharmatrack/pharmatrack-api/internal/domain"
)

// ExportHandler entrega los reportes PDF descargables.
type ExportHandler struct {
	uc *reporting.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *reporting.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// AnalyticsPDF genera y descarga el reporte de insights de 30 días.
// GET /api/reports/analytics.pdf
func (h *ExportHandler) AnalyticsPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.AnalyticsPDF(c.Context())
	if err != nil {
		return upstreamError(c, err, "Failed to load orders for analytics")
	}
	return sendPDF(c, pdfBytes, filename)
}

// HistoryPDF genera y descarga el reporte de historial para el rango pedido.
// GET /api/reports/history.pdf?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *ExportHandler) HistoryPDF(c *fiber.Ctx) error {
	var req dto.HistoryReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_PARAMS", Message: "parámetros de consulta inválidos",
		})
	}

	pdfBytes, filename, err := h.uc.HistoryPDF(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRange) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code: "INVALID_RANGE", Message: err.Error(),
			})
		}
		return upstreamError(c, err, "Failed to fetch order history")
	}
	return sendPDF(c, pdfBytes, filename)
}

func sendPDF(c *fiber.Ctx, pdfBytes []byte, filename string) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
