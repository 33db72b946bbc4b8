package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/pharmatrack/pharmatrack-api/internal/application/dto"
	"github.com/pharmatrack/pharmatrack-api/internal/application/reporting"
	"github.com/pharmatrack/pharmatrack-api/internal/domain"
)

// DashboardHandler maneja los endpoints del panel principal.
type DashboardHandler struct {
	uc *reporting.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reporting.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve las estadísticas agregadas del panel.
// GET /api/dashboard/summary
//
// Respuesta: SummaryResponse (totalProducts, totalStock, ordersToday,
// revenueToday, soonToExpireProducts, outOfStockProducts, lowStockProducts).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return upstreamError(c, err, "Failed to load dashboard data")
	}
	return c.JSON(summary)
}

// GetAnalytics devuelve los insights de ventas de los últimos 30 días.
// GET /api/dashboard/analytics
//
// Respuesta: AnalyticsResponse (bestSellers, slowMovers, unsold,
// categoryTotals, categoryShares, suggestion).
func (h *DashboardHandler) GetAnalytics(c *fiber.Ctx) error {
	analytics, err := h.uc.GetAnalytics(c.Context())
	if err != nil {
		return upstreamError(c, err, "Failed to load orders for analytics")
	}
	return c.JSON(analytics)
}

// upstreamError mapea un fallo del backend a una respuesta 502 con el mensaje
// que el panel muestra al usuario. Cualquier otro error es un 500 genérico.
func upstreamError(c *fiber.Ctx, err error, message string) error {
	if errors.Is(err, domain.ErrUpstreamOrders) || errors.Is(err, domain.ErrUpstreamProducts) {
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Code: "UPSTREAM_UNAVAILABLE", Message: message,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}
