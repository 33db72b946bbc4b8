package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pharmatrack/pharmatrack-api/internal/application/reporting"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DashboardUC *reporting.DashboardUseCase
	HistoryUC   *reporting.HistoryUseCase
	ExportUC    *reporting.ExportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas: requieren la sesión emitida por el servicio de cuentas
	protected := api.Group("/", SessionMiddleware(deps.JWTSecret))

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/analytics", dashboardHandler.GetAnalytics)

	// Historial por rango de fechas
	history := protected.Group("/history")
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	history.Get("/report", historyHandler.GetReport)

	// Exportación PDF
	reports := protected.Group("/reports")
	exportHandler := NewExportHandler(deps.ExportUC)
	reports.Get("/analytics.pdf", exportHandler.AnalyticsPDF)
	reports.Get("/history.pdf", exportHandler.HistoryPDF)
}
