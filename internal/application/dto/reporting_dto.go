package dto

import "github.com/pharmatrack/pharmatrack-api/internal/domain/report"

// Los campos JSON de estos DTOs son camelCase para ser compatibles con el
// wire format que el panel PharmaTrack ya consume (orderId, purchaseDate,
// totalAmount, etc.).

// ── Dashboard ─────────────────────────────────────────────────────────────────

// SummaryResponse respuesta de GET /api/dashboard/summary.
type SummaryResponse struct {
	report.Summary
	GeneratedAt string `json:"generatedAt"` // ISO-8601
}

// AnalyticsResponse respuesta de GET /api/dashboard/analytics.
// Los insights cubren la ventana móvil de los últimos 30 días.
type AnalyticsResponse struct {
	report.AnalyticsResult
	CategoryShares []report.CategoryShare `json:"categoryShares"`
	GeneratedAt    string                 `json:"generatedAt"`
}

// ── Historial ─────────────────────────────────────────────────────────────────

// HistoryReportRequest parámetros para GET /api/history/report.
// Se acepta un rango explícito (start + end, YYYY-MM-DD) o un preset.
// Sin rango ni preset, la respuesta es el estado vacío "seleccione un rango".
type HistoryReportRequest struct {
	Start  string `query:"start"`  // YYYY-MM-DD
	End    string `query:"end"`    // YYYY-MM-DD
	Preset string `query:"preset"` // today | last7 | month
}

// HistoryReportResponse respuesta de GET /api/history/report.
// Message acompaña los estados vacíos válidos (sin rango / sin órdenes) para
// distinguirlos de un fallo real del fetch, que viaja como ErrorResponse.
type HistoryReportResponse struct {
	report.HistoryReport
	Message string `json:"message,omitempty"`
}
