package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pharmatrack/pharmatrack-api/internal/application/dto"
	"github.com/pharmatrack/pharmatrack-api/internal/domain"
	"github.com/pharmatrack/pharmatrack-api/internal/domain/report"
	"github.com/pharmatrack/pharmatrack-api/pkg/logger"
)

// ExportUseCase genera los reportes PDF descargables.
// Lee los mismos snapshots que el dashboard y el historial, recalcula el
// resultado y lo entrega al generador PDF en modo solo lectura.
type ExportUseCase struct {
	orders   OrderSource
	products ProductSource
	pdf      PDFGenerator
	log      *logger.Logger
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(
	orders OrderSource,
	products ProductSource,
	pdf PDFGenerator,
	log *logger.Logger,
) *ExportUseCase {
	return &ExportUseCase{orders: orders, products: products, pdf: pdf, log: log}
}

// AnalyticsPDF genera el reporte de insights de los últimos 30 días.
// Devuelve los bytes del documento y el nombre de archivo sugerido.
func (uc *ExportUseCase) AnalyticsPDF(ctx context.Context) ([]byte, string, error) {
	orders, err := uc.orders.FetchRecentOrders(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("export: %w: %v", domain.ErrUpstreamOrders, err)
	}
	products, err := uc.products.FetchProducts(ctx)
	if err != nil {
		// mismo criterio que el dashboard: sin catálogo los nombres degradan
		uc.log.Warn().Err(err).Msg("catálogo no disponible para el PDF de analítica")
		products = nil
	}

	now := time.Now()
	result := report.ComputeAnalytics(orders, products, now)

	pdfBytes, err := uc.pdf.GenerateAnalyticsPDF(ctx, result, now)
	if err != nil {
		return nil, "", fmt.Errorf("export: generar PDF de analítica: %w", err)
	}

	reportID := uuid.NewString()
	filename := fmt.Sprintf("PharmaTrack-Analytics-%d.pdf", now.UnixMilli())
	uc.log.Info().
		Str("report_id", reportID).
		Str("filename", filename).
		Int("best_sellers", len(result.BestSellers)).
		Int("slow_movers", len(result.SlowMovers)).
		Msg("reporte de analítica generado")
	return pdfBytes, filename, nil
}

// HistoryPDF genera el reporte PDF del historial para el rango pedido.
func (uc *ExportUseCase) HistoryPDF(ctx context.Context, req dto.HistoryReportRequest) ([]byte, string, error) {
	rng, err := ResolveRange(req, time.Now())
	if err != nil {
		return nil, "", err
	}

	orders, err := uc.orders.FetchRecentOrders(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("export: %w: %v", domain.ErrUpstreamOrders, err)
	}

	now := time.Now()
	rep := report.ComputeHistoryReport(orders, rng)

	pdfBytes, err := uc.pdf.GenerateHistoryPDF(ctx, rep, rangeLabel(rng), now)
	if err != nil {
		return nil, "", fmt.Errorf("export: generar PDF de historial: %w", err)
	}

	reportID := uuid.NewString()
	filename := fmt.Sprintf("PharmaTrack-History-%d.pdf", now.UnixMilli())
	uc.log.Info().
		Str("report_id", reportID).
		Str("filename", filename).
		Int("orders", rep.Count).
		Msg("reporte de historial generado")
	return pdfBytes, filename, nil
}

// rangeLabel etiqueta legible del rango para el encabezado del PDF.
func rangeLabel(rng report.Range) string {
	if !rng.Complete() {
		return "No range selected"
	}
	start := report.StartOfDay(*rng.Start)
	end := report.StartOfDay(*rng.End)
	if start.After(end) {
		start, end = end, start
	}
	return fmt.Sprintf("%s to %s", report.DayKey(start), report.DayKey(end))
}
