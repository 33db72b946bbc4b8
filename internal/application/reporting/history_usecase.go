package reporting

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pharmatrack/pharmatrack-api/internal/application/dto"
	"github.com/pharmatrack/pharmatrack-api/internal/domain"
	"github.com/pharmatrack/pharmatrack-api/internal/domain/report"
	"github.com/pharmatrack/pharmatrack-api/pkg/logger"
)

// HistoryUseCase genera el reporte de historial de órdenes por rango de días.
type HistoryUseCase struct {
	orders OrderSource
	log    *logger.Logger
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(orders OrderSource, log *logger.Logger) *HistoryUseCase {
	return &HistoryUseCase{orders: orders, log: log}
}

// GetReport obtiene las órdenes y calcula el reporte para el rango pedido.
// Un rango ausente no es un error: responde el reporte vacío con su mensaje
// propio, distinto del mensaje de fallo del fetch.
func (uc *HistoryUseCase) GetReport(ctx context.Context, req dto.HistoryReportRequest) (*dto.HistoryReportResponse, error) {
	rng, err := ResolveRange(req, time.Now())
	if err != nil {
		return nil, err
	}

	orders, err := uc.orders.FetchRecentOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("history: %w: %v", domain.ErrUpstreamOrders, err)
	}

	rep := report.ComputeHistoryReport(orders, rng)

	resp := &dto.HistoryReportResponse{HistoryReport: rep}
	switch {
	case !rng.Complete():
		resp.Message = "Select a date range to view orders"
	case rep.Count == 0:
		resp.Message = "No orders for the selected range"
	}
	return resp, nil
}

// ResolveRange interpreta los parámetros de rango de la petición.
// El preset tiene prioridad; sin preset se parsean start/end (YYYY-MM-DD,
// calendario local). Parámetros ausentes dejan el rango incompleto, que es
// un estado válido.
func ResolveRange(req dto.HistoryReportRequest, now time.Time) (report.Range, error) {
	switch strings.ToLower(req.Preset) {
	case "today":
		return report.Today(now), nil
	case "last7":
		return report.Last7Days(now), nil
	case "month":
		return report.ThisMonth(now), nil
	case "":
		// sin preset: rango explícito
	default:
		return report.Range{}, fmt.Errorf("%w: preset desconocido %q", domain.ErrInvalidRange, req.Preset)
	}

	var rng report.Range
	if req.Start != "" {
		start, err := time.ParseInLocation("2006-01-02", req.Start, time.Local)
		if err != nil {
			return report.Range{}, fmt.Errorf("%w: start %q", domain.ErrInvalidRange, req.Start)
		}
		rng.Start = &start
	}
	if req.End != "" {
		end, err := time.ParseInLocation("2006-01-02", req.End, time.Local)
		if err != nil {
			return report.Range{}, fmt.Errorf("%w: end %q", domain.ErrInvalidRange, req.End)
		}
		rng.End = &end
	}
	return rng, nil
}
