package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pharmatrack/pharmatrack-api/internal/application/dto"
	"github.com/pharmatrack/pharmatrack-api/internal/domain"
	"github.com/pharmatrack/pharmatrack-api/internal/domain/entity"
	"github.com/pharmatrack/pharmatrack-api/internal/domain/report"
	"github.com/pharmatrack/pharmatrack-api/pkg/logger"
)

const analyticsCacheKey = "pharmatrack:dashboard:analytics"

// DashboardUseCase genera el resumen del panel y los insights de ventas a
// 30 días a partir de los snapshots del backend.
//
// Política de degradación (espejo del panel original):
//   - fetch de órdenes fallido → error al cliente ("Failed to load orders
//     for analytics"); nunca un crash;
//   - fetch de productos fallido → se continúa con catálogo vacío y los
//     nombres caen al id crudo.
type DashboardUseCase struct {
	orders   OrderSource
	products ProductSource
	cache    SnapshotCache
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	orders OrderSource,
	products ProductSource,
	cache SnapshotCache,
	cacheTTL time.Duration,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		orders:   orders,
		products: products,
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// GetAnalytics devuelve los insights de la ventana de 30 días.
// El resultado calculado se cachea con TTL corto; el cache es best-effort y
// cualquier fallo suyo degrada a recalcular.
func (uc *DashboardUseCase) GetAnalytics(ctx context.Context) (*dto.AnalyticsResponse, error) {
	if cached, ok, err := uc.cache.Get(ctx, analyticsCacheKey); err == nil && ok {
		var resp dto.AnalyticsResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		// entrada corrupta: se ignora y se recalcula
	} else if err != nil {
		uc.log.Warn().Err(err).Msg("cache de analítica no disponible")
	}

	orders, products, err := uc.fetchSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := report.ComputeAnalytics(orders, products, now)
	resp := &dto.AnalyticsResponse{
		AnalyticsResult: result,
		CategoryShares:  report.Shares(result.CategoryTotals),
		GeneratedAt:     now.Format(time.RFC3339),
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := uc.cache.Set(ctx, analyticsCacheKey, payload, uc.cacheTTL); err != nil {
			uc.log.Warn().Err(err).Msg("no se pudo cachear la analítica")
		}
	}
	return resp, nil
}

// GetSummary devuelve las estadísticas agregadas del panel.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.SummaryResponse, error) {
	orders, products, err := uc.fetchSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &dto.SummaryResponse{
		Summary:     report.ComputeSummary(orders, products, now),
		GeneratedAt: now.Format(time.RFC3339),
	}, nil
}

// fetchSnapshots consulta órdenes y catálogo en paralelo (llamadas independientes).
func (uc *DashboardUseCase) fetchSnapshots(ctx context.Context) ([]entity.Order, []entity.Product, error) {
	type ordersResult struct {
		orders []entity.Order
		err    error
	}
	type productsResult struct {
		products []entity.Product
		err      error
	}

	ordersCh := make(chan ordersResult, 1)
	productsCh := make(chan productsResult, 1)

	go func() {
		orders, err := uc.orders.FetchRecentOrders(ctx)
		ordersCh <- ordersResult{orders, err}
	}()
	go func() {
		products, err := uc.products.FetchProducts(ctx)
		productsCh <- productsResult{products, err}
	}()

	oRes := <-ordersCh
	pRes := <-productsCh

	if oRes.err != nil {
		return nil, nil, fmt.Errorf("dashboard: %w: %v", domain.ErrUpstreamOrders, oRes.err)
	}
	if pRes.err != nil {
		// catálogo no disponible: los nombres degradan al id crudo
		uc.log.Warn().Err(pRes.err).Msg("catálogo no disponible, se continúa sin productos")
		pRes.products = nil
	}
	return oRes.orders, pRes.products, nil
}
