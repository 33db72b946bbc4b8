// Package reporting contiene los casos de uso del servicio de reportes:
// insights del dashboard, historial por rango de fechas y exportación PDF.
// Los datos viven en el backend de farmacia; estos casos de uso los obtienen
// vía los puertos de snapshot y delegan todo el cálculo al núcleo puro
// (internal/domain/report).
package reporting

import (
	"context"
	"time"

	"github.com/pharmatrack/pharmatrack-api/internal/domain/entity"
	"github.com/pharmatrack/pharmatrack-api/internal/domain/report"
)

// OrderSource puerto de entrada de órdenes (colaborador externo).
// Un fallo del fetch se reporta como error; el caso de uso decide si degrada
// a "sin datos" o lo propaga al cliente.
type OrderSource interface {
	// FetchRecentOrders devuelve la lista completa de órdenes recientes.
	FetchRecentOrders(ctx context.Context) ([]entity.Order, error)
}

// ProductSource puerto de entrada del catálogo vigente.
type ProductSource interface {
	// FetchProducts devuelve el snapshot actual del catálogo.
	FetchProducts(ctx context.Context) ([]entity.Product, error)
}

// SnapshotCache cache de respuestas calculadas (bytes JSON).
// Las implementaciones deben tratar la ausencia de clave como miss, no error.
type SnapshotCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// PDFGenerator puerto de salida para la exportación de reportes.
// Consume las estructuras calculadas en modo solo lectura; no debe mutarlas.
type PDFGenerator interface {
	GenerateAnalyticsPDF(ctx context.Context, result report.AnalyticsResult, generatedAt time.Time) ([]byte, error)
	GenerateHistoryPDF(ctx context.Context, rep report.HistoryReport, rangeLabel string, generatedAt time.Time) ([]byte, error)
}
