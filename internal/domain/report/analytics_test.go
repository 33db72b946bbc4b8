package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmatrack/pharmatrack-api/internal/domain/entity"
	"github.com/pharmatrack/pharmatrack-api/internal/domain/report"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// testNow instante fijo para que la ventana de 30 días sea determinista.
var testNow = time.Date(2024, 3, 10, 15, 30, 0, 0, time.Local)

func isoDaysAgo(days int) string {
	return testNow.AddDate(0, 0, -days).Format(time.RFC3339)
}

func order(productID, name string, qty int, purchaseDate string) entity.Order {
	return entity.Order{
		OrderID:      "ord-" + productID + "-" + purchaseDate,
		ProductID:    productID,
		Product:      name,
		Quantity:     qty,
		TotalAmount:  decimal.NewFromInt(int64(qty * 10)),
		PurchaseDate: purchaseDate,
	}
}

func product(id, name, category string) entity.Product {
	return entity.Product{
		ID:       id,
		Name:     name,
		Category: entity.CategoryRef{Name: category},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación best seller / baja rotación
// ──────────────────────────────────────────────────────────────────────────────

// TestComputeAnalytics_EscenarioBase reproduce el escenario de referencia:
// A vende 45 (best seller, umbral 40) y B vende 10 (baja rotación, tope 20).
// Las órdenes vienen sin productId, como las registra el backend antiguo,
// y se resuelven por nombre contra el catálogo.
func TestComputeAnalytics_EscenarioBase(t *testing.T) {
	orders := []entity.Order{
		{OrderID: "o1", Product: "A", Quantity: 45, PurchaseDate: isoDaysAgo(0)},
		{OrderID: "o2", Product: "B", Quantity: 10, PurchaseDate: isoDaysAgo(0)},
	}
	products := []entity.Product{
		product("pA", "A", "Antibiotics"),
		product("pB", "B", "Vitamins"),
	}

	result := report.ComputeAnalytics(orders, products, testNow)

	require.Len(t, result.BestSellers, 1)
	assert.Equal(t, report.RankedProduct{ProductID: "pA", Product: "A", Qty: 45}, result.BestSellers[0])

	require.Len(t, result.SlowMovers, 1)
	assert.Equal(t, report.RankedProduct{ProductID: "pB", Product: "B", Qty: 10}, result.SlowMovers[0])
}

// TestComputeAnalytics_SinOrdenes valida el estado vacío completo.
func TestComputeAnalytics_SinOrdenes(t *testing.T) {
	result := report.ComputeAnalytics(nil, []entity.Product{product("p1", "X", "")}, testNow)

	assert.Empty(t, result.BestSellers)
	assert.Empty(t, result.SlowMovers)
	assert.Empty(t, result.Unsold)
	assert.Empty(t, result.CategoryTotals)
	assert.Equal(t, "No data yet.", result.Suggestion)
}

// TestComputeAnalytics_OrdenDeRankings best sellers descendente, baja
// rotación ascendente (el más lento primero).
func TestComputeAnalytics_OrdenDeRankings(t *testing.T) {
	orders := []entity.Order{
		order("p1", "Uno", 50, isoDaysAgo(1)),
		order("p2", "Dos", 80, isoDaysAgo(2)),
		order("p3", "Tres", 15, isoDaysAgo(3)),
		order("p4", "Cuatro", 3, isoDaysAgo(4)),
	}
	products := []entity.Product{
		product("p1", "Uno", "C1"),
		product("p2", "Dos", "C1"),
		product("p3", "Tres", "C2"),
		product("p4", "Cuatro", "C2"),
	}

	result := report.ComputeAnalytics(orders, products, testNow)

	require.Len(t, result.BestSellers, 2)
	assert.Equal(t, "Dos", result.BestSellers[0].Product, "el mayor vendido va primero")
	assert.Equal(t, "Uno", result.BestSellers[1].Product)

	require.Len(t, result.SlowMovers, 2)
	assert.Equal(t, "Cuatro", result.SlowMovers[0].Product, "el más lento va primero")
	assert.Equal(t, "Tres", result.SlowMovers[1].Product)
}

// TestComputeAnalytics_ConjuntosDisjuntos un producto nunca aparece a la vez
// como best seller y como baja rotación.
func TestComputeAnalytics_ConjuntosDisjuntos(t *testing.T) {
	orders := []entity.Order{
		order("p1", "Uno", 45, isoDaysAgo(1)),
		order("p2", "Dos", 20, isoDaysAgo(1)),
		order("p3", "Tres", 40, isoDaysAgo(1)),
	}
	products := []entity.Product{
		product("p1", "Uno", ""),
		product("p2", "Dos", ""),
		product("p3", "Tres", ""),
	}

	result := report.ComputeAnalytics(orders, products, testNow)

	best := make(map[string]bool)
	for _, b := range result.BestSellers {
		best[b.ProductID] = true
	}
	for _, s := range result.SlowMovers {
		assert.False(t, best[s.ProductID], "producto %s clasificado en ambos conjuntos", s.ProductID)
	}
}

// TestComputeAnalytics_AcumulaPorProducto varias órdenes del mismo producto
// suman sus cantidades dentro de la ventana.
func TestComputeAnalytics_AcumulaPorProducto(t *testing.T) {
	orders := []entity.Order{
		order("p1", "Uno", 25, isoDaysAgo(5)),
		order("p1", "Uno", 20, isoDaysAgo(10)),
	}
	products := []entity.Product{product("p1", "Uno", "")}

	result := report.ComputeAnalytics(orders, products, testNow)

	require.Len(t, result.BestSellers, 1)
	assert.Equal(t, 45, result.BestSellers[0].Qty)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana de 30 días y resolución de productos
// ──────────────────────────────────────────────────────────────────────────────

// TestComputeAnalytics_FueraDeVentana las órdenes viejas no aportan al ranking.
func TestComputeAnalytics_FueraDeVentana(t *testing.T) {
	orders := []entity.Order{
		order("p1", "Uno", 100, isoDaysAgo(45)), // fuera de la ventana
		order("p1", "Uno", 5, isoDaysAgo(2)),
	}
	products := []entity.Product{product("p1", "Uno", "")}

	result := report.ComputeAnalytics(orders, products, testNow)

	assert.Empty(t, result.BestSellers, "la venta de hace 45 días no debe contar")
	require.Len(t, result.SlowMovers, 1)
	assert.Equal(t, 5, result.SlowMovers[0].Qty)
}

// TestComputeAnalytics_ProductoEliminado una orden de un producto que ya no
// existe en el catálogo no aporta cantidades ni produce pánico.
func TestComputeAnalytics_ProductoEliminado(t *testing.T) {
	orders := []entity.Order{
		order("desaparecido", "Borrado", 99, isoDaysAgo(1)),
		order("p1", "Uno", 45, isoDaysAgo(1)),
	}
	products := []entity.Product{product("p1", "Uno", "C1")}

	result := report.ComputeAnalytics(orders, products, testNow)

	require.Len(t, result.BestSellers, 1)
	assert.Equal(t, "p1", result.BestSellers[0].ProductID)
	assert.Empty(t, result.SlowMovers)
	require.Len(t, result.CategoryTotals, 1)
	assert.Equal(t, 45, result.CategoryTotals[0].TotalQty, "el producto eliminado no suma a categorías")
}

// TestComputeAnalytics_ResolucionPorNombre una orden con productId obsoleto
// se resuelve por nombre contra el catálogo vigente.
func TestComputeAnalytics_ResolucionPorNombre(t *testing.T) {
	orders := []entity.Order{
		order("id-viejo", "Paracetamol", 45, isoDaysAgo(1)),
	}
	products := []entity.Product{product("id-nuevo", "Paracetamol", "Analgesics")}

	result := report.ComputeAnalytics(orders, products, testNow)

	require.Len(t, result.BestSellers, 1)
	assert.Equal(t, "id-nuevo", result.BestSellers[0].ProductID, "debe acumular bajo el id vigente")
}

// TestComputeAnalytics_FechaMalformada la orden con fecha no parseable se
// descarta en silencio sin abortar el agregado.
func TestComputeAnalytics_FechaMalformada(t *testing.T) {
	orders := []entity.Order{
		order("p1", "Uno", 45, "no-es-una-fecha"),
		order("p2", "Dos", 45, isoDaysAgo(1)),
	}
	products := []entity.Product{
		product("p1", "Uno", ""),
		product("p2", "Dos", ""),
	}

	result := report.ComputeAnalytics(orders, products, testNow)

	require.Len(t, result.BestSellers, 1)
	assert.Equal(t, "p2", result.BestSellers[0].ProductID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos sin ventas (historial completo, no solo la ventana)
// ──────────────────────────────────────────────────────────────────────────────

// TestComputeAnalytics_SinVentas un producto anterior a la ventana y sin
// órdenes en TODO el historial aparece como inactivo.
func TestComputeAnalytics_SinVentas(t *testing.T) {
	antiguo := product("p-viejo", "Jarabe", "Syrups")
	antiguo.CreatedAt = isoDaysAgo(90)

	vendidoHaceMucho := product("p-hist", "Gasa", "Supplies")
	vendidoHaceMucho.CreatedAt = isoDaysAgo(90)

	reciente := product("p-nuevo", "Crema", "Topicals")
	reciente.CreatedAt = isoDaysAgo(5)

	orders := []entity.Order{
		// venta fuera de la ventana: excluye del listado de inactivos aunque
		// no aporte al ranking de 30 días
		order("p-hist", "Gasa", 2, isoDaysAgo(60)),
	}
	products := []entity.Product{antiguo, vendidoHaceMucho, reciente}

	result := report.ComputeAnalytics(orders, products, testNow)

	require.Len(t, result.Unsold, 1)
	assert.Equal(t, report.UnsoldProduct{ProductID: "p-viejo", Product: "Jarabe"}, result.Unsold[0])
}

// TestComputeAnalytics_SinVentasPorNombre la clave de venta por nombre también
// excluye al producto del listado de inactivos.
func TestComputeAnalytics_SinVentasPorNombre(t *testing.T) {
	p := product("p1", "Alcohol", "Supplies")
	p.CreatedAt = isoDaysAgo(90)

	orders := []entity.Order{
		{OrderID: "o1", Product: "Alcohol", Quantity: 1, PurchaseDate: isoDaysAgo(60)},
	}

	result := report.ComputeAnalytics(orders, []entity.Product{p}, testNow)
	assert.Empty(t, result.Unsold, "la venta registrada por nombre debe excluirlo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

// TestComputeAnalytics_CategoriasAgregadas suma por categoría con orden
// descendente y fallback "Uncategorized".
func TestComputeAnalytics_CategoriasAgregadas(t *testing.T) {
	orders := []entity.Order{
		order("p1", "Uno", 30, isoDaysAgo(1)),
		order("p2", "Dos", 20, isoDaysAgo(1)),
		order("p3", "Tres", 5, isoDaysAgo(1)),
	}
	products := []entity.Product{
		product("p1", "Uno", "Antibiotics"),
		product("p2", "Dos", "Antibiotics"),
		product("p3", "Tres", ""), // sin categoría
	}

	result := report.ComputeAnalytics(orders, products, testNow)

	require.Len(t, result.CategoryTotals, 2)
	assert.Equal(t, report.CategoryTotal{Category: "Antibiotics", TotalQty: 50}, result.CategoryTotals[0])
	assert.Equal(t, report.CategoryTotal{Category: "Uncategorized", TotalQty: 5}, result.CategoryTotals[1])
}

// TestShares_DenominadorCero sin cantidades, las participaciones quedan en 0
// sin dividir por cero.
func TestShares_DenominadorCero(t *testing.T) {
	shares := report.Shares([]report.CategoryTotal{{Category: "C1", TotalQty: 0}})
	require.Len(t, shares, 1)
	assert.Zero(t, shares[0].Pct)
}

func TestShares_Porcentajes(t *testing.T) {
	shares := report.Shares([]report.CategoryTotal{
		{Category: "C1", TotalQty: 75},
		{Category: "C2", TotalQty: 25},
	})
	require.Len(t, shares, 2)
	assert.InDelta(t, 75.0, shares[0].Pct, 0.001)
	assert.InDelta(t, 25.0, shares[1].Pct, 0.001)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sugerencia textual
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeAnalytics_SugerenciaCompleta(t *testing.T) {
	viejo := product("p-viejo", "Jarabe", "")
	viejo.CreatedAt = isoDaysAgo(90)

	orders := []entity.Order{
		order("p1", "Amoxicillin", 45, isoDaysAgo(1)),
		order("p2", "Ibuprofen", 10, isoDaysAgo(1)),
	}
	products := []entity.Product{
		product("p1", "Amoxicillin", ""),
		product("p2", "Ibuprofen", ""),
		viejo,
	}

	result := report.ComputeAnalytics(orders, products, testNow)

	assert.Equal(t,
		"Top product: Amoxicillin (45 sold last 30d). Monitor slow movers: Ibuprofen. Consider promotion / discount: Jarabe.",
		result.Suggestion)
}

// TestComputeAnalytics_SugerenciaVentasSanas con best sellers y sin baja
// rotación ni inactivos, la sugerencia reporta distribución saludable.
func TestComputeAnalytics_SugerenciaVentasSanas(t *testing.T) {
	orders := []entity.Order{order("p1", "Uno", 50, isoDaysAgo(1))}
	products := []entity.Product{product("p1", "Uno", "")}

	result := report.ComputeAnalytics(orders, products, testNow)

	assert.Equal(t,
		"Top product: Uno (50 sold last 30d). Overall healthy sales distribution.",
		result.Suggestion)
}

// TestComputeAnalytics_SugerenciaSinHallazgos hay órdenes pero ninguna clase
// produce texto (cantidades intermedias): fallback de datos insuficientes.
func TestComputeAnalytics_SugerenciaSinHallazgos(t *testing.T) {
	orders := []entity.Order{order("p1", "Uno", 30, isoDaysAgo(1))} // ni best ni slow
	products := []entity.Product{product("p1", "Uno", "")}

	result := report.ComputeAnalytics(orders, products, testNow)

	assert.Equal(t, "Insufficient data for suggestions.", result.Suggestion)
}

// TestComputeAnalytics_SugerenciaConElipsis con más de 2 lentos y más de 3
// inactivos los listados se truncan con elipsis.
func TestComputeAnalytics_SugerenciaConElipsis(t *testing.T) {
	products := []entity.Product{
		product("p1", "A1", ""),
		product("p2", "A2", ""),
		product("p3", "A3", ""),
	}
	for i := 1; i <= 4; i++ {
		p := product(
			"inactivo-"+string(rune('0'+i)),
			"Viejo"+string(rune('0'+i)),
			"",
		)
		p.CreatedAt = isoDaysAgo(90)
		products = append(products, p)
	}
	orders := []entity.Order{
		order("p1", "A1", 1, isoDaysAgo(1)),
		order("p2", "A2", 2, isoDaysAgo(1)),
		order("p3", "A3", 3, isoDaysAgo(1)),
	}

	result := report.ComputeAnalytics(orders, products, testNow)

	assert.Equal(t,
		"Monitor slow movers: A1, A2…. Consider promotion / discount: Viejo1, Viejo2, Viejo3….",
		result.Suggestion)
}
