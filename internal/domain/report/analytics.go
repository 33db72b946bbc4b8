package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pharmatrack/pharmatrack-api/internal/domain/entity"
)

const (
	// analyticsWindowDays ventana móvil de la analítica del dashboard.
	analyticsWindowDays = 30
	// bestSellerThreshold unidades vendidas en la ventana para calificar
	// como best seller (umbral fijo del negocio).
	bestSellerThreshold = 40
	// slowMoverMax tope inclusivo de unidades para clasificar como producto
	// de baja rotación.
	slowMoverMax = 20
)

// RankedProduct producto con su cantidad vendida en la ventana de análisis.
type RankedProduct struct {
	ProductID string `json:"productId"`
	Product   string `json:"product"`
	Qty       int    `json:"qty"`
}

// UnsoldProduct producto del catálogo sin ventas en todo el historial.
type UnsoldProduct struct {
	ProductID string `json:"productId"`
	Product   string `json:"product"`
}

// CategoryTotal cantidad agregada por categoría en la ventana de análisis.
type CategoryTotal struct {
	Category string `json:"category"`
	TotalQty int    `json:"totalQty"`
}

// CategoryShare participación porcentual de una categoría sobre el total.
type CategoryShare struct {
	Category string  `json:"category"`
	TotalQty int     `json:"totalQty"`
	Pct      float64 `json:"pct"`
}

// AnalyticsResult insights de ventas de los últimos 30 días.
// Es una función pura de (orders, products, now); se recalcula completo en
// cada invocación y no retiene estado entre llamadas.
type AnalyticsResult struct {
	BestSellers    []RankedProduct `json:"bestSellers"`
	SlowMovers     []RankedProduct `json:"slowMovers"`
	Unsold         []UnsoldProduct `json:"unsold"`
	CategoryTotals []CategoryTotal `json:"categoryTotals"`
	Suggestion     string          `json:"suggestion"`
}

// ComputeAnalytics agrega las órdenes de los últimos 30 días contra el
// catálogo vigente y produce best sellers, productos de baja rotación,
// productos nunca vendidos, totales por categoría y una sugerencia textual.
//
// Reglas:
//   - Solo las órdenes cuyo producto se resuelve contra el catálogo actual
//     aportan cantidades; las de productos eliminados se descartan.
//   - Best seller: ≥ 40 unidades en la ventana, orden descendente.
//   - Baja rotación: entre 1 y 20 unidades, excluyendo best sellers,
//     orden ascendente (el más lento primero).
//   - Sin ventas: producto dado de alta antes de la ventana y sin ninguna
//     orden en TODO el historial (por id o por nombre). La asimetría con la
//     ventana de 30 días es intencional: distingue "nunca vendió" de
//     "no vende últimamente".
//   - Fechas malformadas descartan solo esa orden.
func ComputeAnalytics(orders []entity.Order, products []entity.Product, now time.Time) AnalyticsResult {
	if len(orders) == 0 {
		return AnalyticsResult{
			BestSellers:    []RankedProduct{},
			SlowMovers:     []RankedProduct{},
			Unsold:         []UnsoldProduct{},
			CategoryTotals: []CategoryTotal{},
			Suggestion:     "No data yet.",
		}
	}

	windowStart := StartOfDay(now).AddDate(0, 0, -analyticsWindowDays)
	cat := buildCatalog(products)

	// Acumular cantidades por producto vigente dentro de la ventana.
	qtyByProduct := make(map[string]int)
	for _, o := range orders {
		purchased, ok := o.PurchasedAt()
		if !ok || purchased.Before(windowStart) {
			continue
		}
		res := cat.resolve(o)
		switch res.Kind {
		case Resolved, ResolvedByName:
			qtyByProduct[res.ProductID] += o.Quantity
		case Unresolvable:
			// producto eliminado del catálogo: la orden no cuenta
			continue
		}
	}

	bestSellers := rank(qtyByProduct, cat, func(qty int) bool {
		return qty >= bestSellerThreshold
	})
	sort.SliceStable(bestSellers, func(i, j int) bool {
		if bestSellers[i].Qty != bestSellers[j].Qty {
			return bestSellers[i].Qty > bestSellers[j].Qty
		}
		return bestSellers[i].Product < bestSellers[j].Product
	})

	isBestSeller := make(map[string]bool, len(bestSellers))
	for _, b := range bestSellers {
		isBestSeller[b.ProductID] = true
	}
	slowMovers := rank(qtyByProduct, cat, func(qty int) bool {
		return qty > 0 && qty <= slowMoverMax
	})
	slowMovers = filterRanked(slowMovers, func(r RankedProduct) bool {
		return !isBestSeller[r.ProductID]
	})
	sort.SliceStable(slowMovers, func(i, j int) bool {
		if slowMovers[i].Qty != slowMovers[j].Qty {
			return slowMovers[i].Qty < slowMovers[j].Qty
		}
		return slowMovers[i].Product < slowMovers[j].Product
	})

	unsold := collectUnsold(orders, products, windowStart)
	categoryTotals := aggregateCategories(qtyByProduct, cat)

	return AnalyticsResult{
		BestSellers:    bestSellers,
		SlowMovers:     slowMovers,
		Unsold:         unsold,
		CategoryTotals: categoryTotals,
		Suggestion:     buildSuggestion(bestSellers, slowMovers, unsold),
	}
}

func rank(qtyByProduct map[string]int, cat catalog, keep func(int) bool) []RankedProduct {
	out := make([]RankedProduct, 0, len(qtyByProduct))
	for id, qty := range qtyByProduct {
		if !keep(qty) {
			continue
		}
		out = append(out, RankedProduct{
			ProductID: id,
			Product:   cat.displayName(id),
			Qty:       qty,
		})
	}
	return out
}

func filterRanked(in []RankedProduct, keep func(RankedProduct) bool) []RankedProduct {
	out := in[:0]
	for _, r := range in {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// collectUnsold detecta productos dados de alta antes de la ventana y sin
// ninguna venta en todo el historial. La clave de venta es productId si la
// orden lo trae, o el nombre en su defecto (órdenes previas a la migración
// de ids); un producto queda fuera si cualquiera de sus claves aparece.
func collectUnsold(orders []entity.Order, products []entity.Product, windowStart time.Time) []UnsoldProduct {
	soldKeys := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		key := o.ProductID
		if key == "" {
			key = o.Product
		}
		if key != "" {
			soldKeys[key] = struct{}{}
		}
	}

	unsold := []UnsoldProduct{}
	for _, p := range products {
		createdAt, ok := p.CreatedAtTime()
		if !ok || !createdAt.Before(windowStart) {
			continue
		}
		if _, sold := soldKeys[p.ID]; sold {
			continue
		}
		if _, sold := soldKeys[p.Name]; sold {
			continue
		}
		unsold = append(unsold, UnsoldProduct{ProductID: p.ID, Product: p.Name})
	}
	return unsold
}

func aggregateCategories(qtyByProduct map[string]int, cat catalog) []CategoryTotal {
	byCategory := make(map[string]int)
	for id, qty := range qtyByProduct {
		name := "Uncategorized"
		if p, ok := cat.byID[id]; ok && p.Category.Name != "" {
			name = p.Category.Name
		}
		byCategory[name] += qty
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, qty := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, TotalQty: qty})
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].TotalQty != totals[j].TotalQty {
			return totals[i].TotalQty > totals[j].TotalQty
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// Shares calcula la participación porcentual de cada categoría.
// Si el total es cero el denominador se trata como 1 para evitar división
// por cero (todas las participaciones quedan en 0).
func Shares(totals []CategoryTotal) []CategoryShare {
	total := 0
	for _, t := range totals {
		total += t.TotalQty
	}
	if total == 0 {
		total = 1
	}
	shares := make([]CategoryShare, 0, len(totals))
	for _, t := range totals {
		shares = append(shares, CategoryShare{
			Category: t.Category,
			TotalQty: t.TotalQty,
			Pct:      float64(t.TotalQty) * 100 / float64(total),
		})
	}
	return shares
}

// buildSuggestion arma el texto de sugerencia concatenando los hallazgos,
// con los mismos textos que muestra el panel de la farmacia.
func buildSuggestion(bestSellers, slowMovers []RankedProduct, unsold []UnsoldProduct) string {
	var b strings.Builder

	if len(bestSellers) > 0 {
		top := bestSellers[0]
		fmt.Fprintf(&b, "Top product: %s (%d sold last 30d). ", top.Product, top.Qty)
	}
	if len(slowMovers) > 0 {
		names := rankedNames(slowMovers, 2)
		ellipsis := ""
		if len(slowMovers) > 2 {
			ellipsis = "…"
		}
		fmt.Fprintf(&b, "Monitor slow movers: %s%s. ", strings.Join(names, ", "), ellipsis)
	}
	if len(unsold) > 0 {
		names := make([]string, 0, 3)
		for _, u := range unsold {
			names = append(names, u.Product)
			if len(names) == 3 {
				break
			}
		}
		ellipsis := ""
		if len(unsold) > 3 {
			ellipsis = "…"
		}
		fmt.Fprintf(&b, "Consider promotion / discount: %s%s.", strings.Join(names, ", "), ellipsis)
	} else if len(bestSellers) > 0 && len(slowMovers) == 0 {
		b.WriteString("Overall healthy sales distribution.")
	}

	if b.Len() == 0 {
		return "Insufficient data for suggestions."
	}
	return b.String()
}

func rankedNames(ranked []RankedProduct, max int) []string {
	names := make([]string, 0, max)
	for _, r := range ranked {
		names = append(names, r.Product)
		if len(names) == max {
			break
		}
	}
	return names
}
