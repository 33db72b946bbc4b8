package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmatrack/pharmatrack-api/internal/domain/entity"
)

// DaySeries series por día alineadas con los DayKeys del reporte.
// Los días sin órdenes aportan cero, no una entrada ausente: las series son
// densas para que los gráficos no tengan huecos.
type DaySeries struct {
	Revenue []decimal.Decimal `json:"revenue"`
	Count   []int             `json:"count"`
}

// HistoryReport reporte de historial de órdenes para un rango de días.
type HistoryReport struct {
	Filtered []entity.Order  `json:"filtered"` // más recientes primero
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
	DayKeys  []string        `json:"dayKeys"`
	Series   DaySeries       `json:"series"`
}

// ComputeHistoryReport filtra las órdenes cuyo día calendario local cae dentro
// del rango inclusivo y produce totales y series por día.
//
// Un rango incompleto produce el reporte vacío (estado "seleccione un rango").
// Los extremos se normalizan a inicio de día y se intercambian si vienen
// invertidos, así el resultado es idéntico sin importar el orden de selección.
// Las órdenes con fecha malformada se descartan individualmente.
func ComputeHistoryReport(orders []entity.Order, rng Range) HistoryReport {
	empty := HistoryReport{
		Filtered: []entity.Order{},
		Revenue:  decimal.Zero,
		DayKeys:  []string{},
		Series:   DaySeries{Revenue: []decimal.Decimal{}, Count: []int{}},
	}
	if !rng.Complete() {
		return empty
	}

	start := StartOfDay(*rng.Start)
	end := StartOfDay(*rng.End)
	if start.After(end) {
		start, end = end, start
	}

	type dated struct {
		order entity.Order
		at    time.Time
	}
	var filtered []dated
	revenue := decimal.Zero
	revenueByDay := make(map[string]decimal.Decimal)
	countByDay := make(map[string]int)

	for _, o := range orders {
		at, ok := o.PurchasedAt()
		if !ok {
			continue
		}
		day := StartOfDay(at)
		if day.Before(start) || day.After(end) {
			continue
		}
		filtered = append(filtered, dated{order: o, at: at})
		revenue = revenue.Add(o.TotalAmount)
		key := DayKey(day)
		revenueByDay[key] = revenueByDay[key].Add(o.TotalAmount)
		countByDay[key]++
	}

	// Orden de presentación: las órdenes más recientes primero.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].at.After(filtered[j].at)
	})
	out := make([]entity.Order, len(filtered))
	for i, d := range filtered {
		out[i] = d.order
	}

	// Secuencia densa de días: cada día del rango aparece aunque valga cero.
	var dayKeys []string
	series := DaySeries{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := DayKey(d)
		dayKeys = append(dayKeys, key)
		rev, ok := revenueByDay[key]
		if !ok {
			rev = decimal.Zero
		}
		series.Revenue = append(series.Revenue, rev)
		series.Count = append(series.Count, countByDay[key])
	}

	return HistoryReport{
		Filtered: out,
		Count:    len(out),
		Revenue:  revenue,
		DayKeys:  dayKeys,
		Series:   series,
	}
}
