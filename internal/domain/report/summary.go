package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pharmatrack/pharmatrack-api/internal/domain/entity"
)

const (
	// lowStockThreshold tope inclusivo de unidades para alertar stock bajo.
	lowStockThreshold = 10
	// expiryWindowDays ventana de alerta de vencimiento próximo.
	expiryWindowDays = 30
)

// LowStockItem producto con stock bajo y las unidades restantes.
type LowStockItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Summary estadísticas agregadas del panel principal.
type Summary struct {
	TotalProducts int             `json:"totalProducts"`
	TotalStock    int             `json:"totalStock"`
	OrdersToday   int             `json:"ordersToday"`
	RevenueToday  decimal.Decimal `json:"revenueToday"`
	SoonToExpire  []string        `json:"soonToExpireProducts"`
	OutOfStock    []string        `json:"outOfStockProducts"`
	LowStock      []LowStockItem  `json:"lowStockProducts"`
}

// ComputeSummary calcula las estadísticas del panel a partir de los snapshots
// de catálogo y órdenes:
//   - vencimiento próximo: vence dentro de 30 días y aún no venció;
//   - sin stock: cantidad cero;
//   - stock bajo: entre 1 y 10 unidades;
//   - órdenes/ingresos de hoy: órdenes cuyo día calendario local es hoy.
func ComputeSummary(orders []entity.Order, products []entity.Product, now time.Time) Summary {
	s := Summary{
		RevenueToday: decimal.Zero,
		SoonToExpire: []string{},
		OutOfStock:   []string{},
		LowStock:     []LowStockItem{},
	}

	today := StartOfDay(now)
	expiryLimit := today.AddDate(0, 0, expiryWindowDays)

	s.TotalProducts = len(products)
	for _, p := range products {
		s.TotalStock += p.Quantity

		if exp, ok := p.ExpiresAt(); ok {
			expDay := StartOfDay(exp)
			if !expDay.Before(today) && !expDay.After(expiryLimit) {
				s.SoonToExpire = append(s.SoonToExpire, p.Name)
			}
		}
		switch {
		case p.Quantity == 0:
			s.OutOfStock = append(s.OutOfStock, p.Name)
		case p.Quantity <= lowStockThreshold:
			s.LowStock = append(s.LowStock, LowStockItem{Name: p.Name, Quantity: p.Quantity})
		}
	}

	for _, o := range orders {
		at, ok := o.PurchasedAt()
		if !ok || !StartOfDay(at).Equal(today) {
			continue
		}
		s.OrdersToday++
		s.RevenueToday = s.RevenueToday.Add(o.TotalAmount)
	}

	return s
}
