package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa una venta registrada en el backend de farmacia.
// Es inmutable una vez recibida; la lista completa se reemplaza en cada fetch.
// PurchaseDate llega como string ISO-8601; el parseo es perezoso porque una
// fecha malformada debe descartar solo esa orden, nunca abortar el agregado.
type Order struct {
	OrderID      string          `json:"orderId"`
	ProductID    string          `json:"productId"`
	Product      string          `json:"product"` // nombre del producto al momento de la venta
	Quantity     int             `json:"quantity"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	PurchaseDate string          `json:"purchaseDate"`
}

// PurchasedAt parsea la fecha de compra en hora local.
// Acepta ISO-8601 completo (con o sin fracción de segundo) o solo fecha.
func (o Order) PurchasedAt() (time.Time, bool) {
	return ParseTimestamp(o.PurchaseDate)
}

// ParseTimestamp parsea un timestamp ISO-8601 o una fecha YYYY-MM-DD.
// El segundo retorno es false si el valor no es interpretable.
func ParseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(time.Local), true
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
