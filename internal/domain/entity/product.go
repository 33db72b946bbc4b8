package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo actual de la farmacia.
// El núcleo de analítica solo lo usa para resolver nombre/categoría y para la
// detección de productos sin ventas; nunca lo muta.
type Product struct {
	ID         string          `json:"_id"`
	Name       string          `json:"name"`
	Category   CategoryRef     `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	ExpiryDate string          `json:"expiryDate,omitempty"`
	CreatedAt  string          `json:"createdAt,omitempty"`
}

// CreatedAtTime parsea la fecha de alta del producto.
func (p Product) CreatedAtTime() (time.Time, bool) {
	return ParseTimestamp(p.CreatedAt)
}

// ExpiresAt parsea la fecha de vencimiento del producto.
func (p Product) ExpiresAt() (time.Time, bool) {
	return ParseTimestamp(p.ExpiryDate)
}

// CategoryRef referencia a la categoría de un producto.
// El backend la serializa de dos formas según el endpoint:
// como objeto {"_id": "...", "name": "..."} o como el nombre plano "Antibiotics".
type CategoryRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

// UnmarshalJSON acepta tanto el objeto como el string plano.
func (c *CategoryRef) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.ID = ""
		c.Name = name
		return nil
	}
	type ref CategoryRef // evita recursión
	var obj ref
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*c = CategoryRef(obj)
	return nil
}
