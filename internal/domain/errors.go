package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrUpstreamOrders el backend no pudo entregar la lista de órdenes.
	ErrUpstreamOrders = errors.New("failed to load orders")
	// ErrUpstreamProducts el backend no pudo entregar el catálogo de productos.
	ErrUpstreamProducts = errors.New("failed to load products")
	// ErrInvalidRange el rango de fechas solicitado no es interpretable.
	ErrInvalidRange = errors.New("invalid date range")
)
