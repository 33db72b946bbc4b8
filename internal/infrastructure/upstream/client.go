// Package upstream implementa el cliente HTTP hacia el backend de farmacia,
// que es el dueño de la persistencia. Este servicio solo lee snapshots:
// la lista de órdenes recientes y el catálogo vigente de productos.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pharmatrack/pharmatrack-api/internal/domain/entity"
)

const (
	recentOrdersPath = "/api/orders/recent-orders"
	productsPath     = "/api/products/get-product"
)

// Client cliente REST del backend PharmaTrack.
// Usa net/http de la stdlib; no requiere librerías de terceros.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente con el timeout de red configurado.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchRecentOrders implementa reporting.OrderSource.
func (c *Client) FetchRecentOrders(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	if err := c.getJSON(ctx, recentOrdersPath, &orders); err != nil {
		return nil, fmt.Errorf("upstream: órdenes recientes: %w", err)
	}
	if orders == nil {
		orders = []entity.Order{}
	}
	return orders, nil
}

// FetchProducts implementa reporting.ProductSource.
func (c *Client) FetchProducts(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := c.getJSON(ctx, productsPath, &products); err != nil {
		return nil, fmt.Errorf("upstream: catálogo: %w", err)
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

// getJSON ejecuta un GET y decodifica la respuesta JSON en out.
// La petición respeta la cancelación del contexto: si el llamador se da de
// baja, el resultado se descarta en lugar de aplicarse.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("crear petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ejecutar GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// leer un fragmento del cuerpo ayuda al diagnóstico sin arriesgar
		// respuestas de error gigantes en los logs
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta de %s: %w", path, err)
	}
	return nil
}
