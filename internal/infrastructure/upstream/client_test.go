package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmatrack/pharmatrack-api/internal/infrastructure/upstream"
)

func TestClient_FetchRecentOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/orders/recent-orders", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"orderId":"o1","productId":"p1","product":"Amoxil","quantity":2,"totalAmount":"45.50","purchaseDate":"2024-03-05T10:00:00Z"},
			{"orderId":"o2","product":"Ibux","quantity":1,"totalAmount":"12","purchaseDate":"2024-03-05"}
		]`))
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second)
	orders, err := client.FetchRecentOrders(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "o1", orders[0].OrderID)
	assert.Equal(t, "p1", orders[0].ProductID)
	assert.Equal(t, 2, orders[0].Quantity)
	assert.Equal(t, "45.5", orders[0].TotalAmount.String())
	assert.Empty(t, orders[1].ProductID, "órdenes viejas pueden venir sin productId")
}

func TestClient_FetchProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/get-product", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"_id":"p1","name":"Amoxil","category":{"_id":"c1","name":"Antibiotics"},"price":"22.75","quantity":8},
			{"_id":"p2","name":"Ibux","category":"Analgesics","quantity":0}
		]`))
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second)
	products, err := client.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Antibiotics", products[0].Category.Name)
	assert.Equal(t, "Analgesics", products[1].Category.Name, "categoría como string plano")
	assert.Equal(t, 8, products[0].Quantity)
}

// TestClient_RespuestaNula el backend puede responder null; el cliente
// normaliza a slice vacío para que los agregadores no distingan casos.
func TestClient_RespuestaNula(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second)

	orders, err := client.FetchRecentOrders(context.Background())
	require.NoError(t, err)
	require.NotNil(t, orders)
	assert.Empty(t, orders)

	products, err := client.FetchProducts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, products)
	assert.Empty(t, products)
}

func TestClient_StatusNoExitoso(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend en mantenimiento", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second)
	_, err := client.FetchRecentOrders(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "backend en mantenimiento")
}

func TestClient_JSONInvalido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{esto no es json`))
	}))
	defer srv.Close()

	client := upstream.NewClient(srv.URL, 5*time.Second)
	_, err := client.FetchProducts(context.Background())
	assert.Error(t, err)
}

// TestClient_ContextoCancelado la cancelación del llamador aborta la petición.
func TestClient_ContextoCancelado(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	client := upstream.NewClient(srv.URL, 30*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.FetchRecentOrders(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
