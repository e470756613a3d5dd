package storeclient

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrosavio99/cafe-online-ifpb/internal/modules/orders"
	"github.com/pedrosavio99/cafe-online-ifpb/internal/shared/apperr"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchByStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pedidos/status/pending", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `[
			{"id": "1", "status": "pending", "cartItems": [{"name":"Espresso","price":8.0,"quantity":1}], "updatedAt": "2024-05-10T12:00:00Z"},
			{"id": "2", "status": "pending", "cartItems": [{"name":"Latte","price":10.0,"quantity":2}]}
		]`)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())
	got, err := c.FetchByStatus(context.Background(), orders.StatusPending)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(800), got[0].TotalCents)
	assert.Equal(t, int64(2000), got[1].TotalCents)
}

func TestFetchByStatus_DropsMalformedKeepsRest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		io.WriteString(w, `[
			{"id": "ok", "status": "approved", "cartItems": [{"name":"Mocha","price":14.0,"quantity":1}]},
			{"id": "broken", "status": "mystery", "cartItems": [{"name":"x","price":1.0,"quantity":1}]}
		]`)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())
	got, err := c.FetchByStatus(context.Background(), orders.StatusApproved)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].ID)
}

func TestFetchByStatus_ServerErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())
	_, err := c.FetchByStatus(context.Background(), orders.StatusRejected)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Transport))
}

func TestCreate_SendsWirePayload(t *testing.T) {
	var received map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pedidos", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		io.WriteString(w, `{"id": "new-1", "status": "pending", "cartItems": [{"name":"Espresso","price":8.0,"quantity":2}], "valor": "16.00"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())
	created, err := c.Create(context.Background(), CreateOrderPayload{
		CartItems: []OrderItemPayload{
			{Name: "Espresso", Price: 8.0, Quantity: 2, Subtotal: "16.00"},
		},
		PaymentMethod: "in_store",
		OrderType:     "pickup",
		Address:       "Retirada na loja",
		Valor:         "16.00",
		Email:         "joao@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "new-1", created.ID)
	assert.Equal(t, orders.StatusPending, created.Status)

	assert.Equal(t, "Retirada na loja", received["address"])
	assert.Equal(t, "16.00", received["valor"])
	items := received["cartItems"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "16.00", items[0].(map[string]any)["subtotal"])
}

func TestUpdateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/pedidos/ord-9/status", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "approved", body["status"])
		io.WriteString(w, `{"id": "ord-9", "status": "approved", "cartItems": [{"name":"x","price":1.0,"quantity":1}]}`)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())
	err := c.UpdateStatus(context.Background(), "ord-9", orders.StatusApproved)
	require.NoError(t, err)
}

func TestUpdateStatus_StoreRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second, testLogger())
	err := c.UpdateStatus(context.Background(), "ord-9", orders.StatusFinalized)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.Transport))
}
