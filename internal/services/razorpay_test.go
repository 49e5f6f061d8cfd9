package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/consultly/backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func razorpayTestClient(baseURL string) *RazorpayClient {
	return NewRazorpayClient(&config.Config{
		RazorpayBaseURL:   baseURL,
		RazorpayKeyID:     "rzp_test_key",
		RazorpayKeySecret: "rzp_test_secret",
		GatewayTimeout:    5 * time.Second,
	})
}

func TestRazorpayClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "rzp_test_key", user)
		assert.Equal(t, "rzp_test_secret", pass)

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.EqualValues(t, 50000, req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.NotEmpty(t, req.Receipt)

		json.NewEncoder(w).Encode(Order{
			ID: "order_X", Entity: "order", Amount: req.Amount,
			Currency: req.Currency, Receipt: req.Receipt, Status: "created",
		})
	}))
	defer srv.Close()

	order, err := razorpayTestClient(srv.URL).CreateOrder(context.Background(), &OrderRequest{
		Amount: 50000, Currency: "INR", Receipt: "order_abc_123",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_X", order.ID)
	assert.Equal(t, "created", order.Status)
}

func TestRazorpayClient_CapturePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)

		var req CaptureRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "order_X", req.OrderID)
		assert.Equal(t, "upi", req.Method)

		json.NewEncoder(w).Encode(Payment{
			ID: "pay_Y", Entity: "payment", Status: "captured",
			OrderID: req.OrderID, Captured: true,
		})
	}))
	defer srv.Close()

	payment, err := razorpayTestClient(srv.URL).CapturePayment(context.Background(), &CaptureRequest{
		Amount: 50000, Currency: "INR", OrderID: "order_X",
		Method: "upi", Email: "alice@example.com", Contact: "9999999999",
	})
	require.NoError(t, err)
	assert.Equal(t, "pay_Y", payment.ID)
	assert.Equal(t, "captured", payment.Status)
}

func TestRazorpayClient_NonSuccessPropagatesDiagnostics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Order amount less than minimum"}}`))
	}))
	defer srv.Close()

	_, err := razorpayTestClient(srv.URL).CreateOrder(context.Background(), &OrderRequest{
		Amount: 1, Currency: "INR", Receipt: "order_abc",
	})

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadRequest, gwErr.StatusCode)
	assert.Contains(t, string(gwErr.Body), "BAD_REQUEST_ERROR")
	assert.Equal(t, "create order", gwErr.Operation)
}
