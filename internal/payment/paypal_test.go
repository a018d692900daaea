package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thescrapshop/backend/internal/config"
)

func newTestPayPal(t *testing.T, mux *http.ServeMux) *PayPalClient {
	t.Helper()

	tokenRequests := 0
	mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenRequests++
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "test-client-id", user)
		assert.Equal(t, "test-client-secret", pass)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-access-token",
			"expires_in":   3600,
		})
	})
	t.Cleanup(func() {
		assert.LessOrEqual(t, tokenRequests, 1, "token must be cached between calls")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewPayPalClient("test-client-id", "test-client-secret", config.ModeSandbox)
	client.baseURL = srv.URL
	return client
}

func TestPayPalCreate(t *testing.T) {
	mux := http.NewServeMux()
	var gotAuth string
	var gotReq PaymentRequest
	mux.HandleFunc("POST /v1/payments/payment", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		err := json.NewDecoder(r.Body).Decode(&gotReq)
		assert.NoError(t, err)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Payment{
			ID:    "PAY-created",
			State: "created",
			Links: []Link{{Href: "https://approve.example.com", Rel: "approval_url"}},
		})
	})
	client := newTestPayPal(t, mux)

	created, err := client.Create(context.Background(), &PaymentRequest{
		Intent: "sale",
		Payer:  Payer{PaymentMethod: "paypal"},
		Transactions: []Transaction{{
			Amount: Amount{Total: "3.00", Currency: "USD"},
			Custom: "alice|Mod",
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "PAY-created", created.ID)
	assert.Equal(t, "Bearer test-access-token", gotAuth)
	assert.Equal(t, "sale", gotReq.Intent)
	assert.Equal(t, "alice|Mod", gotReq.Transactions[0].Custom)
}

func TestPayPalGetAndExecute(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/payments/payment/PAY-1", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(Payment{ID: "PAY-1", State: "created"})
	})
	var gotExecuteBody map[string]string
	mux.HandleFunc("POST /v1/payments/payment/PAY-1/execute", func(w http.ResponseWriter, r *http.Request) {
		err := json.NewDecoder(r.Body).Decode(&gotExecuteBody)
		assert.NoError(t, err)
		json.NewEncoder(w).Encode(Payment{
			ID:    "PAY-1",
			State: "approved",
			Transactions: []Transaction{{
				Amount: Amount{Total: "3.00", Currency: "USD"},
				Custom: "alice|Mod",
			}},
		})
	})
	client := newTestPayPal(t, mux)

	found, err := client.Get(context.Background(), "PAY-1")
	require.NoError(t, err)
	assert.Equal(t, "created", found.State)

	executed, err := client.Execute(context.Background(), "PAY-1", "PAYER-1")
	require.NoError(t, err)
	assert.Equal(t, "approved", executed.State)
	assert.Equal(t, "PAYER-1", gotExecuteBody["payer_id"])
}

func TestPayPalAPIError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/payments/payment", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"name":    "VALIDATION_ERROR",
			"message": "Invalid request - see details",
		})
	})
	client := newTestPayPal(t, mux)

	_, err := client.Create(context.Background(), &PaymentRequest{Intent: "sale"})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Name)
	assert.Contains(t, apiErr.Message, "Invalid request")
}

func TestPayPalTokenFailure(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("POST /v1/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"name":    "invalid_client",
			"message": "Client Authentication failed",
		})
	})

	client := NewPayPalClient("bad-id", "bad-secret", config.ModeSandbox)
	client.baseURL = srv.URL

	_, err := client.Get(context.Background(), "PAY-1")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}
