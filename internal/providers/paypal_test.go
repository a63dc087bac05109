package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paypalTestServer(t *testing.T, tokenCalls *int32, orders http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(tokenCalls, 1)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)
		json.NewEncoder(w).Encode(map[string]interface{}{"access_token": "token-1", "expires_in": 3600})
	})
	mux.HandleFunc("/v2/checkout/orders", orders)
	mux.HandleFunc("/v2/checkout/orders/", orders)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPayPalCreateOrder(t *testing.T) {
	var tokenCalls int32
	srv := paypalTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		var body struct {
			Intent        string `json:"intent"`
			PurchaseUnits []struct {
				Amount struct {
					CurrencyCode string `json:"currency_code"`
					Value        string `json:"value"`
				} `json:"amount"`
			} `json:"purchase_units"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CAPTURE", body.Intent)
		require.Len(t, body.PurchaseUnits, 1)
		assert.Equal(t, "USD", body.PurchaseUnits[0].Amount.CurrencyCode)
		assert.Equal(t, "120.00", body.PurchaseUnits[0].Amount.Value)

		json.NewEncoder(w).Encode(map[string]string{"id": "ord_1", "status": "CREATED"})
	})

	client := NewPayPalClientForTest("client-id", "client-secret", srv.URL)
	orderID, err := client.CreateOrder(context.Background(), 120, "usd", "Donation")

	require.NoError(t, err)
	assert.Equal(t, "ord_1", orderID)
}

func TestPayPalTokenIsCached(t *testing.T) {
	var tokenCalls int32
	srv := paypalTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "ord_1", "status": "CREATED"})
	})

	client := NewPayPalClientForTest("client-id", "client-secret", srv.URL)
	_, err := client.CreateOrder(context.Background(), 10, "usd", "")
	require.NoError(t, err)
	_, err = client.CreateOrder(context.Background(), 20, "usd", "")
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls), "token request must be cached")
}

func TestPayPalCaptureOrder(t *testing.T) {
	var tokenCalls int32
	srv := paypalTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/checkout/orders/ord_1/capture", r.URL.Path)
		w.Write([]byte(`{
			"id": "ord_1",
			"status": "COMPLETED",
			"purchase_units": [{"payments": {"captures": [{"id": "cap_1", "status": "COMPLETED"}]}}]
		}`))
	})

	client := NewPayPalClientForTest("client-id", "client-secret", srv.URL)
	result, err := client.CaptureOrder(context.Background(), "ord_1")

	require.NoError(t, err)
	assert.Equal(t, "cap_1", result.CaptureID)
	assert.Equal(t, "COMPLETED", result.Status)
}

func TestPayPalCaptureWithoutCaptureID(t *testing.T) {
	var tokenCalls int32
	srv := paypalTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"id": "ord_1", "status": "COMPLETED"})
	})

	client := NewPayPalClientForTest("client-id", "client-secret", srv.URL)
	_, err := client.CaptureOrder(context.Background(), "ord_1")

	var ppErr *PayPalError
	require.True(t, errors.As(err, &ppErr))
	assert.Equal(t, "CAPTURE_MISSING", ppErr.Name)
}

func TestPayPalErrorDecoding(t *testing.T) {
	var tokenCalls int32
	srv := paypalTestServer(t, &tokenCalls, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"name":"INSTRUMENT_DECLINED","message":"The instrument presented was declined."}`))
	})

	client := NewPayPalClientForTest("client-id", "client-secret", srv.URL)
	_, err := client.CaptureOrder(context.Background(), "ord_1")

	var ppErr *PayPalError
	require.True(t, errors.As(err, &ppErr))
	assert.Equal(t, http.StatusUnprocessableEntity, ppErr.HTTPStatus)
	assert.Equal(t, "INSTRUMENT_DECLINED", ppErr.Name)
}
