package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeCreatePaymentIntent(t *testing.T) {
	var form map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		form = r.PostForm

		json.NewEncoder(w).Encode(PaymentIntent{
			ID:           "pi_1",
			ClientSecret: "pi_1_secret",
			Status:       "requires_payment_method",
			Amount:       5000,
			Currency:     "usd",
		})
	}))
	defer srv.Close()

	client := NewStripeClientForTest("sk_test_123", srv.URL)
	intent, err := client.CreatePaymentIntent(context.Background(), 5000, "USD", map[string]string{"donation_number": "dn-1"})

	require.NoError(t, err)
	assert.Equal(t, "pi_1", intent.ID)
	assert.Equal(t, "pi_1_secret", intent.ClientSecret)

	assert.Equal(t, []string{"5000"}, form["amount"])
	assert.Equal(t, []string{"usd"}, form["currency"])
	assert.Equal(t, []string{"true"}, form["automatic_payment_methods[enabled]"])
	assert.Equal(t, []string{"dn-1"}, form["metadata[donation_number]"])
}

func TestStripeGetPaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents/pi_1", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(PaymentIntent{ID: "pi_1", Status: "succeeded"})
	}))
	defer srv.Close()

	client := NewStripeClientForTest("sk_test_123", srv.URL)
	intent, err := client.GetPaymentIntent(context.Background(), "pi_1")

	require.NoError(t, err)
	assert.Equal(t, "succeeded", intent.Status)
}

func TestStripeErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	client := NewStripeClientForTest("sk_test_123", srv.URL)
	_, err := client.CreatePaymentIntent(context.Background(), 100, "usd", nil)

	var stripeErr *StripeError
	require.True(t, errors.As(err, &stripeErr))
	assert.Equal(t, http.StatusPaymentRequired, stripeErr.HTTPStatus)
	assert.Equal(t, "card_declined", stripeErr.Code)
	assert.Equal(t, "Your card was declined.", stripeErr.Message)
}
