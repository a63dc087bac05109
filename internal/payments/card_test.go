package payments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

type fakeConfirmer struct {
	intentID string
	err      error
	secrets  []string
}

func (f *fakeConfirmer) ConfirmPayment(ctx context.Context, clientSecret string) (string, error) {
	f.secrets = append(f.secrets, clientSecret)
	if f.err != nil {
		return "", f.err
	}
	return f.intentID, nil
}

func donationsServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func cardData() DonationData {
	return DonationData{
		Amount:   50,
		Currency: "USD",
		Type:     models.DonationOneTime,
		Category: models.CategoryScholarships,
		Donor:    models.DonorInfo{Name: "Miatta Kollie", Email: "miatta@example.com"},
	}
}

func TestCardAdapterSuccess(t *testing.T) {
	var confirmReq ConfirmRequest
	srv := donationsServer(t, map[string]http.HandlerFunc{
		"/api/donations/create-intent": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(CreateIntentResponse{ClientSecret: "cs_test", DonationID: "d_1"})
		},
		"/api/donations/confirm": func(w http.ResponseWriter, r *http.Request) {
			json.NewDecoder(r.Body).Decode(&confirmReq)
			json.NewEncoder(w).Encode(ConfirmResponse{TransactionID: "pi_1", ReceiptURL: "/receipts/d_1"})
		},
	})

	confirmer := &fakeConfirmer{intentID: "pi_1"}
	adapter := &CardAdapter{api: NewClient(srv.URL), confirmer: confirmer}

	outcome := adapter.Execute(context.Background(), cardData())

	assert.Equal(t, OutcomeOK, outcome.Status)
	assert.Equal(t, "pi_1", outcome.TransactionID)
	assert.Equal(t, "/receipts/d_1", outcome.ReceiptURL)
	assert.Equal(t, "d_1", outcome.DonationID)

	// The confirmer must receive the secret from intent creation, and the
	// server-side confirm must carry the confirmed intent id.
	require.Equal(t, []string{"cs_test"}, confirmer.secrets)
	assert.Equal(t, "pi_1", confirmReq.PaymentIntentID)
	assert.Equal(t, "d_1", confirmReq.DonationID)
}

func TestCardAdapterIntentCreationFails(t *testing.T) {
	srv := donationsServer(t, map[string]http.HandlerFunc{
		"/api/donations/create-intent": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"error": "Card payments are not available right now"})
		},
	})

	confirmer := &fakeConfirmer{intentID: "pi_1"}
	adapter := &CardAdapter{api: NewClient(srv.URL), confirmer: confirmer}

	outcome := adapter.Execute(context.Background(), cardData())

	assert.Equal(t, OutcomeError, outcome.Status)
	assert.Equal(t, "Card payments are not available right now", outcome.Message)
	assert.Empty(t, confirmer.secrets, "confirmation must not start when intent creation fails")
}

func TestCardAdapterDeclineMapsToFixedMessage(t *testing.T) {
	srv := donationsServer(t, map[string]http.HandlerFunc{
		"/api/donations/create-intent": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(CreateIntentResponse{ClientSecret: "cs_test", DonationID: "d_1"})
		},
	})

	tests := []struct {
		code string
		want string
	}{
		{"card_declined", "Your card was declined. Please try a different card."},
		{"expired_card", "Your card has expired. Please use a different card."},
		{"insufficient_funds", "Your card has insufficient funds. Please try a different card."},
		{"incorrect_cvc", "Your card's security code is incorrect."},
		{"some_unknown_code", GenericErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			adapter := &CardAdapter{
				api:       NewClient(srv.URL),
				confirmer: &fakeConfirmer{err: &CardError{Code: tt.code, Message: "provider text"}},
			}
			outcome := adapter.Execute(context.Background(), cardData())
			assert.Equal(t, OutcomeError, outcome.Status)
			assert.Equal(t, tt.want, outcome.Message)
		})
	}
}

func TestCardAdapterNonCardConfirmError(t *testing.T) {
	srv := donationsServer(t, map[string]http.HandlerFunc{
		"/api/donations/create-intent": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(CreateIntentResponse{ClientSecret: "cs_test", DonationID: "d_1"})
		},
	})

	adapter := &CardAdapter{
		api:       NewClient(srv.URL),
		confirmer: &fakeConfirmer{err: context.DeadlineExceeded},
	}
	outcome := adapter.Execute(context.Background(), cardData())

	assert.Equal(t, OutcomeError, outcome.Status)
	assert.Equal(t, GenericErrorMessage, outcome.Message, "raw errors never reach the donor")
}

func TestCardAdapterServerConfirmFails(t *testing.T) {
	srv := donationsServer(t, map[string]http.HandlerFunc{
		"/api/donations/create-intent": func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(CreateIntentResponse{ClientSecret: "cs_test", DonationID: "d_1"})
		},
		"/api/donations/confirm": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			json.NewEncoder(w).Encode(map[string]string{"error": "Payment has not completed"})
		},
	})

	adapter := &CardAdapter{api: NewClient(srv.URL), confirmer: &fakeConfirmer{intentID: "pi_1"}}
	outcome := adapter.Execute(context.Background(), cardData())

	assert.Equal(t, OutcomeError, outcome.Status)
	assert.Equal(t, "Payment has not completed", outcome.Message)
}
