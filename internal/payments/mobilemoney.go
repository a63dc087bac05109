package payments

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/analytics"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// InvalidPhoneMessage is shown when the donor's mobile number is too short.
const InvalidPhoneMessage = "Enter a valid mobile number"

const minPhoneDigits = 8

// MobileMoneyProvider requests a payment from a mobile-money operator.
// The production integrations (Lonestar MTN, Orange Money) are not live
// yet; the stub below fills the slot until they are, and the interface
// already carries the failure path a real operator needs.
type MobileMoneyProvider interface {
	RequestPayment(ctx context.Context, req ProviderRequest) (ProviderReceipt, error)
}

// ProviderRequest is the operator-side payment request.
type ProviderRequest struct {
	Method      models.PaymentMethod
	PhoneNumber string
	Amount      float64
	Currency    string
}

// ProviderReceipt is the operator's acknowledgement.
type ProviderReceipt struct {
	Reference string
}

// stubProvider acknowledges every request after a short fixed delay. It is
// a placeholder, not a contract: swap in a real operator client without
// touching the adapter or dispatcher.
type stubProvider struct {
	delay time.Duration
}

func NewStubProvider() MobileMoneyProvider {
	return &stubProvider{delay: 1500 * time.Millisecond}
}

func (p *stubProvider) RequestPayment(ctx context.Context, req ProviderRequest) (ProviderReceipt, error) {
	select {
	case <-time.After(p.delay):
	case <-ctx.Done():
		return ProviderReceipt{}, ctx.Err()
	}
	return ProviderReceipt{Reference: uuid.NewString()}, nil
}

// MobileMoneyAdapter handles the two mobile-money variants. The flow is
// validate → "payment_initiated" → operator call → "payment_success", with
// the transaction id synthesized on our side since the placeholder operator
// issues none.
type MobileMoneyAdapter struct {
	method   models.PaymentMethod
	provider MobileMoneyProvider
	tracker  analytics.Tracker
	api      *Client
}

// ValidMobileNumber reports whether the number carries enough digits to be
// a plausible Liberian mobile number. Formatting characters are ignored.
func ValidMobileNumber(phone string) bool {
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

func (a *MobileMoneyAdapter) Execute(ctx context.Context, data DonationData) Outcome {
	if !ValidMobileNumber(data.PhoneNumber) {
		return failure(InvalidPhoneMessage)
	}

	a.tracker.Emit(analytics.EventPaymentInitiated, map[string]string{
		"method":   string(a.method),
		"amount":   fmt.Sprintf("%.2f", data.Amount),
		"currency": data.Currency,
	})

	receipt, err := a.provider.RequestPayment(ctx, ProviderRequest{
		Method:      a.method,
		PhoneNumber: data.PhoneNumber,
		Amount:      data.Amount,
		Currency:    data.Currency,
	})
	if err != nil {
		slog.Warn("Mobile money provider request failed", "method", a.method, "error", err)
		return failure("We could not reach your mobile money provider. Please try again.")
	}

	transactionID := fmt.Sprintf("mm_%s", uuid.NewString())
	if receipt.Reference != "" {
		transactionID = fmt.Sprintf("mm_%s", receipt.Reference)
	}

	a.tracker.Emit(analytics.EventPaymentSuccess, map[string]string{
		"method":         string(a.method),
		"transaction_id": transactionID,
	})

	donationID := ""
	if a.api != nil {
		// Recording the donation server-side is best effort; the donor's
		// payment already went through on the operator side.
		rec, err := a.api.RecordMobileMoney(ctx, MobileMoneyRecord{
			Amount:        data.Amount,
			Currency:      data.Currency,
			Type:          string(data.Type),
			Category:      string(data.Category),
			DonorInfo:     data.Donor,
			PhoneNumber:   data.PhoneNumber,
			Method:        string(a.method),
			TransactionID: transactionID,
		})
		if err != nil {
			slog.Warn("Failed to record mobile money donation", "transaction_id", transactionID, "error", err)
		} else if rec.Donation != nil {
			donationID = rec.Donation.DonationNumber
		}
	}

	return ok(transactionID, "", donationID)
}
