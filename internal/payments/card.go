package payments

import (
	"context"
	"errors"
	"log/slog"
)

// CardError is a decline reported by the card instrument (Stripe.js in the
// browser, a gateway in other hosts). Code is the provider decline code.
type CardError struct {
	Code    string
	Message string
}

func (e *CardError) Error() string {
	return "card: " + e.Code + ": " + e.Message
}

// CardConfirmer confirms a payment intent with the donor's card instrument.
// It stands in for Stripe Elements: given the client secret from intent
// creation it resolves to the confirmed payment-intent id, or a CardError
// carrying the decline code.
type CardConfirmer interface {
	ConfirmPayment(ctx context.Context, clientSecret string) (paymentIntentID string, err error)
}

// CardAdapter runs the two-phase card flow: create the intent server-side,
// confirm with the instrument, then confirm server-side. The phases are
// strictly sequential; confirmation never starts before intent creation
// resolves.
type CardAdapter struct {
	api       *Client
	confirmer CardConfirmer
}

func (a *CardAdapter) Execute(ctx context.Context, data DonationData) Outcome {
	intent, err := a.api.CreateIntent(ctx, CreateIntentRequest{
		Amount:   data.Amount,
		Currency: data.Currency,
		Type:     string(data.Type),
		Category: string(data.Category),
		Metadata: data.Metadata,
	})
	if err != nil {
		slog.Warn("Card intent creation failed", "error", err)
		return failure(userMessage(err))
	}

	paymentIntentID, err := a.confirmer.ConfirmPayment(ctx, intent.ClientSecret)
	if err != nil {
		var cardErr *CardError
		if errors.As(err, &cardErr) {
			slog.Info("Card declined", "code", cardErr.Code)
			return failure(CardErrorText(cardErr.Code))
		}
		slog.Warn("Card confirmation failed", "error", err)
		return failure(GenericErrorMessage)
	}

	confirm, err := a.api.ConfirmDonation(ctx, ConfirmRequest{
		PaymentIntentID: paymentIntentID,
		DonationID:      intent.DonationID,
		DonorInfo:       data.Donor,
	})
	if err != nil {
		slog.Warn("Server-side donation confirm failed", "donation_id", intent.DonationID, "error", err)
		return failure(userMessage(err))
	}

	return ok(confirm.TransactionID, confirm.ReceiptURL, intent.DonationID)
}
