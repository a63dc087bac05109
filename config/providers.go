package config

import (
	"log/slog"
	"os"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/providers"
)

var (
	Stripe *providers.StripeClient
	PayPal *providers.PayPalClient
)

// ConnectProviders builds the payment-provider clients from environment
// credentials. A missing credential disables that payment method up front;
// donation endpoints report it as unavailable instead of failing mid-flow.
func ConnectProviders() {
	if key := os.Getenv("STRIPE_SECRET_KEY"); key != "" {
		Stripe = providers.NewStripeClient(key)
		slog.Info("Stripe client initialized, card payments enabled")
	} else {
		slog.Warn("STRIPE_SECRET_KEY is not set, card payments disabled")
	}

	clientID := os.Getenv("PAYPAL_CLIENT_ID")
	clientSecret := os.Getenv("PAYPAL_CLIENT_SECRET")
	if clientID != "" && clientSecret != "" {
		PayPal = providers.NewPayPalClient(clientID, clientSecret, os.Getenv("PAYPAL_ENV") == "live")
		slog.Info("PayPal client initialized, PayPal payments enabled")
	} else {
		slog.Warn("PAYPAL_CLIENT_ID / PAYPAL_CLIENT_SECRET not set, PayPal payments disabled")
	}
}
