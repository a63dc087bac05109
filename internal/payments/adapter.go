// Package payments routes a validated donation to the selected payment
// backend. Every backend is an Adapter behind one Execute contract, and all
// failures come back as a typed Outcome; nothing escapes an adapter as a
// panic or a raw provider error.
package payments

import (
	"context"
	"time"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/analytics"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// Timeouts applied at the adapter boundary.
const (
	PaymentTimeout = 30 * time.Second
	APITimeout     = 15 * time.Second
)

// DonationData is the validated donation an adapter executes. It carries
// everything a backend needs; adapters ignore fields they don't use.
type DonationData struct {
	Amount      float64
	Currency    string
	Type        models.DonationType
	Frequency   models.DonationFrequency
	Category    models.DonationCategory
	Donor       models.DonorInfo
	PhoneNumber string
	Metadata    map[string]string
}

// OutcomeStatus discriminates the three terminal results of an execution.
type OutcomeStatus string

const (
	OutcomeOK        OutcomeStatus = "ok"
	OutcomeCancelled OutcomeStatus = "cancelled"
	OutcomeError     OutcomeStatus = "error"
)

// Outcome is the uniform result every adapter resolves to. Message holds the
// user-facing error text for OutcomeError; the transaction fields are set
// only for OutcomeOK.
type Outcome struct {
	Status        OutcomeStatus
	TransactionID string
	ReceiptURL    string
	DonationID    string
	Message       string
}

func ok(transactionID, receiptURL, donationID string) Outcome {
	return Outcome{
		Status:        OutcomeOK,
		TransactionID: transactionID,
		ReceiptURL:    receiptURL,
		DonationID:    donationID,
	}
}

func cancelled() Outcome {
	return Outcome{Status: OutcomeCancelled}
}

func failure(message string) Outcome {
	return Outcome{Status: OutcomeError, Message: message}
}

// Adapter executes one donation against one payment backend.
type Adapter interface {
	Execute(ctx context.Context, data DonationData) Outcome
}

// Config wires a Dispatcher. Credentials gate adapters: an empty StripeKey
// leaves card payments unregistered, an empty PayPalClientID leaves PayPal
// unregistered. A credential without its collaborators (API plus the
// confirmer or approval flow) also leaves the method unregistered rather
// than registering an adapter that cannot run. Mobile money is always
// registered (the provider defaults to the placeholder stub when nil).
type Config struct {
	StripeKey      string
	PayPalClientID string

	API            *Client
	CardConfirmer  CardConfirmer
	PayPalApproval ApprovalFlow
	MobileProvider MobileMoneyProvider
	Tracker        analytics.Tracker
}

// Dispatcher owns the adapter registry and routes by payment method.
type Dispatcher struct {
	adapters map[models.PaymentMethod]Adapter
	tracker  analytics.Tracker
}

// NewDispatcher builds the registry from cfg. The set of available methods
// is fixed at construction; nothing is probed at dispatch time.
func NewDispatcher(cfg Config) *Dispatcher {
	tracker := cfg.Tracker
	if tracker == nil {
		tracker = analytics.Nop{}
	}

	d := &Dispatcher{
		adapters: make(map[models.PaymentMethod]Adapter),
		tracker:  tracker,
	}

	if cfg.StripeKey != "" && cfg.API != nil && cfg.CardConfirmer != nil {
		d.adapters[models.MethodCard] = &CardAdapter{api: cfg.API, confirmer: cfg.CardConfirmer}
	}
	if cfg.PayPalClientID != "" && cfg.API != nil && cfg.PayPalApproval != nil {
		d.adapters[models.MethodPayPal] = &PayPalAdapter{api: cfg.API, approval: cfg.PayPalApproval}
	}

	provider := cfg.MobileProvider
	if provider == nil {
		provider = NewStubProvider()
	}
	for _, m := range []models.PaymentMethod{models.MethodLiberiaMobileMoney, models.MethodOrangeMoney} {
		d.adapters[m] = &MobileMoneyAdapter{
			method:   m,
			provider: provider,
			tracker:  tracker,
			api:      cfg.API,
		}
	}

	return d
}

// Available reports whether a payment method has a registered adapter.
func (d *Dispatcher) Available(method models.PaymentMethod) bool {
	_, found := d.adapters[method]
	return found
}

// Methods lists the registered payment methods in a stable order.
func (d *Dispatcher) Methods() []models.PaymentMethod {
	order := []models.PaymentMethod{
		models.MethodCard,
		models.MethodPayPal,
		models.MethodLiberiaMobileMoney,
		models.MethodOrangeMoney,
	}
	var out []models.PaymentMethod
	for _, m := range order {
		if d.Available(m) {
			out = append(out, m)
		}
	}
	return out
}

// Dispatch runs the adapter for the selected method under the payment
// timeout. An unregistered method resolves to an error outcome, same as any
// other failure.
func (d *Dispatcher) Dispatch(ctx context.Context, method models.PaymentMethod, data DonationData) Outcome {
	adapter, found := d.adapters[method]
	if !found {
		return failure("This payment method is not available right now. Please choose another.")
	}

	ctx, cancel := context.WithTimeout(ctx, PaymentTimeout)
	defer cancel()

	return adapter.Execute(ctx, data)
}
