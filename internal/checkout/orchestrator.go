package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/analytics"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/payments"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/receipts"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// Status is the orchestrator's view of the checkout session.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

var (
	// ErrSubmissionInFlight means a submit arrived while another was
	// processing. The extra trigger is dropped, never queued.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	// ErrNotSubmittable means validation failed before any network call.
	ErrNotSubmittable = errors.New("donation is not ready to submit")
)

// Orchestrator sequences one checkout session: validate, flip the store
// into processing, hand the donation to the dispatcher, and map the
// adapter's outcome back onto the store.
type Orchestrator struct {
	store      *Store
	dispatcher *payments.Dispatcher
	tracker    analytics.Tracker
	currency   string
}

func NewOrchestrator(store *Store, dispatcher *payments.Dispatcher, tracker analytics.Tracker, currency string) *Orchestrator {
	if tracker == nil {
		tracker = analytics.Nop{}
	}
	if currency == "" {
		currency = "USD"
	}
	return &Orchestrator{
		store:      store,
		dispatcher: dispatcher,
		tracker:    tracker,
		currency:   currency,
	}
}

// Store exposes the session's form state store.
func (o *Orchestrator) Store() *Store { return o.store }

// Status derives the session state from the store's flags.
func (o *Orchestrator) Status() Status {
	switch {
	case o.store.Processing():
		return StatusProcessing
	case o.store.Succeeded():
		return StatusSuccess
	case o.store.ErrorMessage() != "":
		return StatusError
	default:
		return StatusIdle
	}
}

// Submit runs the full submission sequence and returns the resulting
// status. Validation failures and in-flight duplicates return an error
// without touching the network; adapter failures are not errors here —
// they land in the store as the error state.
func (o *Orchestrator) Submit(ctx context.Context) (Status, error) {
	draft := o.store.Draft()

	if errs := ValidateForSubmit(draft); len(errs) > 0 {
		o.store.setFieldErrors(errs)
		return o.Status(), ErrNotSubmittable
	}

	if !o.store.StartProcessing() {
		return StatusProcessing, ErrSubmissionInFlight
	}

	amount, _ := EffectiveAmount(draft)

	o.tracker.Emit(analytics.EventDonationSubmitted, map[string]string{
		"method":   string(draft.PaymentMethod),
		"type":     string(draft.Type),
		"category": string(draft.Category),
		"amount":   fmt.Sprintf("%.2f", amount),
	})

	outcome := o.dispatcher.Dispatch(ctx, draft.PaymentMethod, payments.DonationData{
		Amount:      amount,
		Currency:    o.currency,
		Type:        draft.Type,
		Frequency:   draft.Frequency,
		Category:    draft.Category,
		Donor:       draft.Donor,
		PhoneNumber: draft.PhoneNumber,
		Metadata: map[string]string{
			"donor_email": draft.Donor.Email,
		},
	})

	switch outcome.Status {
	case payments.OutcomeOK:
		o.store.ProcessingSuccess(TransactionResult{
			TransactionID: outcome.TransactionID,
			ReceiptURL:    outcome.ReceiptURL,
			DonationID:    outcome.DonationID,
		})
		o.tracker.Emit(analytics.EventDonationSuccess, map[string]string{
			"method":         string(draft.PaymentMethod),
			"transaction_id": outcome.TransactionID,
		})
	case payments.OutcomeCancelled:
		o.store.ProcessingCancelled(payments.CancelledMessage)
		o.tracker.Emit(analytics.EventDonationCancelled, map[string]string{
			"method": string(draft.PaymentMethod),
		})
	default:
		o.store.ProcessingError(outcome.Message)
		o.tracker.Emit(analytics.EventDonationError, map[string]string{
			"method": string(draft.PaymentMethod),
			"error":  outcome.Message,
		})
	}

	return o.Status(), nil
}

// ThankYou is the data behind the post-success presentation.
type ThankYou struct {
	AmountFormatted string
	CategoryLabel   string
	TransactionID   string
	ReceiptURL      string
	// NextCharge is set for recurring donations only. It is a fixed
	// thirty-day approximation, not a billing-cycle computation.
	NextCharge *time.Time
}

// ThankYou assembles the success presentation. The second return is false
// until the session has actually succeeded.
func (o *Orchestrator) ThankYou(now time.Time) (ThankYou, bool) {
	result := o.store.Result()
	if !o.store.Succeeded() || result == nil {
		return ThankYou{}, false
	}

	draft := o.store.Draft()
	amount, _ := EffectiveAmount(draft)

	ty := ThankYou{
		AmountFormatted: receipts.FormatAmount(amount),
		CategoryLabel:   models.CategoryLabel(draft.Category),
		TransactionID:   result.TransactionID,
		ReceiptURL:      result.ReceiptURL,
	}
	if draft.Type == models.DonationRecurring {
		next := receipts.NextChargeDate(now)
		ty.NextCharge = &next
	}
	return ty, true
}
