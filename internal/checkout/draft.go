// Package checkout implements the donation form state machine: a draft
// store holding one in-progress donation, a resolver deriving the effective
// amount, and an orchestrator sequencing validation, payment execution and
// the terminal state transition.
//
// A Store is created per checkout session and passed around explicitly, so
// tests and concurrent sessions get isolated instances. The rendering layer
// must mutate the draft only through the operations below; they are the
// only thing keeping intermediate states consistent.
package checkout

import (
	"fmt"
	"sync"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// Draft is the in-progress donation. Exactly one of Amount (a preset
// selection) and CustomAmount (raw text input) is authoritative at any
// time; setting one clears the other.
type Draft struct {
	Type          models.DonationType
	Frequency     models.DonationFrequency
	Amount        *float64
	CustomAmount  string
	Category      models.DonationCategory
	Donor         models.DonorInfo
	PaymentMethod models.PaymentMethod
	PhoneNumber   string
}

// TransactionResult is the immutable record of a successful payment.
type TransactionResult struct {
	TransactionID string
	ReceiptURL    string
	DonationID    string
}

// Store is the single source of truth for one checkout session: the draft,
// the processing/success/error flags, and per-field validation errors.
type Store struct {
	mu          sync.Mutex
	draft       Draft
	processing  bool
	success     bool
	errMsg      string
	advisory    string
	result      *TransactionResult
	fieldErrors map[string]string
}

func defaultDraft() Draft {
	return Draft{
		Type:          models.DonationOneTime,
		Category:      models.CategoryAll,
		PaymentMethod: models.MethodCard,
	}
}

// NewStore returns a store holding the default draft.
func NewStore() *Store {
	return &Store{
		draft:       defaultDraft(),
		fieldErrors: make(map[string]string),
	}
}

// SetDonationType switches between one-time and recurring. Frequency is
// meaningful only for recurring donations and is forced empty otherwise.
// The amount advisory is re-run because the recurring cap is lower.
func (s *Store) SetDonationType(t models.DonationType) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.Type = t
	if t == models.DonationOneTime {
		s.draft.Frequency = ""
	} else if s.draft.Frequency == "" {
		s.draft.Frequency = models.FrequencyMonthly
	}
	s.refreshAmountAdvisory()
}

// SetFrequency sets the recurring cadence. Ignored for one-time drafts.
func (s *Store) SetFrequency(f models.DonationFrequency) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft.Type == models.DonationRecurring {
		s.draft.Frequency = f
	}
}

// SetAmount selects a preset amount. A non-nil value clears the custom
// input and any amount advisory.
func (s *Store) SetAmount(value *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.Amount = value
	if value != nil {
		s.draft.CustomAmount = ""
	}
	s.refreshAmountAdvisory()
}

// SetCustomAmount records raw amount text. Non-empty text clears the preset
// selection. Validation here is advisory: the donor keeps typing, the
// message updates, and nothing blocks until submit.
func (s *Store) SetCustomAmount(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.CustomAmount = text
	if text != "" {
		s.draft.Amount = nil
	}
	s.refreshAmountAdvisory()
}

func (s *Store) SetCategory(c models.DonationCategory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Category = c
}

func (s *Store) SetPaymentMethod(m models.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.PaymentMethod = m
}

// SetPhoneNumber records the mobile-money number and clears its error.
func (s *Store) SetPhoneNumber(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.PhoneNumber = phone
	delete(s.fieldErrors, "phoneNumber")
}

// Donor field names accepted by UpdateDonorField.
const (
	FieldName             = "name"
	FieldEmail            = "email"
	FieldDisplayName      = "displayName"
	FieldOptInRecognition = "optInRecognition"
	FieldOptInUpdates     = "optInUpdates"
)

// UpdateDonorField sets one nested donor field and clears that field's
// validation error, so a correction removes the message immediately.
func (s *Store) UpdateDonorField(field string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case FieldName:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("donor field %s expects a string", field)
		}
		s.draft.Donor.Name = v
	case FieldEmail:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("donor field %s expects a string", field)
		}
		s.draft.Donor.Email = v
	case FieldDisplayName:
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("donor field %s expects a string", field)
		}
		s.draft.Donor.DisplayName = v
	case FieldOptInRecognition:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("donor field %s expects a bool", field)
		}
		s.draft.Donor.OptInRecognition = v
	case FieldOptInUpdates:
		v, ok := value.(bool)
		if !ok {
			return fmt.Errorf("donor field %s expects a bool", field)
		}
		s.draft.Donor.OptInUpdates = v
	default:
		return fmt.Errorf("unknown donor field %q", field)
	}

	delete(s.fieldErrors, field)
	return nil
}

// StartProcessing transitions into the processing state, clearing both
// terminal flags first so at most one of processing/success/error is ever
// active. It refuses (returns false) while a submission is in flight,
// which is what limits the session to one adapter invocation at a time.
func (s *Store) StartProcessing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.processing {
		return false
	}
	s.processing = true
	s.success = false
	s.errMsg = ""
	s.advisory = ""
	s.result = nil
	return true
}

// ProcessingSuccess records the terminal success state. The transaction
// result is immutable from here until a reset.
func (s *Store) ProcessingSuccess(result TransactionResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processing = false
	s.success = true
	s.errMsg = ""
	s.result = &result
}

// ProcessingError records the terminal error state with a user-facing
// message. The draft survives so the donor can retry immediately.
func (s *Store) ProcessingError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processing = false
	s.success = false
	s.errMsg = message
}

// ProcessingCancelled ends processing without reaching success or error:
// the donor backed out. Only the advisory message is set.
func (s *Store) ProcessingCancelled(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.processing = false
	s.success = false
	s.errMsg = ""
	s.advisory = message
}

// ResetDonation restores defaults after a finished (or abandoned) checkout
// but keeps the donor's name and email, so a repeat donation doesn't start
// from a blank form. Opt-ins and the transaction result are cleared.
func (s *Store) ResetDonation() {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, email := s.draft.Donor.Name, s.draft.Donor.Email
	s.resetLocked()
	s.draft.Donor.Name = name
	s.draft.Donor.Email = email
}

// ResetDonationComplete is the full reset, donor identity included.
func (s *Store) ResetDonationComplete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Store) resetLocked() {
	s.draft = defaultDraft()
	s.processing = false
	s.success = false
	s.errMsg = ""
	s.advisory = ""
	s.result = nil
	s.fieldErrors = make(map[string]string)
}

// refreshAmountAdvisory recomputes the advisory message for the amount
// field. Callers hold the lock.
func (s *Store) refreshAmountAdvisory() {
	if msg := amountError(s.draft); msg != "" {
		s.fieldErrors["amount"] = msg
	} else {
		delete(s.fieldErrors, "amount")
	}
}

func (s *Store) setFieldErrors(errs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, v := range errs {
		s.fieldErrors[k] = v
	}
}

// --- Read side ---

// Draft returns a copy of the current draft.
func (s *Store) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *Store) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

func (s *Store) Succeeded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.success
}

// ErrorMessage returns the terminal error text, or "".
func (s *Store) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Advisory returns the non-error advisory (e.g. cancellation), or "".
func (s *Store) Advisory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advisory
}

// Result returns a copy of the transaction result, or nil before success.
func (s *Store) Result() *TransactionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil
	}
	r := *s.result
	return &r
}

// FieldErrors returns a copy of the per-field validation errors.
func (s *Store) FieldErrors() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.fieldErrors))
	for k, v := range s.fieldErrors {
		out[k] = v
	}
	return out
}
