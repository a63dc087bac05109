package checkout

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/payments"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// Donation amount bounds in whole currency units.
const (
	MinAmount    = 1.0
	MaxOneTime   = 10000.0
	MaxRecurring = 5000.0
)

// Validation messages shown on the amount field.
const (
	MsgInvalidNumber = "Please enter a valid number"
	MsgMinimum       = "Minimum donation is $1"
	MsgMaxOneTime    = "Maximum one-time donation is $10,000"
	MsgMaxRecurring  = "Maximum recurring donation is $5,000"
)

// MsgDonorName and MsgDonorEmail block submission when donor info is bad.
const (
	MsgDonorName  = "Please enter your name"
	MsgDonorEmail = "Please enter a valid email address"
)

// local@domain.tld, nothing fancier. Deliverability is the backend's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MaxFor returns the amount cap for a donation type. Recurring donations
// carry the lower cap.
func MaxFor(t models.DonationType) float64 {
	if t == models.DonationRecurring {
		return MaxRecurring
	}
	return MaxOneTime
}

// EffectiveAmount derives the single amount used for submission and
// display. A preset selection wins; otherwise the custom text is parsed.
// The second return is false when no valid amount is available.
func EffectiveAmount(d Draft) (float64, bool) {
	if d.Amount != nil {
		return *d.Amount, true
	}
	text := strings.TrimSpace(d.CustomAmount)
	if text == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// amountError produces the advisory message for the current amount state,
// or "" when the amount is acceptable. An untouched form (no preset, no
// custom text) is not an error yet.
func amountError(d Draft) string {
	if d.Amount == nil && strings.TrimSpace(d.CustomAmount) == "" {
		return ""
	}

	value, ok := EffectiveAmount(d)
	if !ok {
		return MsgInvalidNumber
	}
	if value < MinAmount {
		return MsgMinimum
	}
	if value > MaxFor(d.Type) {
		if d.Type == models.DonationRecurring {
			return MsgMaxRecurring
		}
		return MsgMaxOneTime
	}
	return ""
}

// ValidateForSubmit checks everything that must hold before a submission
// is allowed: a usable in-bounds amount, donor name and email, and — for
// mobile-money methods — a plausible phone number. The returned map is
// empty when the draft is submittable.
func ValidateForSubmit(d Draft) map[string]string {
	errs := make(map[string]string)

	value, ok := EffectiveAmount(d)
	switch {
	case !ok:
		errs["amount"] = MsgInvalidNumber
	case value < MinAmount:
		errs["amount"] = MsgMinimum
	case value > MaxFor(d.Type):
		if d.Type == models.DonationRecurring {
			errs["amount"] = MsgMaxRecurring
		} else {
			errs["amount"] = MsgMaxOneTime
		}
	}

	if strings.TrimSpace(d.Donor.Name) == "" {
		errs[FieldName] = MsgDonorName
	}
	if !emailPattern.MatchString(strings.TrimSpace(d.Donor.Email)) {
		errs[FieldEmail] = MsgDonorEmail
	}

	if d.PaymentMethod == models.MethodLiberiaMobileMoney || d.PaymentMethod == models.MethodOrangeMoney {
		if !payments.ValidMobileNumber(d.PhoneNumber) {
			errs["phoneNumber"] = payments.InvalidPhoneMessage
		}
	}

	return errs
}

// Submittable reports whether the store's draft would pass submission
// validation right now.
func (s *Store) Submittable() bool {
	return len(ValidateForSubmit(s.Draft())) == 0
}
