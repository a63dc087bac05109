package payments

// GenericErrorMessage replaces any provider failure that has no specific
// mapping. Raw provider errors are never shown to the donor.
const GenericErrorMessage = "Something went wrong processing your donation. Please try again or contact support."

// CancelledMessage is the advisory shown when the donor backs out of the
// PayPal approval flow. It is not an error.
const CancelledMessage = "Payment was cancelled. You have not been charged."

// cardDeclineMessages maps provider decline codes to fixed user-facing
// strings. Unmapped codes fall through to the generic retry message.
var cardDeclineMessages = map[string]string{
	"card_declined":           "Your card was declined. Please try a different card.",
	"expired_card":            "Your card has expired. Please use a different card.",
	"insufficient_funds":      "Your card has insufficient funds. Please try a different card.",
	"authentication_required": "Your bank requires additional authentication. Please try again.",
	"rate_limit":              "Too many payment attempts. Please wait a moment and try again.",
	"incorrect_cvc":           "Your card's security code is incorrect.",
	"processing_error":        "An error occurred while processing your card. Please try again.",
}

// CardErrorText resolves a decline code to its user-facing string.
func CardErrorText(code string) string {
	if msg, found := cardDeclineMessages[code]; found {
		return msg
	}
	return GenericErrorMessage
}

// paypalErrorMessages maps PayPal error names to user-facing strings.
// RESOURCE_NOT_FOUND on capture means the order aged out on PayPal's side,
// so it is surfaced as an expired session.
var paypalErrorMessages = map[string]string{
	"INSTRUMENT_DECLINED":    "Your payment method was declined by PayPal. Please try another.",
	"PAYER_ACTION_REQUIRED":  "PayPal needs more information to complete this payment. Please try again.",
	"RESOURCE_NOT_FOUND":     "Your PayPal session has expired. Please try again.",
	"ORDER_NOT_APPROVED":     "The PayPal payment was not approved. Please try again.",
	"TRANSACTION_REFUSED":    "PayPal refused the transaction. Please try another payment method.",
	"INTERNAL_SERVICE_ERROR": "PayPal is temporarily unavailable. Please try again shortly.",
}

// PayPalErrorText resolves a PayPal error name to its user-facing string.
func PayPalErrorText(name string) string {
	if msg, found := paypalErrorMessages[name]; found {
		return msg
	}
	return GenericErrorMessage
}
