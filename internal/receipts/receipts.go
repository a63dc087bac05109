// Package receipts builds the donor-facing receipt for a completed
// donation: formatted amount, amount in words, fund label, and the
// next-charge estimate for recurring gifts.
package receipts

import (
	"fmt"
	"math"
	"time"

	"github.com/divan/num2words"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// Receipt is the rendered receipt content returned with a confirmed
// donation and linked from the receipt URL.
type Receipt struct {
	DonationNumber string     `json:"donationNumber"`
	TransactionID  string     `json:"transactionId"`
	DonorName      string     `json:"donorName"`
	Amount         float64    `json:"amount"`
	AmountWords    string     `json:"amountWords"`
	Category       string     `json:"category"`
	PaymentMethod  string     `json:"paymentMethod"`
	IssuedAt       time.Time  `json:"issuedAt"`
	ThankYouNote   string     `json:"thankYouNote"`
	NextCharge     *time.Time `json:"nextCharge,omitempty"`
}

// FormatAmount renders a currency amount the way the donation UI shows it.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// AmountInWords spells out a dollar amount for the receipt line, e.g.
// "fifty dollars and 25 cents".
func AmountInWords(amount float64) string {
	dollars := int(amount)
	cents := int(math.Round((amount - float64(dollars)) * 100))
	words := num2words.Convert(dollars)
	unit := "dollars"
	if dollars == 1 {
		unit = "dollar"
	}
	if cents == 0 {
		return fmt.Sprintf("%s %s", words, unit)
	}
	return fmt.Sprintf("%s %s and %02d cents", words, unit, cents)
}

// NextChargeDate estimates the next recurring charge as a fixed thirty
// days out. This is a display approximation, not billing logic.
func NextChargeDate(now time.Time) time.Time {
	return now.AddDate(0, 0, 30)
}

// Build assembles the receipt for a completed donation.
func Build(d *models.Donation, now time.Time) Receipt {
	r := Receipt{
		DonationNumber: d.DonationNumber,
		TransactionID:  d.TransactionID,
		DonorName:      d.DonorName,
		Amount:         d.Amount,
		AmountWords:    AmountInWords(d.Amount),
		Category:       models.CategoryLabel(d.Category),
		PaymentMethod:  string(d.PaymentMethod),
		IssuedAt:       now,
	}
	if d.Type == models.DonationRecurring {
		next := NextChargeDate(now)
		r.NextCharge = &next
	}
	return r
}
