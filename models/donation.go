package models

import (
	"time"

	"gorm.io/gorm"
)

// DonationType distinguishes single gifts from recurring pledges.
type DonationType string

const (
	DonationOneTime   DonationType = "one-time"
	DonationRecurring DonationType = "recurring"
)

// DonationFrequency applies only to recurring donations.
type DonationFrequency string

const (
	FrequencyMonthly   DonationFrequency = "monthly"
	FrequencyQuarterly DonationFrequency = "quarterly"
	FrequencyAnnually  DonationFrequency = "annually"
)

// DonationCategory is the fund the donor directs the gift to.
type DonationCategory string

const (
	CategoryAll          DonationCategory = "all"
	CategoryAlumni       DonationCategory = "alumni-support"
	CategoryScholarships DonationCategory = "scholarships"
	CategoryPrograms     DonationCategory = "programs"
)

// PaymentMethod identifies the payment backend a donation goes through.
type PaymentMethod string

const (
	MethodCard               PaymentMethod = "card"
	MethodPayPal             PaymentMethod = "paypal"
	MethodLiberiaMobileMoney PaymentMethod = "liberia_mobile_money"
	MethodOrangeMoney        PaymentMethod = "orange_money"
)

// Donation status values.
const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
)

// DonorInfo is the donor identity captured with a donation. It is embedded
// in the Donation row and reused by the checkout draft.
type DonorInfo struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	DisplayName      string `json:"displayName"`
	OptInRecognition bool   `json:"optInRecognition"`
	OptInUpdates     bool   `json:"optInUpdates"`
}

// Donation is one gift to the association, in any state of its lifecycle.
type Donation struct {
	gorm.Model
	DonationNumber string            `json:"donationNumber" gorm:"size:64;uniqueIndex;not null"`
	Amount         float64           `json:"amount" gorm:"type:numeric(12,2);not null"`
	FeeEstimate    float64           `json:"feeEstimate" gorm:"type:numeric(12,2)"`
	Currency       string            `json:"currency" gorm:"size:8;not null;default:'USD'"`
	Type           DonationType      `json:"type" gorm:"size:16;not null"`
	Frequency      DonationFrequency `json:"frequency,omitempty" gorm:"size:16"`
	Category       DonationCategory  `json:"category" gorm:"size:32;not null"`
	PaymentMethod  PaymentMethod     `json:"paymentMethod" gorm:"size:32;not null"`
	Status         string            `json:"status" gorm:"size:16;index;not null;default:'pending'"`

	DonorName        string `json:"donorName"`
	DonorEmail       string `json:"donorEmail" gorm:"index"`
	DisplayName      string `json:"displayName"`
	OptInRecognition bool   `json:"optInRecognition"`
	OptInUpdates     bool   `json:"optInUpdates"`
	PhoneNumber      string `json:"phoneNumber,omitempty" gorm:"size:32"`

	// ProviderRef is the provider-issued handle for the in-flight payment:
	// a Stripe payment-intent id or a PayPal order id.
	ProviderRef   string     `json:"-" gorm:"size:128;index"`
	TransactionID string     `json:"transactionId,omitempty" gorm:"size:128"`
	ReceiptURL    string     `json:"receiptUrl,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// Donor applies the embedded donor fields as a DonorInfo value.
func (d *Donation) Donor() DonorInfo {
	return DonorInfo{
		Name:             d.DonorName,
		Email:            d.DonorEmail,
		DisplayName:      d.DisplayName,
		OptInRecognition: d.OptInRecognition,
		OptInUpdates:     d.OptInUpdates,
	}
}

// SetDonor copies a DonorInfo value onto the row's embedded donor fields.
func (d *Donation) SetDonor(info DonorInfo) {
	d.DonorName = info.Name
	d.DonorEmail = info.Email
	d.DisplayName = info.DisplayName
	d.OptInRecognition = info.OptInRecognition
	d.OptInUpdates = info.OptInUpdates
}

// CategoryLabel is the human-readable fund name shown on receipts and the wall.
func CategoryLabel(c DonationCategory) string {
	switch c {
	case CategoryAlumni:
		return "Alumni Support"
	case CategoryScholarships:
		return "Scholarships"
	case CategoryPrograms:
		return "Programs"
	default:
		return "Area of Greatest Need"
	}
}
