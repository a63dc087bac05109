package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/config"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/analytics"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/checkout"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/payments"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/providers"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/receipts"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// Tracker is the analytics sink for the donation endpoints. Wired at
// startup; defaults to discarding.
var Tracker analytics.Tracker = analytics.Nop{}

// CreateIntentInput is the body of POST /api/donations/create-intent.
type CreateIntentInput struct {
	Amount   float64           `json:"amount" binding:"required,gt=0"`
	Currency string            `json:"currency"`
	Type     string            `json:"type"`
	Category string            `json:"category"`
	Metadata map[string]string `json:"metadata"`
}

// ConfirmInput is the body of POST /api/donations/confirm.
type ConfirmInput struct {
	PaymentIntentID string           `json:"paymentIntentId" binding:"required"`
	DonationID      string           `json:"donationId" binding:"required"`
	DonorInfo       models.DonorInfo `json:"donorInfo"`
}

// PayPalOrderInput is the body of POST /api/donations/paypal/create-order.
type PayPalOrderInput struct {
	Amount    float64          `json:"amount" binding:"required,gt=0"`
	Currency  string           `json:"currency"`
	Type      string           `json:"type"`
	Category  string           `json:"category"`
	DonorInfo models.DonorInfo `json:"donorInfo"`
}

// MobileMoneyInput is the body of POST /api/donations/mobile-money.
type MobileMoneyInput struct {
	Amount        float64          `json:"amount" binding:"required,gt=0"`
	Currency      string           `json:"currency"`
	Type          string           `json:"type"`
	Category      string           `json:"category"`
	DonorInfo     models.DonorInfo `json:"donorInfo"`
	PhoneNumber   string           `json:"phoneNumber" binding:"required"`
	Method        string           `json:"method" binding:"required"`
	TransactionID string           `json:"transactionId" binding:"required"`
}

func normalizeType(t string) models.DonationType {
	if models.DonationType(t) == models.DonationRecurring {
		return models.DonationRecurring
	}
	return models.DonationOneTime
}

func normalizeCategory(c string) models.DonationCategory {
	switch models.DonationCategory(c) {
	case models.CategoryAlumni, models.CategoryScholarships, models.CategoryPrograms:
		return models.DonationCategory(c)
	default:
		return models.CategoryAll
	}
}

// amountBoundsError mirrors the checkout resolver's bounds server-side, so
// a tampering client cannot sneak an out-of-range amount past the form.
func amountBoundsError(amount float64, t models.DonationType) string {
	if amount < checkout.MinAmount {
		return checkout.MsgMinimum
	}
	if amount > checkout.MaxFor(t) {
		if t == models.DonationRecurring {
			return checkout.MsgMaxRecurring
		}
		return checkout.MsgMaxOneTime
	}
	return ""
}

func currencyOrDefault(c string) string {
	if c == "" {
		return config.App.Currency
	}
	return c
}

func receiptURLFor(d *models.Donation) string {
	return config.App.PublicBaseURL + "/receipts/" + d.DonationNumber
}

func newDonation(amount float64, currency string, t models.DonationType, cat models.DonationCategory, method models.PaymentMethod) models.Donation {
	d := models.Donation{
		DonationNumber: uuid.NewString(),
		Amount:         amount,
		Currency:       currencyOrDefault(currency),
		Type:           t,
		Category:       cat,
		PaymentMethod:  method,
		Status:         models.DonationPending,
	}
	if t == models.DonationRecurring {
		d.Frequency = models.FrequencyMonthly
	}
	if fee, ok := config.Fees.Estimate(method, amount); ok {
		d.FeeEstimate = math.Round(fee*100) / 100
	}
	return d
}

// CreateIntentHandler opens a Stripe payment intent for a new pending
// donation and hands the client secret back to the card flow.
func CreateIntentHandler(c *gin.Context) {
	if config.Stripe == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Card payments are not available right now"})
		return
	}

	var input CreateIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid donation data: " + err.Error()})
		return
	}

	donationType := normalizeType(input.Type)
	if msg := amountBoundsError(input.Amount, donationType); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	donation := newDonation(input.Amount, input.Currency, donationType, normalizeCategory(input.Category), models.MethodCard)
	if err := config.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not record the donation"})
		return
	}

	metadata := map[string]string{"donation_number": donation.DonationNumber}
	for k, v := range input.Metadata {
		metadata[k] = v
	}

	cents := int64(math.Round(donation.Amount * 100))
	intent, err := config.Stripe.CreatePaymentIntent(c.Request.Context(), cents, donation.Currency, metadata)
	if err != nil {
		slog.Error("Stripe intent creation failed", "donation", donation.DonationNumber, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": payments.GenericErrorMessage})
		return
	}

	donation.ProviderRef = intent.ID
	if err := config.DB.Save(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not record the donation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
		"donationId":   donation.DonationNumber,
	})
}

// ConfirmDonationHandler verifies a succeeded payment intent with Stripe
// and marks the donation completed. Confirmation is idempotent on the
// payment-intent id: a duplicate confirm returns the already-completed
// donation instead of double-recording it.
func ConfirmDonationHandler(c *gin.Context) {
	if config.Stripe == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Card payments are not available right now"})
		return
	}

	var input ConfirmInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid confirmation data: " + err.Error()})
		return
	}

	var donation models.Donation
	if err := config.DB.Where("donation_number = ?", input.DonationID).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Donation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not look up the donation"})
		return
	}

	if donation.Status == models.DonationCompleted {
		respondCompleted(c, &donation)
		return
	}

	if config.RDB != nil {
		claimed, err := config.RDB.SetNX(c.Request.Context(), "donation:confirm:"+input.PaymentIntentID, donation.DonationNumber, 24*time.Hour).Result()
		if err != nil {
			slog.Warn("Confirm idempotency check unavailable", "error", err)
		} else if !claimed {
			// A concurrent confirm already owns this intent; report the
			// row as it stands rather than racing it.
			respondCompleted(c, &donation)
			return
		}
	}

	intent, err := config.Stripe.GetPaymentIntent(c.Request.Context(), input.PaymentIntentID)
	if err != nil {
		slog.Error("Stripe intent lookup failed", "intent", input.PaymentIntentID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": payments.GenericErrorMessage})
		return
	}
	if intent.Status != "succeeded" {
		c.JSON(http.StatusPaymentRequired, gin.H{"message": "Payment has not completed"})
		return
	}

	now := time.Now()
	donation.SetDonor(input.DonorInfo)
	donation.Status = models.DonationCompleted
	donation.TransactionID = intent.ID
	donation.ReceiptURL = receiptURLFor(&donation)
	donation.CompletedAt = &now

	if err := config.DB.Save(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not record the confirmation"})
		return
	}

	finishDonation(&donation)
	respondCompleted(c, &donation)
}

// PayPalCreateOrderHandler opens a PayPal order for a new pending donation.
func PayPalCreateOrderHandler(c *gin.Context) {
	if config.PayPal == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "PayPal payments are not available right now"})
		return
	}

	var input PayPalOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid donation data: " + err.Error()})
		return
	}

	donationType := normalizeType(input.Type)
	if msg := amountBoundsError(input.Amount, donationType); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	donation := newDonation(input.Amount, input.Currency, donationType, normalizeCategory(input.Category), models.MethodPayPal)
	donation.SetDonor(input.DonorInfo)
	if err := config.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not record the donation"})
		return
	}

	orderID, err := config.PayPal.CreateOrder(c.Request.Context(), donation.Amount, donation.Currency,
		"Donation to PSDAHS Alumni Association ("+models.CategoryLabel(donation.Category)+")")
	if err != nil {
		slog.Error("PayPal order creation failed", "donation", donation.DonationNumber, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": paypalUserMessage(err)})
		return
	}

	donation.ProviderRef = orderID
	if err := config.DB.Save(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not record the donation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":    orderID,
		"donationId": donation.DonationNumber,
	})
}

// PayPalCaptureOrderHandler captures an approved order and completes the
// donation. Idempotent: capturing an already-completed order returns the
// recorded donation.
func PayPalCaptureOrderHandler(c *gin.Context) {
	if config.PayPal == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "PayPal payments are not available right now"})
		return
	}

	var input struct {
		OrderID string `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid capture data: " + err.Error()})
		return
	}

	var donation models.Donation
	if err := config.DB.Where("provider_ref = ? AND payment_method = ?", input.OrderID, models.MethodPayPal).First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No donation found for this order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not look up the donation"})
		return
	}

	if donation.Status == models.DonationCompleted {
		respondCompleted(c, &donation)
		return
	}

	capture, err := config.PayPal.CaptureOrder(c.Request.Context(), input.OrderID)
	if err != nil {
		slog.Error("PayPal capture failed", "order", input.OrderID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"message": paypalUserMessage(err)})
		return
	}

	now := time.Now()
	donation.Status = models.DonationCompleted
	donation.TransactionID = capture.CaptureID
	donation.ReceiptURL = receiptURLFor(&donation)
	donation.CompletedAt = &now

	if err := config.DB.Save(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not record the capture"})
		return
	}

	finishDonation(&donation)
	respondCompleted(c, &donation)
}

// MobileMoneyDonationHandler records a donation the placeholder mobile
// money flow already collected client-side.
func MobileMoneyDonationHandler(c *gin.Context) {
	var input MobileMoneyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid donation data: " + err.Error()})
		return
	}

	method := models.PaymentMethod(input.Method)
	if method != models.MethodLiberiaMobileMoney && method != models.MethodOrangeMoney {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown mobile money method"})
		return
	}
	if !payments.ValidMobileNumber(input.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"message": payments.InvalidPhoneMessage})
		return
	}

	donationType := normalizeType(input.Type)
	if msg := amountBoundsError(input.Amount, donationType); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	now := time.Now()
	donation := newDonation(input.Amount, input.Currency, donationType, normalizeCategory(input.Category), method)
	donation.SetDonor(input.DonorInfo)
	donation.PhoneNumber = input.PhoneNumber
	donation.Status = models.DonationCompleted
	donation.TransactionID = input.TransactionID
	donation.CompletedAt = &now
	donation.ReceiptURL = receiptURLFor(&donation)

	if err := config.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not record the donation"})
		return
	}

	finishDonation(&donation)
	respondCompleted(c, &donation)
}

// RecentDonationsHandler lists the latest completed donations from donors
// who opted into public recognition.
func RecentDonationsHandler(c *gin.Context) {
	var donations []models.Donation
	if err := config.DB.
		Where("status = ? AND opt_in_recognition = ?", models.DonationCompleted, true).
		Order("completed_at desc").
		Limit(20).
		Find(&donations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch donations"})
		return
	}

	type entry struct {
		DisplayName string     `json:"displayName"`
		Amount      float64    `json:"amount"`
		Category    string     `json:"category"`
		CompletedAt *time.Time `json:"completedAt"`
	}
	out := make([]entry, 0, len(donations))
	for _, d := range donations {
		name := d.DisplayName
		if name == "" {
			name = d.DonorName
		}
		if name == "" {
			name = "Anonymous"
		}
		out = append(out, entry{
			DisplayName: name,
			Amount:      d.Amount,
			Category:    models.CategoryLabel(d.Category),
			CompletedAt: d.CompletedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GetReceiptHandler renders the receipt for a completed donation.
func GetReceiptHandler(c *gin.Context) {
	var donation models.Donation
	if err := config.DB.
		Where("donation_number = ? AND status = ?", c.Param("number"), models.DonationCompleted).
		First(&donation).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		return
	}

	receipt := receipts.Build(&donation, time.Now())
	if config.GeminiClient != nil {
		receipt.ThankYouNote = receipts.ThankYouNote(c.Request.Context(), config.GeminiClient, &donation)
	} else {
		receipt.ThankYouNote = receipts.ThankYouNote(c.Request.Context(), nil, &donation)
	}
	c.JSON(http.StatusOK, receipt)
}

// FeeQuoteHandler estimates the processing fee for an amount and method.
func FeeQuoteHandler(c *gin.Context) {
	var query struct {
		Amount float64 `form:"amount" binding:"required,gt=0"`
		Method string  `form:"method" binding:"required"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount and method are required"})
		return
	}

	fee, ok := config.Fees.Estimate(models.PaymentMethod(query.Method), query.Amount)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown payment method"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"amount":      query.Amount,
		"method":      query.Method,
		"feeEstimate": math.Round(fee*100) / 100,
	})
}

// respondCompleted is the uniform success body for the confirm/capture
// endpoints.
func respondCompleted(c *gin.Context, d *models.Donation) {
	c.JSON(http.StatusOK, gin.H{
		"transactionId": d.TransactionID,
		"receiptUrl":    d.ReceiptURL,
		"donation":      d,
	})
}

// finishDonation runs the after-completion side effects: live wall
// broadcast and the analytics event. Both are fire-and-forget.
func finishDonation(d *models.Donation) {
	WallHub.BroadcastDonation(d)
	Tracker.Emit(analytics.EventDonationSuccess, map[string]string{
		"method":         string(d.PaymentMethod),
		"category":       string(d.Category),
		"transaction_id": d.TransactionID,
	})
}

// paypalUserMessage maps a provider error to donor-safe text.
func paypalUserMessage(err error) string {
	var ppErr *providers.PayPalError
	if errors.As(err, &ppErr) {
		return payments.PayPalErrorText(ppErr.Name)
	}
	return payments.GenericErrorMessage
}
