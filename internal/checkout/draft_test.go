package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore()
	d := s.Draft()

	assert.Equal(t, models.DonationOneTime, d.Type)
	assert.Equal(t, models.DonationFrequency(""), d.Frequency)
	assert.Equal(t, models.CategoryAll, d.Category)
	assert.Equal(t, models.MethodCard, d.PaymentMethod)
	assert.Nil(t, d.Amount)
	assert.Empty(t, d.CustomAmount)
	assert.False(t, s.Processing())
	assert.False(t, s.Succeeded())
	assert.Empty(t, s.ErrorMessage())
	assert.Nil(t, s.Result())
}

func TestAmountAndCustomAmountAreMutuallyExclusive(t *testing.T) {
	s := NewStore()

	s.SetAmount(floatPtr(50))
	d := s.Draft()
	require.NotNil(t, d.Amount)
	assert.Equal(t, 50.0, *d.Amount)
	assert.Empty(t, d.CustomAmount)

	s.SetCustomAmount("75")
	d = s.Draft()
	assert.Nil(t, d.Amount)
	assert.Equal(t, "75", d.CustomAmount)

	s.SetAmount(floatPtr(100))
	d = s.Draft()
	require.NotNil(t, d.Amount)
	assert.Equal(t, 100.0, *d.Amount)
	assert.Empty(t, d.CustomAmount)
}

func TestClearingAmountKeepsCustomText(t *testing.T) {
	s := NewStore()
	s.SetCustomAmount("25")

	// A nil preset is a deselection, not a new selection; it must not
	// wipe what the donor typed.
	s.SetAmount(nil)
	d := s.Draft()
	assert.Nil(t, d.Amount)
	assert.Equal(t, "25", d.CustomAmount)
}

func TestSetDonationTypeControlsFrequency(t *testing.T) {
	s := NewStore()

	s.SetDonationType(models.DonationRecurring)
	assert.Equal(t, models.FrequencyMonthly, s.Draft().Frequency)

	s.SetFrequency(models.FrequencyQuarterly)
	assert.Equal(t, models.FrequencyQuarterly, s.Draft().Frequency)

	s.SetDonationType(models.DonationOneTime)
	assert.Equal(t, models.DonationFrequency(""), s.Draft().Frequency)

	// Frequency changes are ignored while the draft is one-time.
	s.SetFrequency(models.FrequencyAnnually)
	assert.Equal(t, models.DonationFrequency(""), s.Draft().Frequency)

	// Flipping back to recurring restores the monthly default rather
	// than resurrecting the old choice.
	s.SetDonationType(models.DonationRecurring)
	assert.Equal(t, models.FrequencyMonthly, s.Draft().Frequency)
}

func TestTypeSwitchReevaluatesAmountAdvisory(t *testing.T) {
	s := NewStore()
	s.SetCustomAmount("7500")
	assert.Empty(t, s.FieldErrors()["amount"])

	s.SetDonationType(models.DonationRecurring)
	assert.Equal(t, MsgMaxRecurring, s.FieldErrors()["amount"])

	s.SetDonationType(models.DonationOneTime)
	assert.Empty(t, s.FieldErrors()["amount"])
}

func TestUpdateDonorFieldClearsItsError(t *testing.T) {
	s := NewStore()
	s.setFieldErrors(map[string]string{FieldName: MsgDonorName, FieldEmail: MsgDonorEmail})

	require.NoError(t, s.UpdateDonorField(FieldName, "Miatta Kollie"))
	errs := s.FieldErrors()
	assert.NotContains(t, errs, FieldName)
	assert.Contains(t, errs, FieldEmail)

	require.NoError(t, s.UpdateDonorField(FieldEmail, "miatta@example.com"))
	assert.NotContains(t, s.FieldErrors(), FieldEmail)
}

func TestUpdateDonorFieldRejectsBadInput(t *testing.T) {
	s := NewStore()
	assert.Error(t, s.UpdateDonorField(FieldName, 42))
	assert.Error(t, s.UpdateDonorField(FieldOptInUpdates, "yes"))
	assert.Error(t, s.UpdateDonorField("nickname", "Mo"))
}

func TestSetPhoneNumberClearsPhoneError(t *testing.T) {
	s := NewStore()
	s.setFieldErrors(map[string]string{"phoneNumber": "Enter a valid mobile number"})
	s.SetPhoneNumber("0886123456")
	assert.NotContains(t, s.FieldErrors(), "phoneNumber")
	assert.Equal(t, "0886123456", s.Draft().PhoneNumber)
}

func TestStartProcessingIsSingleFlight(t *testing.T) {
	s := NewStore()

	require.True(t, s.StartProcessing())
	assert.False(t, s.StartProcessing(), "second start while processing must refuse")

	s.ProcessingError("boom")
	assert.True(t, s.StartProcessing(), "terminal state must allow a new attempt")
}

func TestStartProcessingClearsTerminalState(t *testing.T) {
	s := NewStore()
	require.True(t, s.StartProcessing())
	s.ProcessingError("declined")
	require.Equal(t, "declined", s.ErrorMessage())

	require.True(t, s.StartProcessing())
	assert.True(t, s.Processing())
	assert.False(t, s.Succeeded())
	assert.Empty(t, s.ErrorMessage())
	assert.Nil(t, s.Result())
}

func TestProcessingSuccessRecordsResult(t *testing.T) {
	s := NewStore()
	require.True(t, s.StartProcessing())
	s.ProcessingSuccess(TransactionResult{TransactionID: "tx_1", ReceiptURL: "/r/1", DonationID: "d_1"})

	assert.False(t, s.Processing())
	assert.True(t, s.Succeeded())
	assert.Empty(t, s.ErrorMessage())
	result := s.Result()
	require.NotNil(t, result)
	assert.Equal(t, "tx_1", result.TransactionID)
	assert.Equal(t, "/r/1", result.ReceiptURL)
	assert.Equal(t, "d_1", result.DonationID)
}

func TestProcessingCancelledIsNeitherSuccessNorError(t *testing.T) {
	s := NewStore()
	require.True(t, s.StartProcessing())
	s.ProcessingCancelled("Payment was cancelled. You have not been charged.")

	assert.False(t, s.Processing())
	assert.False(t, s.Succeeded())
	assert.Empty(t, s.ErrorMessage())
	assert.Equal(t, "Payment was cancelled. You have not been charged.", s.Advisory())
}

func TestResetDonationKeepsDonorIdentity(t *testing.T) {
	s := NewStore()
	s.SetDonationType(models.DonationRecurring)
	s.SetCustomAmount("250")
	s.SetCategory(models.CategoryScholarships)
	s.SetPaymentMethod(models.MethodPayPal)
	require.NoError(t, s.UpdateDonorField(FieldName, "Joe Nagbe"))
	require.NoError(t, s.UpdateDonorField(FieldEmail, "joe@example.com"))
	require.NoError(t, s.UpdateDonorField(FieldOptInRecognition, true))
	require.True(t, s.StartProcessing())
	s.ProcessingSuccess(TransactionResult{TransactionID: "tx_9"})

	s.ResetDonation()

	d := s.Draft()
	assert.Equal(t, "Joe Nagbe", d.Donor.Name)
	assert.Equal(t, "joe@example.com", d.Donor.Email)
	assert.False(t, d.Donor.OptInRecognition)
	assert.Equal(t, models.DonationOneTime, d.Type)
	assert.Equal(t, models.CategoryAll, d.Category)
	assert.Equal(t, models.MethodCard, d.PaymentMethod)
	assert.Empty(t, d.CustomAmount)
	assert.False(t, s.Succeeded())
	assert.Nil(t, s.Result())
	assert.Empty(t, s.FieldErrors())
}

func TestResetDonationIsIdempotent(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.UpdateDonorField(FieldName, "Joe Nagbe"))

	s.ResetDonation()
	first := s.Draft()
	s.ResetDonation()
	assert.Equal(t, first, s.Draft())
}

func TestResetDonationCompleteClearsEverything(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.UpdateDonorField(FieldName, "Joe Nagbe"))
	require.NoError(t, s.UpdateDonorField(FieldEmail, "joe@example.com"))

	s.ResetDonationComplete()
	d := s.Draft()
	assert.Empty(t, d.Donor.Name)
	assert.Empty(t, d.Donor.Email)
}
