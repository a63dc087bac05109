package receipts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "$50.00", FormatAmount(50))
	assert.Equal(t, "$42.50", FormatAmount(42.5))
	assert.Equal(t, "$10000.00", FormatAmount(10000))
	assert.Equal(t, "$1.00", FormatAmount(1))
}

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{50, "fifty dollars"},
		{50.25, "fifty dollars and 25 cents"},
		{1, "one dollar"},
		{1.50, "one dollar and 50 cents"},
		{100.05, "one hundred dollars and 05 cents"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AmountInWords(tt.amount))
	}
}

func TestNextChargeDate(t *testing.T) {
	now := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC), NextChargeDate(now))
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	d := &models.Donation{
		DonationNumber: "dn-1",
		TransactionID:  "tx-1",
		DonorName:      "Miatta Kollie",
		Amount:         75.50,
		Type:           models.DonationOneTime,
		Category:       models.CategoryScholarships,
		PaymentMethod:  models.MethodCard,
	}

	r := Build(d, now)

	assert.Equal(t, "dn-1", r.DonationNumber)
	assert.Equal(t, "tx-1", r.TransactionID)
	assert.Equal(t, 75.50, r.Amount)
	assert.Equal(t, "seventy-five dollars and 50 cents", r.AmountWords)
	assert.Equal(t, "Scholarships", r.Category)
	assert.Equal(t, "card", r.PaymentMethod)
	assert.Equal(t, now, r.IssuedAt)
	assert.Nil(t, r.NextCharge)
}

func TestBuildRecurringSetsNextCharge(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	d := &models.Donation{Type: models.DonationRecurring, Amount: 20}

	r := Build(d, now)

	require.NotNil(t, r.NextCharge)
	assert.Equal(t, now.AddDate(0, 0, 30), *r.NextCharge)
}

type fakeNoteModel struct {
	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeNoteModel) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return f.resp, f.err
}

func noteDonation() *models.Donation {
	return &models.Donation{DonorName: "Joe Nagbe", Amount: 100, Category: models.CategoryPrograms}
}

func TestThankYouNoteFallsBackWithoutModel(t *testing.T) {
	note := ThankYouNote(context.Background(), nil, noteDonation())
	assert.Equal(t, fallbackNote, note)
}

func TestThankYouNoteFallsBackOnError(t *testing.T) {
	model := &fakeNoteModel{err: errors.New("quota exceeded")}
	note := ThankYouNote(context.Background(), model, noteDonation())
	assert.Equal(t, fallbackNote, note)
}

func TestThankYouNoteFallsBackOnEmptyResponse(t *testing.T) {
	model := &fakeNoteModel{resp: &genai.GenerateContentResponse{}}
	note := ThankYouNote(context.Background(), model, noteDonation())
	assert.Equal(t, fallbackNote, note)
}

func TestThankYouNoteUsesGeneratedText(t *testing.T) {
	model := &fakeNoteModel{resp: &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("  Thank you, Joe! Your gift keeps our programs running.  ")}},
		}},
	}}
	note := ThankYouNote(context.Background(), model, noteDonation())
	assert.Equal(t, "Thank you, Joe! Your gift keeps our programs running.", note)
}
