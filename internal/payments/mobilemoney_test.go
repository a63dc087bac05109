package payments

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/analytics"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

type captureTracker struct {
	mu     sync.Mutex
	events []string
}

func (t *captureTracker) Emit(name string, fields map[string]string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, name)
}

func (t *captureTracker) names() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.events...)
}

type scriptedProvider struct {
	receipt  ProviderReceipt
	err      error
	requests []ProviderRequest
}

func (p *scriptedProvider) RequestPayment(ctx context.Context, req ProviderRequest) (ProviderReceipt, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return ProviderReceipt{}, p.err
	}
	return p.receipt, nil
}

func mobileData(phone string) DonationData {
	return DonationData{
		Amount:      25,
		Currency:    "USD",
		Type:        models.DonationOneTime,
		Category:    models.CategoryAll,
		Donor:       models.DonorInfo{Name: "Miatta Kollie", Email: "miatta@example.com"},
		PhoneNumber: phone,
	}
}

func TestValidMobileNumber(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0886123456", true},
		{"+231 88 612 3456", true},
		{"0886-123-456", true},
		{"12345678", true},
		{"1234567", false},
		{"", false},
		{"phone", false},
		{"12-34", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidMobileNumber(tt.phone), "phone %q", tt.phone)
	}
}

func TestMobileMoneyRejectsBadPhoneBeforeAnything(t *testing.T) {
	tracker := &captureTracker{}
	provider := &scriptedProvider{}
	adapter := &MobileMoneyAdapter{
		method:   models.MethodLiberiaMobileMoney,
		provider: provider,
		tracker:  tracker,
	}

	outcome := adapter.Execute(context.Background(), mobileData("123"))

	assert.Equal(t, OutcomeError, outcome.Status)
	assert.Equal(t, InvalidPhoneMessage, outcome.Message)
	assert.Empty(t, provider.requests, "the operator must not be called")
	assert.Empty(t, tracker.names(), "no payment_initiated for an invalid number")
}

func TestMobileMoneySuccess(t *testing.T) {
	tracker := &captureTracker{}
	provider := &scriptedProvider{receipt: ProviderReceipt{Reference: "abc123"}}
	adapter := &MobileMoneyAdapter{
		method:   models.MethodOrangeMoney,
		provider: provider,
		tracker:  tracker,
	}

	outcome := adapter.Execute(context.Background(), mobileData("0777 123 456"))

	assert.Equal(t, OutcomeOK, outcome.Status)
	assert.Equal(t, "mm_abc123", outcome.TransactionID)

	require.Len(t, provider.requests, 1)
	assert.Equal(t, models.MethodOrangeMoney, provider.requests[0].Method)
	assert.Equal(t, "0777 123 456", provider.requests[0].PhoneNumber)
	assert.Equal(t, 25.0, provider.requests[0].Amount)

	assert.Equal(t, []string{analytics.EventPaymentInitiated, analytics.EventPaymentSuccess}, tracker.names())
}

func TestMobileMoneyProviderFailure(t *testing.T) {
	tracker := &captureTracker{}
	adapter := &MobileMoneyAdapter{
		method:   models.MethodLiberiaMobileMoney,
		provider: &scriptedProvider{err: errors.New("operator unreachable")},
		tracker:  tracker,
	}

	outcome := adapter.Execute(context.Background(), mobileData("0886123456"))

	assert.Equal(t, OutcomeError, outcome.Status)
	assert.Equal(t, "We could not reach your mobile money provider. Please try again.", outcome.Message)
	assert.Equal(t, []string{analytics.EventPaymentInitiated}, tracker.names(), "initiated but never succeeded")
}

func TestStubProviderHonoursContext(t *testing.T) {
	provider := NewStubProvider()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := provider.RequestPayment(ctx, ProviderRequest{PhoneNumber: "0886123456", Amount: 10})
	assert.ErrorIs(t, err, context.Canceled)
}
