package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

func TestDispatcherRegistryFollowsCredentials(t *testing.T) {
	api := NewClient("http://localhost")

	tests := []struct {
		name string
		cfg  Config
		want []models.PaymentMethod
	}{
		{
			name: "no credentials leaves only mobile money",
			cfg:  Config{},
			want: []models.PaymentMethod{models.MethodLiberiaMobileMoney, models.MethodOrangeMoney},
		},
		{
			name: "stripe key with collaborators enables card",
			cfg:  Config{StripeKey: "sk_test", API: api, CardConfirmer: &fakeConfirmer{}},
			want: []models.PaymentMethod{models.MethodCard, models.MethodLiberiaMobileMoney, models.MethodOrangeMoney},
		},
		{
			name: "paypal client id with collaborators enables paypal",
			cfg:  Config{PayPalClientID: "client", API: api, PayPalApproval: &fakeApproval{}},
			want: []models.PaymentMethod{models.MethodPayPal, models.MethodLiberiaMobileMoney, models.MethodOrangeMoney},
		},
		{
			name: "both credentials enable everything",
			cfg: Config{
				StripeKey:      "sk_test",
				PayPalClientID: "client",
				API:            api,
				CardConfirmer:  &fakeConfirmer{},
				PayPalApproval: &fakeApproval{},
			},
			want: []models.PaymentMethod{models.MethodCard, models.MethodPayPal, models.MethodLiberiaMobileMoney, models.MethodOrangeMoney},
		},
		{
			name: "stripe key without a confirmer stays unregistered",
			cfg:  Config{StripeKey: "sk_test", API: api},
			want: []models.PaymentMethod{models.MethodLiberiaMobileMoney, models.MethodOrangeMoney},
		},
		{
			name: "paypal client id without an api client stays unregistered",
			cfg:  Config{PayPalClientID: "client", PayPalApproval: &fakeApproval{}},
			want: []models.PaymentMethod{models.MethodLiberiaMobileMoney, models.MethodOrangeMoney},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(tt.cfg)
			assert.Equal(t, tt.want, d.Methods())
			for _, m := range tt.want {
				assert.True(t, d.Available(m))
			}
		})
	}
}

func TestDispatchUnknownMethod(t *testing.T) {
	d := NewDispatcher(Config{})
	outcome := d.Dispatch(context.Background(), models.MethodCard, DonationData{Amount: 10})
	assert.Equal(t, OutcomeError, outcome.Status)
	assert.Equal(t, "This payment method is not available right now. Please choose another.", outcome.Message)
}

func TestDispatchAppliesPaymentTimeout(t *testing.T) {
	var seenDeadline bool
	d := NewDispatcher(Config{
		MobileProvider: providerFunc(func(ctx context.Context, req ProviderRequest) (ProviderReceipt, error) {
			_, seenDeadline = ctx.Deadline()
			return ProviderReceipt{Reference: "r"}, nil
		}),
	})

	outcome := d.Dispatch(context.Background(), models.MethodLiberiaMobileMoney, mobileData("0886123456"))

	assert.Equal(t, OutcomeOK, outcome.Status)
	assert.True(t, seenDeadline, "adapters must run under a deadline")
}

type providerFunc func(ctx context.Context, req ProviderRequest) (ProviderReceipt, error)

func (f providerFunc) RequestPayment(ctx context.Context, req ProviderRequest) (ProviderReceipt, error) {
	return f(ctx, req)
}
