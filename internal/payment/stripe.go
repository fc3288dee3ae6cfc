package payment

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"

	"github.com/northlight-studio/studio-scheduler/internal/config"
)

// StripeCollector collects deposits as Stripe PaymentIntents.
type StripeCollector struct{}

// NewStripeCollector sets the package-level Stripe key and returns nil when
// no key is configured (deposits disabled).
func NewStripeCollector(cfg *config.Config) *StripeCollector {
	if cfg.StripeKey == "" {
		return nil
	}

	stripe.Key = cfg.StripeKey
	return &StripeCollector{}
}

func (s *StripeCollector) CreateDeposit(ctx context.Context, in DepositInput) (*Deposit, error) {
	currency := in.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context: ctx,
		},
		Amount:       stripe.Int64(in.AmountCents),
		Currency:     stripe.String(currency),
		ReceiptEmail: stripe.String(in.ClientEmail),
		Description:  stripe.String(in.Description),
	}
	params.AddMetadata("booking_reference", in.BookingReference)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe payment intent: %w", err)
	}

	return &Deposit{
		PaymentID:    pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}
