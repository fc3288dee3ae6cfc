package payment

import "context"

// DepositCollector is the narrow seam to the payment provider. The booking
// core only ever asks for a session deposit; everything else about payments
// lives on the provider's side.
type DepositCollector interface {
	CreateDeposit(ctx context.Context, in DepositInput) (*Deposit, error)
}

type DepositInput struct {
	AmountCents      int64
	Currency         string
	ClientEmail      string
	BookingReference string
	Description      string
}

type Deposit struct {
	PaymentID    string
	ClientSecret string
	Status       string
}
