package contract

import "context"

// SignatureService is the narrow seam to the e-signature provider. The
// booking core only sends a session agreement for signature; reminders,
// voiding and webhooks stay on the provider's side.
type SignatureService interface {
	SendForSignature(ctx context.Context, in EnvelopeRequest) (envelopeID string, err error)
}

type EnvelopeRequest struct {
	SignerName       string
	SignerEmail      string
	BookingReference string
	ServiceName      string
	SessionDate      string
}
