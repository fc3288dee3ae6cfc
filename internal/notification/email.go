package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/northlight-studio/studio-scheduler/internal/models"
)

// EmailSender is the narrow seam to the mail provider. Implementations can
// be swapped (SendGrid, SES, SMTP) without touching callers.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

type EmailMessage struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Service sends booking emails. All sends are fire-and-forget from the
// caller's perspective: failures are logged, never returned upstream.
type Service struct {
	sender EmailSender
	log    *zap.Logger
}

func NewService(sender EmailSender, log *zap.Logger) *Service {
	return &Service{
		sender: sender,
		log:    log,
	}
}

func (s *Service) SendBookingConfirmation(
	ctx context.Context,
	studio *models.Studio,
	service *models.Service,
	client *models.Client,
	b *models.Booking,
) {

	if s == nil || s.sender == nil {
		return
	}

	msg := EmailMessage{
		To:      client.Email,
		ToName:  client.Name,
		Subject: fmt.Sprintf("Booking received - %s", studio.Name),
		Body: fmt.Sprintf(
			"Hi %s,\n\nWe received your booking for %s on %s at %s.\n"+
				"Your reference is %s. We'll be in touch to confirm.\n\n%s",
			client.Name,
			service.Name,
			b.StartTime.Format("Monday, January 2"),
			b.StartTime.Format("15:04"),
			b.Reference,
			studio.Name,
		),
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.Warn("confirmation email failed",
			zap.Error(err),
			zap.String("booking_reference", b.Reference),
		)
	}
}

func (s *Service) SendStatusUpdate(
	ctx context.Context,
	studio *models.Studio,
	client *models.Client,
	b *models.Booking,
) {

	if s == nil || s.sender == nil {
		return
	}

	var subject string
	switch b.Status {
	case "confirmed":
		subject = fmt.Sprintf("Booking confirmed - %s", studio.Name)
	case "cancelled":
		subject = fmt.Sprintf("Booking cancelled - %s", studio.Name)
	default:
		return
	}

	msg := EmailMessage{
		To:      client.Email,
		ToName:  client.Name,
		Subject: subject,
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour booking %s on %s at %s is now %s.\n\n%s",
			client.Name,
			b.Reference,
			b.StartTime.Format("Monday, January 2"),
			b.StartTime.Format("15:04"),
			b.Status,
			studio.Name,
		),
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.Warn("status email failed",
			zap.Error(err),
			zap.String("booking_reference", b.Reference),
		)
	}
}
