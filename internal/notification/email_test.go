package notification

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/northlight-studio/studio-scheduler/internal/models"
)

type recordingSender struct {
	sent []EmailMessage
	err  error
}

func (r *recordingSender) Send(ctx context.Context, msg EmailMessage) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func fixtureBooking() (*models.Studio, *models.Service, *models.Client, *models.Booking) {
	studio := &models.Studio{Name: "Northlight Studio"}
	service := &models.Service{Name: "Portrait Session"}
	client := &models.Client{Name: "Ana Reyes", Email: "ana@example.com"}
	b := &models.Booking{
		Reference: "ref-1",
		StartTime: time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC),
		Status:    "confirmed",
	}
	return studio, service, client, b
}

func TestSendBookingConfirmation(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, zap.NewNop())

	studio, service, client, b := fixtureBooking()
	svc.SendBookingConfirmation(context.Background(), studio, service, client, b)

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.To != "ana@example.com" {
		t.Errorf("unexpected recipient: %s", msg.To)
	}
	if !strings.Contains(msg.Body, "ref-1") {
		t.Error("body must carry the booking reference")
	}
	if !strings.Contains(msg.Body, "Portrait Session") {
		t.Error("body must name the service")
	}
}

func TestSendBookingConfirmation_NilSender(t *testing.T) {
	svc := NewService(nil, zap.NewNop())

	studio, service, client, b := fixtureBooking()

	// Must be a no-op, not a panic.
	svc.SendBookingConfirmation(context.Background(), studio, service, client, b)
}

func TestSendBookingConfirmation_SendFailureSwallowed(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	svc := NewService(sender, zap.NewNop())

	studio, service, client, b := fixtureBooking()
	svc.SendBookingConfirmation(context.Background(), studio, service, client, b)
}

func TestSendStatusUpdate(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, zap.NewNop())

	studio, _, client, b := fixtureBooking()
	svc.SendStatusUpdate(context.Background(), studio, client, b)

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sender.sent))
	}
	if !strings.Contains(sender.sent[0].Subject, "confirmed") {
		t.Errorf("unexpected subject: %s", sender.sent[0].Subject)
	}
}

func TestSendStatusUpdate_PendingNotEmailed(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(sender, zap.NewNop())

	studio, _, client, b := fixtureBooking()
	b.Status = "pending"

	svc.SendStatusUpdate(context.Background(), studio, client, b)

	if len(sender.sent) != 0 {
		t.Errorf("pending status must not trigger an email, got %d", len(sender.sent))
	}
}
