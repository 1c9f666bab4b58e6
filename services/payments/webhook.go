package payments

import (
	"context"
	"encoding/json"
	"fmt"

	appointmentRepo "mediconnect/database/repository/appointment"
	"mediconnect/services/notification"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// WebhookProcessor settles appointments from Stripe events.
type WebhookProcessor struct {
	SigningSecret string
	Appointments  appointmentRepo.AppointmentRepository
	Notifier      notification.NotificationService
	Logger        *zap.Logger
}

func NewWebhookProcessor(signingSecret string, appointments appointmentRepo.AppointmentRepository, notifier notification.NotificationService, logger *zap.Logger) *WebhookProcessor {
	return &WebhookProcessor{
		SigningSecret: signingSecret,
		Appointments:  appointments,
		Notifier:      notifier,
		Logger:        logger,
	}
}

// Process verifies the event signature and applies the payment outcome to
// the matching appointment. Unknown event types are acknowledged and
// ignored.
func (p *WebhookProcessor) Process(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, p.SigningSecret)
	if err != nil {
		return fmt.Errorf("stripe: webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return p.handleSucceeded(ctx, event)
	case "payment_intent.payment_failed":
		return p.handleFailed(event)
	default:
		p.Logger.Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (p *WebhookProcessor) handleSucceeded(ctx context.Context, event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("stripe: failed to decode payment intent: %w", err)
	}

	paymentID := ""
	if intent.LatestCharge != nil {
		paymentID = intent.LatestCharge.ID
	}
	appt, err := p.Appointments.MarkPaidByOrderID(intent.ID, paymentID)
	if err != nil {
		if err == appointmentRepo.ErrNotFound {
			// Replayed or foreign event; acknowledge so Stripe stops retrying.
			p.Logger.Warn("no appointment for paid intent", zap.String("intent", intent.ID))
			return nil
		}
		return fmt.Errorf("failed to settle appointment for intent %s: %w", intent.ID, err)
	}
	p.Logger.Info("appointment payment settled",
		zap.String("appointment", appt.ID), zap.String("intent", intent.ID))

	if p.Notifier != nil {
		data := map[string]string{"appointmentId": appt.ID}
		when := appt.StartTime.Format("3:04 PM, Jan 2")
		if err := p.Notifier.NotifyPatient(ctx, appt.PatientID, "Payment received",
			fmt.Sprintf("Your appointment on %s is confirmed.", when), data); err != nil {
			p.Logger.Warn("payment push failed", zap.Error(err))
		}
	}
	return nil
}

func (p *WebhookProcessor) handleFailed(event stripe.Event) error {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return fmt.Errorf("stripe: failed to decode payment intent: %w", err)
	}
	if err := p.Appointments.MarkPaymentFailedByOrderID(intent.ID); err != nil {
		if err == appointmentRepo.ErrNotFound {
			p.Logger.Warn("no appointment for failed intent", zap.String("intent", intent.ID))
			return nil
		}
		return fmt.Errorf("failed to record payment failure for intent %s: %w", intent.ID, err)
	}
	p.Logger.Info("appointment payment failed", zap.String("intent", intent.ID))
	return nil
}
