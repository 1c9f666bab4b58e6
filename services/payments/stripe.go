package payments

import (
	"context"
	"fmt"

	"mediconnect/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// StripeGateway implements Gateway over Stripe PaymentIntents.
type StripeGateway struct {
	Currency string
	Logger   *zap.Logger
}

// NewStripeGateway returns a gateway charging in the given currency.
// stripe.Key must already be set from configuration.
func NewStripeGateway(currency string, logger *zap.Logger) *StripeGateway {
	if currency == "" {
		currency = "inr"
	}
	return &StripeGateway{Currency: currency, Logger: logger}
}

// CreateOrder opens a PaymentIntent for the consultation fee. The intent
// id doubles as the external order id stored on the appointment; the
// webhook settles against it.
func (g *StripeGateway) CreateOrder(ctx context.Context, appt *models.Appointment, amount float64) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)), // minor units
		Currency: stripe.String(g.Currency),
		Metadata: map[string]string{
			"appointment_id": appt.ID,
			"doctor_id":      appt.DoctorID,
			"patient_id":     appt.PatientID,
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("stripe: failed to create payment intent: %w", err)
	}

	g.Logger.Info("payment intent created",
		zap.String("appointment", appt.ID),
		zap.String("intent", intent.ID))
	return intent.ID, intent.ClientSecret, nil
}

// Refund returns the full captured amount for the given payment.
func (g *StripeGateway) Refund(ctx context.Context, paymentID string) error {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentID),
	}
	params.Context = ctx

	if _, err := refund.New(params); err != nil {
		return fmt.Errorf("stripe: failed to refund payment %s: %w", paymentID, err)
	}
	g.Logger.Info("payment refunded", zap.String("payment", paymentID))
	return nil
}
