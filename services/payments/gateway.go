package payments

import (
	"context"

	"mediconnect/models"
)

// Gateway abstracts the online payment provider. Cash bookings never reach
// it.
type Gateway interface {
	// CreateOrder opens a payment for the appointment and returns the
	// gateway order id plus the client secret the frontend needs to
	// complete the charge.
	CreateOrder(ctx context.Context, appt *models.Appointment, amount float64) (orderID, clientSecret string, err error)
	// Refund returns the captured amount for a paid appointment.
	Refund(ctx context.Context, paymentID string) error
}
