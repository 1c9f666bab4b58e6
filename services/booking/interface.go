package booking

import (
	"context"
	"time"

	"mediconnect/models"
)

// BookingRequest is the semantic shape of a booking creation.
type BookingRequest struct {
	DoctorID        string    `json:"doctorId"`
	PatientID       string    `json:"-"` // from the auth token, never the body
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	PaymentMethod   string    `json:"paymentMethod"` // "cash" or "online"
	Notes           string    `json:"notes,omitempty"`
}

// BookingResult is the booking plus whatever the gateway needs the client
// to finish an online payment.
type BookingResult struct {
	Appointment   *models.Appointment `json:"appointment"`
	PaymentIntent string              `json:"paymentIntent,omitempty"` // gateway client secret
}

// SlotListing is the slot read-path response.
type SlotListing struct {
	DoctorID     string              `json:"doctorId"`
	DoctorName   string              `json:"doctor"`
	Date         string              `json:"date"`
	WorkingHours models.WorkingHours `json:"workingHours"`
	Timezone     string              `json:"timezone"`
	Slots        []models.Slot       `json:"slots"`
}

// BookingService is the appointment booking surface consumed by the HTTP
// layer.
type BookingService interface {
	AvailableSlots(doctorID, date string, now time.Time) (*SlotListing, error)
	Book(ctx context.Context, req BookingRequest, now time.Time) (*BookingResult, error)
	Cancel(ctx context.Context, appointmentID, actorID, actorRole, reason string, now time.Time) (*models.Appointment, error)
	Confirm(appointmentID, doctorID string) (*models.Appointment, error)
	UpcomingForPatient(patientID string, now time.Time) ([]models.Appointment, error)
}
