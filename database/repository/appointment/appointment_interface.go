package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"mediconnect/models"
)

var (
	// ErrNotFound is returned when no appointment matches the query.
	ErrNotFound = errors.New("appointment not found")
	// ErrConflict is returned when an insert loses the race for a
	// contested interval. The booking service translates it to the
	// slot-already-booked rejection.
	ErrConflict = errors.New("appointment conflicts with an existing booking")
)

// CompletedQuery filters the performance listing.
type CompletedQuery struct {
	DoctorID string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	GetByID(id string) (*models.Appointment, error)
	// ListForDoctorBetween returns every appointment, any status, whose
	// interval intersects [from, to).
	ListForDoctorBetween(doctorID string, from, to time.Time) ([]models.Appointment, error)
	// InsertIfFree persists the appointment only if no pending or
	// confirmed appointment overlaps its interval or sits inside the
	// buffer window around it. A losing writer gets ErrConflict.
	InsertIfFree(ctx context.Context, appt *models.Appointment, buffer time.Duration) error
	UpdateStatus(id, status, reason string) error
	SetPaymentStatus(id, paymentStatus string) error
	// MarkPaidByOrderID settles the payment recorded under the gateway
	// order id and confirms the appointment if it is still pending.
	MarkPaidByOrderID(orderID, paymentID string) (*models.Appointment, error)
	MarkPaymentFailedByOrderID(orderID string) error
	ListUpcomingForPatient(patientID string, now time.Time) ([]models.Appointment, error)
	ListCompleted(q CompletedQuery) ([]models.Appointment, int64, error)
	// CountDistinctPatients counts the patients with at least one
	// completed appointment in the range.
	CountDistinctPatients(doctorID string, from, to *time.Time) (int64, error)
	CountCancelled(doctorID string, from, to *time.Time) (int64, error)
}
