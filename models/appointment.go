package models

import "time"

// Appointment statuses. Cancelled and completed are terminal.
const (
	AppointmentPending   = "pending"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Payment methods and statuses.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"

	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment carries the gateway state for an appointment.
type Payment struct {
	Method            string `bson:"method" json:"method"` // "cash" or "online"
	Status            string `bson:"status" json:"status"`
	ExternalOrderID   string `bson:"external_order_id,omitempty" json:"externalOrderId,omitempty"`
	ExternalPaymentID string `bson:"external_payment_id,omitempty" json:"externalPaymentId,omitempty"`
}

// Appointment is a booked (or attempted) visit. StartTime is an absolute
// UTC instant; the doctor-local wall time is derived per request.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`
	DoctorID        string    `bson:"doctor_id" json:"doctorId"`
	PatientID       string    `bson:"patient_id" json:"patientId"`
	StartTime       time.Time `bson:"start_time" json:"startTime"`
	DurationMinutes int       `bson:"duration_minutes" json:"durationMinutes"`
	Status          string    `bson:"status" json:"status"`
	Payment         Payment   `bson:"payment" json:"payment"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CancelReason    string    `bson:"cancel_reason,omitempty" json:"cancelReason,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updatedAt"`
}

// End returns the exclusive end instant of the appointment interval.
// Legacy records without a duration count as 30 minutes.
func (a Appointment) End() time.Time {
	d := a.DurationMinutes
	if d <= 0 {
		d = 30
	}
	return a.StartTime.Add(time.Duration(d) * time.Minute)
}

// Blocks reports whether the appointment still occupies its interval for
// overlap and buffer purposes.
func (a Appointment) Blocks() bool {
	return a.Status == AppointmentPending || a.Status == AppointmentConfirmed
}

// Terminal reports whether the appointment can no longer change status.
func (a Appointment) Terminal() bool {
	return a.Status == AppointmentCancelled || a.Status == AppointmentCompleted
}
