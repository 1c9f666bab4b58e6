package booking

import "fmt"

// Booking rejection codes outside the pure scheduling rules.
const (
	CodeDoctorUnavailable = "doctorUnavailable"
	CodeUnauthorized      = "unauthorized"
	CodeNotCancellable    = "notCancellable"
)

// BookingError is a client-facing booking rejection.
type BookingError struct {
	Code    string
	Message string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newBookingError(code, format string, args ...any) error {
	return &BookingError{Code: code, Message: fmt.Sprintf(format, args...)}
}
