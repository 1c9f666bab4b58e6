package doctor

import "fmt"

// Error codes returned by the doctor service.
const (
	CodeInvalidReview = "invalidReview"
	CodeInvalidInput  = "invalidInput"
)

// DoctorError carries a machine-readable code alongside the message.
type DoctorError struct {
	Code    string
	Message string
}

func (e *DoctorError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newDoctorError(code, format string, args ...any) error {
	return &DoctorError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the doctor error code, or empty for foreign errors.
func CodeOf(err error) string {
	if de, ok := err.(*DoctorError); ok {
		return de.Code
	}
	return ""
}
