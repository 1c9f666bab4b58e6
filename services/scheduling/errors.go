package scheduling

import "fmt"

// Rule error codes. These are expected, client-facing rejections; the
// handler layer maps them to 400-class responses and logs them as
// warnings, not errors.
const (
	CodeInvalidInput       = "invalidInput"
	CodePastOrInvalidTime  = "pastOrInvalidTime"
	CodeSlotAlreadyBooked  = "slotAlreadyBooked"
	CodeInsufficientBuffer = "insufficientBuffer"
)

// RuleError is a scheduling rule rejection.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newRuleError(code, format string, args ...any) error {
	return &RuleError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewRuleError builds a RuleError. Collaborators use it to translate
// storage-level conflicts into the matching scheduling rejection.
func NewRuleError(code, message string) error {
	return &RuleError{Code: code, Message: message}
}

// CodeOf returns the rule code carried by err, or "" when err is not a
// RuleError.
func CodeOf(err error) string {
	if re, ok := err.(*RuleError); ok {
		return re.Code
	}
	return ""
}
