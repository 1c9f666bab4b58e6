package auth

import "fmt"

// Error codes returned by the auth service.
const (
	CodeInvalidCredentials = "invalidCredentials"
	CodeEmailTaken         = "emailTaken"
	CodeInvalidInput       = "invalidInput"
)

// AuthError carries a machine-readable code alongside the message.
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newAuthError(code, message string) *AuthError {
	return &AuthError{Code: code, Message: message}
}

// CodeOf extracts the auth error code, or empty for foreign errors.
func CodeOf(err error) string {
	if ae, ok := err.(*AuthError); ok {
		return ae.Code
	}
	return ""
}
