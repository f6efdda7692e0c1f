package errs

import (
	"errors"
	"fmt"
)

// Auth error codes understood by the application. Any other code is a generic failure.
const (
	AuthCodeUserNotFound    = "auth/user-not-found"
	AuthCodeWrongPassword   = "auth/wrong-password"
	AuthCodeInvalidEmail    = "auth/invalid-email"
	AuthCodeUserDisabled    = "auth/user-disabled"
	AuthCodeTooManyRequests = "auth/too-many-requests"
	AuthCodeEmailInUse      = "auth/email-already-in-use"
	AuthCodeInvalidToken    = "auth/invalid-token"
)

// ErrAuth is the sentinel every AuthError unwraps to.
var ErrAuth = errors.New("authentication failed")

const genericAuthMessage = "Sign in failed. Please try again."

var authMessages = map[string]string{
	AuthCodeUserNotFound:    "No account found with this phone number.",
	AuthCodeWrongPassword:   "Incorrect password. Please try again.",
	AuthCodeInvalidEmail:    "Invalid phone number format.",
	AuthCodeUserDisabled:    "This account has been disabled. Contact support.",
	AuthCodeTooManyRequests: "Too many failed attempts. Please try again later.",
}

// AuthError is the {code, message} pair surfaced by the session provider.
type AuthError struct {
	Code    string
	Message string
}

// NewAuthError creates an AuthError.
func NewAuthError(code, message string) *AuthError {
	return &AuthError{Code: code, Message: message}
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrAuth, e.Code, e.Message)
}

func (e *AuthError) Unwrap() error {
	return ErrAuth
}

// UserMessage maps an auth failure to the fixed user-facing string for its code.
// Unknown codes and non-auth errors get the generic message.
func UserMessage(err error) string {
	var authErr *AuthError
	if !errors.As(err, &authErr) {
		return genericAuthMessage
	}
	if msg, ok := authMessages[authErr.Code]; ok {
		return msg
	}
	return genericAuthMessage
}
