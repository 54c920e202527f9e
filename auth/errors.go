package auth

import "github.com/pkg/errors"

var (
	RefreshFailedErr = errors.New("session refresh failed")
	NoSessionErr     = errors.New("no active session")
)

const defaultLoginFailedMessage = "login failed"

// InvalidCredentialsError is returned when the identity service rejects a
// login. The message is the server's own rejection text and is surfaced to
// the user verbatim. This is the only session error that propagates to UI
// code; everything else resolves locally to sentinel values.
type InvalidCredentialsError struct {
	Message string
}

func (e *InvalidCredentialsError) Error() string {
	if e.Message == "" {
		return defaultLoginFailedMessage
	}
	return e.Message
}

// NewInvalidCredentialsError builds an InvalidCredentialsError, falling back
// to a generic message when the server supplied none.
func NewInvalidCredentialsError(message string) *InvalidCredentialsError {
	return &InvalidCredentialsError{Message: message}
}

// IsInvalidCredentials reports whether err is a login rejection.
func IsInvalidCredentials(err error) bool {
	var ice *InvalidCredentialsError
	return errors.As(err, &ice)
}
