package bookingapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ijalalfrz/flight-booking-client/internal/pkg/exception"
)

// TransportError means the exchange with the backend could not be completed:
// connection failures, cancelled contexts and unreadable success bodies.
type TransportError struct {
	Op    string
	Cause error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Cause)
}

func (e TransportError) Unwrap() error {
	return e.Cause
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te TransportError
	return errors.As(err, &te)
}

// StatusError builds the error for a non-2xx answer; the message is the
// backend's body text.
func StatusError(statusCode int, body string) exception.ApplicationError {
	if body == "" {
		body = http.StatusText(statusCode)
	}

	return exception.ApplicationError{
		Message:    body,
		StatusCode: statusCode,
	}
}

// IsStatus reports whether err is a backend-reported failure, returning its text.
func IsStatus(err error) (string, bool) {
	if IsTransport(err) {
		return "", false
	}

	var appErr exception.ApplicationError
	if !errors.As(err, &appErr) {
		return "", false
	}

	return appErr.Message, true
}
