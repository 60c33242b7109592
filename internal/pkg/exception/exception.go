package exception

import (
	"errors"
	"fmt"
)

// ApplicationError handles application level errors. For failures reported by the
// booking backend, StatusCode is the backend status and Message is the backend text.
type ApplicationError struct {
	Message    string
	StatusCode int
	Cause      error
}

// Error interface implementation.
func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	return e.Cause
}

func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Cause == targetErr.Cause &&
		e.Message == targetErr.Message
}

// StatusOf extracts the status code of an ApplicationError anywhere in the chain.
func StatusOf(err error) (int, bool) {
	var appErr ApplicationError
	if !errors.As(err, &appErr) {
		return 0, false
	}

	return appErr.StatusCode, true
}
