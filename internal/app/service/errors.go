package service

import (
	"net/http"

	"github.com/ijalalfrz/flight-booking-client/internal/pkg/exception"
)

var ErrRequestInFlight = exception.ApplicationError{
	Message:    "This request is already in progress. Please wait for it to finish.",
	StatusCode: http.StatusConflict,
}

const (
	msgSearchTransport  = "Error contacting backend. Please check your connection and try again."
	msgSearchBackend    = "No flights found or backend error."
	msgSearchEmpty      = "No flights available."
	msgBookTransport    = "Error placing booking. Please check your connection and try again."
	msgBookFailed       = "Booking failed: "
	msgBookConfirmed    = "Booking confirmed! PNR: "
	msgLookupNotFound   = "Booking not found."
	msgLookupTransport  = "Error contacting backend. Please check your connection and try again."
	msgCancelFailed     = "Cancellation failed: "
	msgQuickBookAborted = "Quick booking abandoned. No booking was made."
)
