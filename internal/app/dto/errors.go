package dto

import (
	"net/http"

	"github.com/ijalalfrz/flight-booking-client/internal/pkg/exception"
)

var ErrMissingFields = exception.ApplicationError{
	Message:    "Please fill all fields.",
	StatusCode: http.StatusBadRequest,
}

var ErrInvalidNumber = exception.ApplicationError{
	Message:    "Flight ID and fare must be valid numbers.",
	StatusCode: http.StatusBadRequest,
}

var ErrMissingPNR = exception.ApplicationError{
	Message:    "Enter PNR",
	StatusCode: http.StatusBadRequest,
}
