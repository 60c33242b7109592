package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/utils"
)

// FlightOffer is one search result. Fare and demand keep the backend's number text.
type FlightOffer struct {
	FlightID       int64       `json:"flight_id"`
	Origin         string      `json:"origin"`
	Destination    string      `json:"destination"`
	Departure      string      `json:"departure"`
	AvailableSeats int         `json:"available_seats"`
	Demand         json.Number `json:"demand"`
	Fare           json.Number `json:"fare"`
}

type BookingRequest struct {
	FlightID      int64       `json:"flight_id"`
	PassengerName string      `json:"passenger_name"`
	Email         string      `json:"email"`
	Fare          json.Number `json:"fare"`
}

type BookingConfirmation struct {
	PNR  string `json:"pnr"`
	PDF  string `json:"pdf"`
	JSON string `json:"json"`
}

type BookingRecord struct {
	PNR           string      `json:"pnr"`
	PassengerName string      `json:"passenger_name"`
	Email         string      `json:"email"`
	FlightID      int64       `json:"flight_id"`
	Fare          json.Number `json:"fare"`
	Status        string      `json:"status"`
	BookingTime   string      `json:"booking_time"`
}

type CancelResult struct {
	Message string `json:"message"`
}

// SearchQuery is the raw origin/destination text typed by the user.
type SearchQuery struct {
	Origin      string `json:"origin" form:"origin"`
	Destination string `json:"destination" form:"destination"`
}

// Normalize returns the query in airport-code form.
func (q SearchQuery) Normalize() SearchQuery {
	return SearchQuery{
		Origin:      utils.NormalizeAirportCode(q.Origin),
		Destination: utils.NormalizeAirportCode(q.Destination),
	}
}

// BookingForm is the booking view's form state. Values stay raw text until
// ToRequest converts them.
type BookingForm struct {
	FlightID      string `json:"flight_id" form:"flight_id" validate:"required,number"`
	PassengerName string `json:"passenger_name" form:"passenger_name" validate:"required"`
	Email         string `json:"email" form:"email" validate:"required"`
	Fare          string `json:"fare" form:"fare" validate:"required"`
}

func (f *BookingForm) Bind(r *http.Request) error {
	f.FlightID = strings.TrimSpace(f.FlightID)
	f.PassengerName = strings.TrimSpace(f.PassengerName)
	f.Email = strings.TrimSpace(f.Email)
	f.Fare = strings.TrimSpace(f.Fare)

	return nil
}

// Trimmed returns the form with surrounding whitespace removed from every field.
func (f BookingForm) Trimmed() BookingForm {
	_ = f.Bind(nil)
	return f
}

// Validate reports ErrMissingFields when any field is blank, ErrInvalidNumber
// when flight_id is not an integer. Fare syntax is left to ParseFare.
func (f BookingForm) Validate() error {
	err := Validate.Struct(f.Trimmed())
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate booking form: %w", err)
	}

	for _, fe := range ve {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}

	return ErrInvalidNumber
}

// ToRequest validates the form and coerces flight_id and fare to numbers.
func (f BookingForm) ToRequest() (BookingRequest, error) {
	if err := f.Validate(); err != nil {
		return BookingRequest{}, err
	}

	flightID, err := strconv.ParseInt(strings.TrimSpace(f.FlightID), 10, 64)
	if err != nil {
		return BookingRequest{}, ErrInvalidNumber
	}

	fare, err := ParseFare(f.Fare)
	if err != nil {
		return BookingRequest{}, err
	}

	return BookingRequest{
		FlightID:      flightID,
		PassengerName: strings.TrimSpace(f.PassengerName),
		Email:         strings.TrimSpace(f.Email),
		Fare:          fare,
	}, nil
}

// ParseFare converts user text to a JSON number. NaN and infinities are rejected.
func ParseFare(raw string) (json.Number, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return "", ErrInvalidNumber
	}

	return json.Number(strconv.FormatFloat(value, 'f', -1, 64)), nil
}

// QuickBookForm carries the quick-book dialog across page transitions.
type QuickBookForm struct {
	FlightID      string `json:"flight_id" form:"flight_id"`
	Fare          string `json:"fare" form:"fare"`
	Step          string `json:"step" form:"step"`
	PassengerName string `json:"passenger_name" form:"passenger_name"`
	Email         string `json:"email" form:"email"`
	Input         string `json:"input" form:"input"`
	Action        string `json:"action" form:"action"`
}

// Cancelled reports whether the user dismissed the current prompt.
func (f QuickBookForm) Cancelled() bool {
	return f.Action == "cancel"
}

// LookupForm is the lookup view's confirmation code field plus the
// cancellation acknowledgement.
type LookupForm struct {
	PNR     string `json:"pnr" form:"pnr"`
	Confirm string `json:"confirm" form:"confirm"`
	Booked  bool   `json:"booked" form:"booked"`
}

func (f *LookupForm) Bind(r *http.Request) error {
	f.PNR = strings.TrimSpace(f.PNR)
	f.Confirm = strings.ToLower(strings.TrimSpace(f.Confirm))

	return nil
}

// NormalizePNR trims the code and rejects an empty one.
func NormalizePNR(raw string) (string, error) {
	pnr := strings.TrimSpace(raw)
	if pnr == "" {
		return "", ErrMissingPNR
	}

	return pnr, nil
}

// HandoffParams are the navigation parameters a search card passes on.
type HandoffParams struct {
	FlightID string `json:"flight_id" form:"flight_id"`
	Fare     string `json:"fare" form:"fare"`
}

func (p HandoffParams) Values() url.Values {
	values := url.Values{}
	if p.FlightID != "" {
		values.Set("flight_id", p.FlightID)
	}
	if p.Fare != "" {
		values.Set("fare", p.Fare)
	}

	return values
}
