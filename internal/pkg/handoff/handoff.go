// Package handoff passes a selected offer from the search view to the booking
// view through navigation parameters. No other state crosses between views.
package handoff

import (
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
)

const (
	ParamFlightID = "flight_id"
	ParamFare     = "fare"
	ParamPNR      = "pnr"
	ParamBooked   = "booked"

	BookingPath   = "/booking-page"
	QuickBookPath = "/quick-book"
	LookupPath    = "/mybookings"
)

// BookingURL returns the booking view location carrying flight_id and fare.
func BookingURL(flightID int64, fare json.Number) string {
	return BookingPath + "?" + encode(flightID, fare)
}

// QuickBookURL returns the quick-book dialog location for an offer.
func QuickBookURL(flightID int64, fare json.Number) string {
	return QuickBookPath + "?" + encode(flightID, fare)
}

// BookedLookupURL is LookupURL for a booking that was just confirmed, so the
// lookup view can repeat the confirmation.
func BookedLookupURL(pnr string) string {
	return LookupURL(pnr) + "&" + ParamBooked + "=true"
}

// LookupURL returns the lookup view location pre-seeded with pnr.
func LookupURL(pnr string) string {
	return LookupPath + "?" + ParamPNR + "=" + url.QueryEscape(pnr)
}

// flight_id is written before fare so links read like the booking form.
func encode(flightID int64, fare json.Number) string {
	return ParamFlightID + "=" + strconv.FormatInt(flightID, 10) +
		"&" + ParamFare + "=" + url.QueryEscape(fare.String())
}

// Prefill copies flight_id and fare from params into form. An absent or empty
// parameter leaves the field as it is, so calling Prefill again with the same
// params changes nothing.
func Prefill(form *dto.BookingForm, params url.Values) {
	if form == nil {
		return
	}

	if fid := params.Get(ParamFlightID); fid != "" {
		form.FlightID = fid
	}

	if fare := params.Get(ParamFare); fare != "" {
		form.Fare = fare
	}
}
