package main

import (
	"fmt"
	"io"

	"github.com/ijalalfrz/flight-booking-client/internal/app/view"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/utils"
)

func printView(w io.Writer, result interface{}) {
	switch v := result.(type) {
	case view.SearchView:
		printNotice(w, v.Notice)
		for _, card := range v.Offers {
			offer := card.Offer
			fmt.Fprintf(w, "Flight %d  %s -> %s  %s  seats %d  demand %s  %s\n",
				offer.FlightID, offer.Origin, offer.Destination, offer.Departure,
				offer.AvailableSeats, offer.Demand, utils.FormatFare(offer.Fare))
		}
	case view.BookingView:
		printNotice(w, v.Notice)
		if c := v.Confirmation; c != nil {
			fmt.Fprintf(w, "PDF receipt:  %s\nJSON receipt: %s\n", c.PDF, c.JSON)
		}
	case view.QuickBookDialog:
		printNotice(w, v.Notice)
	case view.LookupView:
		printNotice(w, v.Notice)
		if r := v.Record; r != nil {
			fmt.Fprintf(w, "PNR:       %s\nPassenger: %s\nEmail:     %s\nFlight:    %d\nFare:      %s\nStatus:    %s\nBooked at: %s\n",
				r.PNR, r.PassengerName, r.Email, r.FlightID, utils.FormatFare(r.Fare), r.Status, r.BookingTime)
		}
	}
}

func printNotice(w io.Writer, notice *view.Notice) {
	if notice == nil {
		return
	}

	fmt.Fprintln(w, notice.Text)
}
