// Package view holds the typed state of each page. The workflow writes these
// values and the renderers read them; nothing else is kept between actions.
package view

import (
	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

// Notice is the message shown in a view's result region.
type Notice struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

func Info(text string) *Notice    { return &Notice{Level: LevelInfo, Text: text} }
func Success(text string) *Notice { return &Notice{Level: LevelSuccess, Text: text} }
func Warning(text string) *Notice { return &Notice{Level: LevelWarning, Text: text} }
func Danger(text string) *Notice  { return &Notice{Level: LevelDanger, Text: text} }

type SearchStatus string

const (
	SearchIdle           SearchStatus = "idle"
	SearchTransportError SearchStatus = "transport_error"
	SearchBackendError   SearchStatus = "backend_error"
	SearchEmpty          SearchStatus = "empty"
	SearchResults        SearchStatus = "results"
)

// OfferCard is one rendered search result with its two booking triggers.
type OfferCard struct {
	Offer        dto.FlightOffer `json:"offer"`
	BookingURL   string          `json:"booking_url"`
	QuickBookURL string          `json:"quick_book_url"`
}

type SearchView struct {
	Query  dto.SearchQuery `json:"query"`
	Status SearchStatus    `json:"status"`
	Notice *Notice         `json:"notice,omitempty"`
	Offers []OfferCard     `json:"offers"`
}

// BookingView is the booking page: form fields plus the result region.
type BookingView struct {
	Form         dto.BookingForm          `json:"form"`
	Notice       *Notice                  `json:"notice,omitempty"`
	Confirmation *dto.BookingConfirmation `json:"confirmation,omitempty"`
}

type QuickBookStep string

const (
	StepName      QuickBookStep = "name"
	StepEmail     QuickBookStep = "email"
	StepBooked    QuickBookStep = "booked"
	StepFailed    QuickBookStep = "failed"
	StepAbandoned QuickBookStep = "abandoned"
)

// QuickBookDialog replaces blocking prompts with explicit steps. Only the
// transition out of StepEmail may reach the network.
type QuickBookDialog struct {
	Step          QuickBookStep `json:"step"`
	FlightID      string        `json:"flight_id"`
	Fare          string        `json:"fare"`
	PassengerName string        `json:"passenger_name,omitempty"`
	Email         string        `json:"email,omitempty"`
	Notice        *Notice       `json:"notice,omitempty"`
	RedirectTo    string        `json:"redirect_to,omitempty"`
}

// Prompt is the question asked at the current step.
func (d QuickBookDialog) Prompt() string {
	switch d.Step {
	case StepName:
		return "Passenger name:"
	case StepEmail:
		return "Email:"
	default:
		return ""
	}
}

// Open reports whether the dialog still waits for input.
func (d QuickBookDialog) Open() bool {
	return d.Step == StepName || d.Step == StepEmail
}

func (d QuickBookDialog) RedirectURL() string {
	return d.RedirectTo
}

// LookupView is the bookings page: the PNR field, the detail region and a
// pending cancellation question.
type LookupView struct {
	PNR           string             `json:"pnr"`
	Record        *dto.BookingRecord `json:"record,omitempty"`
	Notice        *Notice            `json:"notice,omitempty"`
	ConfirmCancel string             `json:"confirm_cancel,omitempty"`
}

// ClearDetail removes the displayed booking and any previous message.
func (v *LookupView) ClearDetail() {
	v.Record = nil
	v.Notice = nil
	v.ConfirmCancel = ""
}
