package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-client/internal/app/view"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/bookingapi"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/exception"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/handoff"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/inflight"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/logger"
)

type BookingAPI interface {
	SearchFlights(ctx context.Context, query dto.SearchQuery) ([]dto.FlightOffer, error)
	Book(ctx context.Context, req dto.BookingRequest) (dto.BookingConfirmation, error)
	GetBooking(ctx context.Context, pnr string) (dto.BookingRecord, error)
	CancelBooking(ctx context.Context, pnr string) (dto.CancelResult, error)
}

type RequestGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// Confirmer asks the user to acknowledge a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, question string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, question string) (bool, error) {
	return f(ctx, question)
}

// Answer is a Confirmer whose reply is already known.
func Answer(accepted bool) Confirmer {
	return ConfirmFunc(func(context.Context, string) (bool, error) {
		return accepted, nil
	})
}

// BookingWorkflow takes a user from search to a confirmed or cancelled
// booking. Each method owns the view state it is given for the duration of the
// call and never reads state belonging to another view.
type BookingWorkflow struct {
	API      BookingAPI
	Guard    RequestGuard
	GuardTTL time.Duration
}

func NewBookingWorkflow(api BookingAPI, guard RequestGuard, guardTTL time.Duration) *BookingWorkflow {
	return &BookingWorkflow{
		API:      api,
		Guard:    guard,
		GuardTTL: guardTTL,
	}
}

// Search normalises the query and replaces the view's results with the
// backend's answer.
func (w *BookingWorkflow) Search(ctx context.Context, state *view.SearchView) {
	ctx = logger.WithOperation(ctx, "search")

	query := state.Query.Normalize()
	state.Query = query

	release, ok := w.hold(ctx, "search", query.Origin, query.Destination)
	if !ok {
		state.Notice = view.Warning(ErrRequestInFlight.Message)
		return
	}
	defer release()

	offers, err := w.API.SearchFlights(ctx, query)

	state.Offers = nil
	switch {
	case bookingapi.IsTransport(err):
		slog.WarnContext(ctx, "search request failed", slog.String("error", err.Error()))
		state.Status = view.SearchTransportError
		state.Notice = view.Danger(msgSearchTransport)
	case err != nil:
		slog.WarnContext(ctx, "search rejected by backend", slog.String("error", err.Error()))
		state.Status = view.SearchBackendError
		state.Notice = view.Warning(msgSearchBackend)
	case len(offers) == 0:
		state.Status = view.SearchEmpty
		state.Notice = view.Info(msgSearchEmpty)
	default:
		state.Status = view.SearchResults
		state.Notice = nil
		state.Offers = make([]view.OfferCard, 0, len(offers))
		for _, offer := range offers {
			state.Offers = append(state.Offers, view.OfferCard{
				Offer:        offer,
				BookingURL:   handoff.BookingURL(offer.FlightID, offer.Fare),
				QuickBookURL: handoff.QuickBookURL(offer.FlightID, offer.Fare),
			})
		}
	}
}

// Prefill applies handoff parameters to the booking form.
func (w *BookingWorkflow) Prefill(state *view.BookingView, params url.Values) {
	handoff.Prefill(&state.Form, params)
}

// SubmitBooking validates the form and, only when it is complete and numeric,
// sends exactly one booking request.
func (w *BookingWorkflow) SubmitBooking(ctx context.Context, state *view.BookingView) {
	ctx = logger.WithOperation(ctx, "book")

	state.Notice = nil
	state.Confirmation = nil

	req, err := state.Form.ToRequest()
	if err != nil {
		state.Notice = rejectForm(ctx, state.Form, err)
		return
	}

	release, ok := w.hold(ctx, "book", bookingParts(req)...)
	if !ok {
		state.Notice = view.Warning(ErrRequestInFlight.Message)
		return
	}
	defer release()

	confirmation, err := w.API.Book(ctx, req)
	if err != nil {
		state.Notice = w.bookingFailure(ctx, err)
		return
	}

	state.Notice = view.Success(msgBookConfirmed + confirmation.PNR)
	state.Confirmation = &confirmation
}

// StartQuickBook opens the quick-book dialog for an offer.
func (w *BookingWorkflow) StartQuickBook(flightID, fare string) view.QuickBookDialog {
	return view.QuickBookDialog{
		Step:     view.StepName,
		FlightID: flightID,
		Fare:     fare,
	}
}

// AdvanceQuickBook answers the dialog's current prompt. Cancelling or leaving
// a prompt empty abandons the dialog before any request is sent.
func (w *BookingWorkflow) AdvanceQuickBook(ctx context.Context, dialog *view.QuickBookDialog, input string, cancelled bool) {
	ctx = logger.WithOperation(ctx, "quick_book")

	if !dialog.Open() {
		return
	}

	input = strings.TrimSpace(input)
	if cancelled || input == "" {
		dialog.Step = view.StepAbandoned
		dialog.Notice = view.Info(msgQuickBookAborted)
		return
	}

	if dialog.Step == view.StepName {
		dialog.PassengerName = input
		dialog.Step = view.StepEmail
		return
	}

	dialog.Email = input

	form := dto.BookingForm{
		FlightID:      dialog.FlightID,
		PassengerName: dialog.PassengerName,
		Email:         dialog.Email,
		Fare:          dialog.Fare,
	}

	req, err := form.ToRequest()
	if err != nil {
		dialog.Step = view.StepFailed
		dialog.Notice = rejectForm(ctx, form, err)
		return
	}

	release, ok := w.hold(ctx, "book", bookingParts(req)...)
	if !ok {
		dialog.Notice = view.Warning(ErrRequestInFlight.Message)
		return
	}
	defer release()

	confirmation, err := w.API.Book(ctx, req)
	if err != nil {
		dialog.Step = view.StepFailed
		dialog.Notice = w.bookingFailure(ctx, err)
		return
	}

	dialog.Step = view.StepBooked
	dialog.Notice = view.Success(msgBookConfirmed + confirmation.PNR)
	dialog.RedirectTo = handoff.BookedLookupURL(confirmation.PNR)
}

// OpenLookup seeds the lookup view with its initial PNR. booked repeats the
// quick-book confirmation on arrival; nothing is fetched.
func (w *BookingWorkflow) OpenLookup(state *view.LookupView, booked bool) {
	state.PNR = strings.TrimSpace(state.PNR)
	if booked && state.PNR != "" {
		state.Notice = view.Success(msgBookConfirmed + state.PNR)
	}
}

// ViewBooking fetches the booking for the view's PNR. The previous detail is
// always replaced.
func (w *BookingWorkflow) ViewBooking(ctx context.Context, state *view.LookupView) {
	ctx = logger.WithOperation(ctx, "lookup")

	pnr, err := dto.NormalizePNR(state.PNR)
	if err != nil {
		state.Notice = view.Warning(dto.ErrMissingPNR.Message)
		return
	}
	state.PNR = pnr

	release, ok := w.hold(ctx, "lookup", pnr)
	if !ok {
		state.Notice = view.Warning(ErrRequestInFlight.Message)
		return
	}
	defer release()

	record, err := w.API.GetBooking(ctx, pnr)

	state.ClearDetail()
	switch {
	case bookingapi.IsTransport(err):
		slog.WarnContext(ctx, "lookup request failed", slog.String("error", err.Error()))
		state.Notice = view.Danger(msgLookupTransport)
	case err != nil:
		state.Notice = view.Warning(msgLookupNotFound)
	default:
		state.Record = &record
	}
}

// CancelQuestion is the acknowledgement asked before cancelling pnr.
func CancelQuestion(pnr string) string {
	return "Cancel booking " + pnr + "?"
}

// PromptCancel puts the cancellation question on the view without contacting
// the backend.
func (w *BookingWorkflow) PromptCancel(state *view.LookupView) {
	pnr, err := dto.NormalizePNR(state.PNR)
	if err != nil {
		state.Notice = view.Warning(dto.ErrMissingPNR.Message)
		return
	}

	state.PNR = pnr
	state.ConfirmCancel = CancelQuestion(pnr)
}

// CancelBooking cancels the view's booking once confirmer accepts. A declined
// confirmation leaves the view untouched.
func (w *BookingWorkflow) CancelBooking(ctx context.Context, state *view.LookupView, confirmer Confirmer) {
	ctx = logger.WithOperation(ctx, "cancel")

	pnr, err := dto.NormalizePNR(state.PNR)
	if err != nil {
		state.Notice = view.Warning(dto.ErrMissingPNR.Message)
		return
	}

	accepted, err := confirmer.Confirm(ctx, CancelQuestion(pnr))
	if err != nil {
		slog.WarnContext(ctx, "cancel confirmation failed", slog.String("error", err.Error()))
		return
	}

	if !accepted {
		return
	}

	state.PNR = pnr
	state.ConfirmCancel = ""

	release, ok := w.hold(ctx, "cancel", pnr)
	if !ok {
		state.Notice = view.Warning(ErrRequestInFlight.Message)
		return
	}
	defer release()

	result, err := w.API.CancelBooking(ctx, pnr)
	if err != nil {
		if text, ok := bookingapi.IsStatus(err); ok {
			status, _ := exception.StatusOf(err)
			slog.InfoContext(ctx, "cancellation rejected by backend", slog.Int("status", status))
			state.Notice = view.Danger(msgCancelFailed + text)
			return
		}

		slog.WarnContext(ctx, "cancel request failed", slog.String("error", err.Error()))
		state.Notice = view.Danger(msgLookupTransport)
		return
	}

	state.ClearDetail()
	state.Notice = view.Success(result.Message)
}

func (w *BookingWorkflow) bookingFailure(ctx context.Context, err error) *view.Notice {
	if text, ok := bookingapi.IsStatus(err); ok {
		status, _ := exception.StatusOf(err)
		slog.InfoContext(ctx, "booking rejected by backend", slog.Int("status", status))
		return view.Danger(msgBookFailed + text)
	}

	slog.WarnContext(ctx, "booking request failed", slog.String("error", err.Error()))

	return view.Danger(msgBookTransport)
}

// hold takes the in-flight guard for operation within the trigger scope of
// ctx. Requests without a scope are never held back, and a broken guard never
// blocks the user's action.
func (w *BookingWorkflow) hold(ctx context.Context, operation string, parts ...string) (func(), bool) {
	scope := inflight.Scope(ctx)
	if w.Guard == nil || scope == "" {
		return func() {}, true
	}

	key := inflight.Key(operation, append([]string{scope}, parts...)...)

	acquired, err := w.Guard.Acquire(ctx, key, w.GuardTTL)
	if err != nil {
		slog.WarnContext(ctx, "in-flight guard unavailable", slog.String("error", err.Error()))
		return func() {}, true
	}

	if !acquired {
		slog.InfoContext(ctx, "duplicate request rejected while in flight", slog.String("key", key))
		return nil, false
	}

	return func() {
		if err := w.Guard.Release(context.WithoutCancel(ctx), key); err != nil {
			slog.WarnContext(ctx, "failed to release in-flight guard", slog.String("error", err.Error()))
		}
	}, true
}

func bookingParts(req dto.BookingRequest) []string {
	return []string{strconv.FormatInt(req.FlightID, 10), req.PassengerName, req.Email, req.Fare.String()}
}

// rejectForm logs the first failing field in the validator's words and returns
// the notice shown to the user.
func rejectForm(ctx context.Context, form dto.BookingForm, err error) *view.Notice {
	detail := err.Error()
	if fieldErr := dto.ValidateSingleError(form.Trimmed()); fieldErr != nil {
		detail = fieldErr.Error()
	}

	slog.InfoContext(ctx, "booking form rejected", slog.String("detail", detail))

	return view.Warning(validationMessage(err))
}

func validationMessage(err error) string {
	var appErr exception.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return dto.ErrMissingFields.Message
}
