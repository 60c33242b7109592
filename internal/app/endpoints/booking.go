package endpoints

import (
	"context"
	"errors"
	"net/url"

	"github.com/go-kit/kit/endpoint"
	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-client/internal/app/service"
	"github.com/ijalalfrz/flight-booking-client/internal/app/view"
)

var errInvalidType = errors.New("invalid type")

const confirmYes = "yes"

type BookingWorkflow interface {
	Search(ctx context.Context, state *view.SearchView)
	Prefill(state *view.BookingView, params url.Values)
	SubmitBooking(ctx context.Context, state *view.BookingView)
	StartQuickBook(flightID, fare string) view.QuickBookDialog
	AdvanceQuickBook(ctx context.Context, dialog *view.QuickBookDialog, input string, cancelled bool)
	OpenLookup(state *view.LookupView, booked bool)
	ViewBooking(ctx context.Context, state *view.LookupView)
	PromptCancel(state *view.LookupView)
	CancelBooking(ctx context.Context, state *view.LookupView, confirmer service.Confirmer)
}

type BookingEndpoint struct {
	SearchPage       endpoint.Endpoint
	Search           endpoint.Endpoint
	BookingPage      endpoint.Endpoint
	SubmitBooking    endpoint.Endpoint
	StartQuickBook   endpoint.Endpoint
	AdvanceQuickBook endpoint.Endpoint
	LookupPage       endpoint.Endpoint
	ViewBooking      endpoint.Endpoint
	CancelBooking    endpoint.Endpoint
}

func MakeBookingEndpoint(workflow BookingWorkflow) BookingEndpoint {
	return BookingEndpoint{
		SearchPage:       makeSearchPageEndpoint(),
		Search:           makeSearchEndpoint(workflow),
		BookingPage:      makeBookingPageEndpoint(workflow),
		SubmitBooking:    makeSubmitBookingEndpoint(workflow),
		StartQuickBook:   makeStartQuickBookEndpoint(workflow),
		AdvanceQuickBook: makeAdvanceQuickBookEndpoint(workflow),
		LookupPage:       makeLookupPageEndpoint(workflow),
		ViewBooking:      makeViewBookingEndpoint(workflow),
		CancelBooking:    makeCancelBookingEndpoint(workflow),
	}
}

func makeSearchPageEndpoint() endpoint.Endpoint {
	return func(_ context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchQuery)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		return view.SearchView{Query: *request, Status: view.SearchIdle}, nil
	}
}

func makeSearchEndpoint(workflow BookingWorkflow) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.SearchQuery)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state := view.SearchView{Query: *request, Status: view.SearchIdle}
		workflow.Search(ctx, &state)

		return state, nil
	}
}

func makeBookingPageEndpoint(workflow BookingWorkflow) endpoint.Endpoint {
	return func(_ context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.HandoffParams)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state := view.BookingView{}
		workflow.Prefill(&state, request.Values())

		return state, nil
	}
}

func makeSubmitBookingEndpoint(workflow BookingWorkflow) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.BookingForm)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state := view.BookingView{Form: *request}
		workflow.SubmitBooking(ctx, &state)

		return state, nil
	}
}

func makeStartQuickBookEndpoint(workflow BookingWorkflow) endpoint.Endpoint {
	return func(_ context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.HandoffParams)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		return workflow.StartQuickBook(request.FlightID, request.Fare), nil
	}
}

func makeAdvanceQuickBookEndpoint(workflow BookingWorkflow) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.QuickBookForm)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		dialog := workflow.StartQuickBook(request.FlightID, request.Fare)
		if view.QuickBookStep(request.Step) == view.StepEmail {
			dialog.Step = view.StepEmail
			dialog.PassengerName = request.PassengerName
		}

		workflow.AdvanceQuickBook(ctx, &dialog, request.Input, request.Cancelled())

		return dialog, nil
	}
}

func makeLookupPageEndpoint(workflow BookingWorkflow) endpoint.Endpoint {
	return func(_ context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.LookupForm)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state := view.LookupView{PNR: request.PNR}
		workflow.OpenLookup(&state, request.Booked)

		return state, nil
	}
}

func makeViewBookingEndpoint(workflow BookingWorkflow) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.LookupForm)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state := view.LookupView{PNR: request.PNR}
		workflow.ViewBooking(ctx, &state)

		return state, nil
	}
}

// makeCancelBookingEndpoint asks for acknowledgement first: an empty confirm
// field renders the question, "yes" cancels, anything else declines.
func makeCancelBookingEndpoint(workflow BookingWorkflow) endpoint.Endpoint {
	return func(ctx context.Context, req interface{}) (interface{}, error) {
		request, ok := req.(*dto.LookupForm)
		if !ok || request == nil {
			return nil, errInvalidType
		}

		state := view.LookupView{PNR: request.PNR}
		if request.Confirm == "" {
			workflow.PromptCancel(&state)
			return state, nil
		}

		workflow.CancelBooking(ctx, &state, service.Answer(request.Confirm == confirmYes))

		return state, nil
	}
}
