//go:build unit

package endpoints

import (
	"context"
	"testing"

	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-client/internal/app/service"
	"github.com/ijalalfrz/flight-booking-client/internal/app/view"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/inflight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := dto.InitValidator(); err != nil {
		panic(err)
	}

	m.Run()
}

func newEndpoints(t *testing.T) (BookingEndpoint, *service.MockBookingAPI) {
	t.Helper()

	api := service.NewMockBookingAPI(t)
	workflow := service.NewBookingWorkflow(api, inflight.NewMemoryGuard(), 0)

	return MakeBookingEndpoint(workflow), api
}

func TestEndpoints_RejectWrongRequestType(t *testing.T) {
	e, _ := newEndpoints(t)

	_, err := e.Search(context.Background(), dto.SearchQuery{})
	assert.ErrorIs(t, err, errInvalidType)

	_, err = e.CancelBooking(context.Background(), (*dto.LookupForm)(nil))
	assert.ErrorIs(t, err, errInvalidType)
}

func TestCancelBookingEndpoint(t *testing.T) {
	cancelRequest := func(confirm string, mockSetup func(api *service.MockBookingAPI), want view.LookupView) func(t *testing.T) {
		return func(t *testing.T) {
			e, api := newEndpoints(t)
			mockSetup(api)

			got, err := e.CancelBooking(context.Background(), &dto.LookupForm{PNR: "P1", Confirm: confirm})

			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	}

	t.Run("empty confirm asks", cancelRequest("", func(*service.MockBookingAPI) {},
		view.LookupView{PNR: "P1", ConfirmCancel: "Cancel booking P1?"}))

	t.Run("no keeps the view", cancelRequest("no", func(*service.MockBookingAPI) {},
		view.LookupView{PNR: "P1"}))

	t.Run("yes cancels", cancelRequest("yes", func(api *service.MockBookingAPI) {
		api.On("CancelBooking", mock.Anything, "P1").Return(dto.CancelResult{Message: "Cancelled"}, nil).Once()
	}, view.LookupView{PNR: "P1", Notice: view.Success("Cancelled")}))
}

func TestAdvanceQuickBookEndpoint_RestoresEmailStep(t *testing.T) {
	e, api := newEndpoints(t)
	api.On("Book", mock.Anything, dto.BookingRequest{
		FlightID: 7, PassengerName: "Asha", Email: "asha@example.com", Fare: "4500",
	}).Return(dto.BookingConfirmation{PNR: "P1"}, nil).Once()

	got, err := e.AdvanceQuickBook(context.Background(), &dto.QuickBookForm{
		FlightID: "7", Fare: "4500", Step: "email", PassengerName: "Asha", Input: "asha@example.com", Action: "ok",
	})
	require.NoError(t, err)

	dialog, ok := got.(view.QuickBookDialog)
	require.True(t, ok)
	assert.Equal(t, view.StepBooked, dialog.Step)
	assert.Equal(t, "/mybookings?pnr=P1&booked=true", dialog.RedirectURL())
}

func TestBookingPageEndpoint_Prefills(t *testing.T) {
	e, _ := newEndpoints(t)

	got, err := e.BookingPage(context.Background(), &dto.HandoffParams{FlightID: "7", Fare: "4500"})
	require.NoError(t, err)

	state, ok := got.(view.BookingView)
	require.True(t, ok)
	assert.Equal(t, dto.BookingForm{FlightID: "7", Fare: "4500"}, state.Form)
}

func TestLookupPageEndpoint_BookedNotice(t *testing.T) {
	e, _ := newEndpoints(t)

	got, err := e.LookupPage(context.Background(), &dto.LookupForm{PNR: "PNR123", Booked: true})
	require.NoError(t, err)
	assert.Equal(t, view.LookupView{PNR: "PNR123", Notice: view.Success("Booking confirmed! PNR: PNR123")}, got)

	got, err = e.LookupPage(context.Background(), &dto.LookupForm{PNR: "PNR123"})
	require.NoError(t, err)
	assert.Equal(t, view.LookupView{PNR: "PNR123"}, got)
}
