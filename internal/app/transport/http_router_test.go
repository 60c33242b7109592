//go:build unit

package transport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/ijalalfrz/flight-booking-client/internal/app/config"
	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-client/internal/app/endpoints"
	"github.com/ijalalfrz/flight-booking-client/internal/app/page"
	"github.com/ijalalfrz/flight-booking-client/internal/app/service"
	"github.com/ijalalfrz/flight-booking-client/internal/app/view"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/bookingapi"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/inflight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFrontend struct {
	frontend *httptest.Server
	calls    atomic.Int32
}

func newTestFrontend(t *testing.T) *testFrontend {
	t.Helper()

	require.NoError(t, dto.InitValidator())

	env := &testFrontend{}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", func(w http.ResponseWriter, r *http.Request) {
		env.calls.Add(1)
		if r.URL.Query().Get("origin") != "DEL" {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_, _ = w.Write([]byte(`[{"flight_id":7,"origin":"DEL","destination":"BOM","departure":"2025-01-01T10:00:00",` +
			`"available_seats":12,"demand":0.8,"fare":4500}]`))
	})
	mux.HandleFunc("POST /book", func(w http.ResponseWriter, _ *http.Request) {
		env.calls.Add(1)
		_, _ = w.Write([]byte(`{"pnr":"PNR123","pdf":"/receipts/PNR123.pdf","json":"/receipts/PNR123.json"}`))
	})
	mux.HandleFunc("GET /booking/{pnr}", func(w http.ResponseWriter, r *http.Request) {
		env.calls.Add(1)
		if r.PathValue("pnr") != "PNR123" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"pnr":"PNR123","passenger_name":"Asha Rao","email":"asha@example.com",` +
			`"flight_id":7,"fare":4500,"status":"CONFIRMED","booking_time":"2025-01-01T09:00:00"}`))
	})
	mux.HandleFunc("DELETE /cancel/{pnr}", func(w http.ResponseWriter, _ *http.Request) {
		env.calls.Add(1)
		_, _ = w.Write([]byte(`{"message":"Booking cancelled."}`))
	})
	mux.HandleFunc("GET /receipts/{file}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("receipt " + r.PathValue("file")))
	})

	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)

	apiBase, err := url.Parse(backend.URL)
	require.NoError(t, err)

	api, err := bookingapi.NewClient(bookingapi.Config{BaseURL: apiBase})
	require.NoError(t, err)

	renderer, err := page.NewRenderer()
	require.NoError(t, err)

	cfg := &config.Config{
		HTTP: config.HTTP{CORSAllowedOrigins: []string{"*"}},
		API:  config.API{ReceiptProxyPaths: []string{"/receipts", "receipt/"}},
	}

	workflow := service.NewBookingWorkflow(api, inflight.NewMemoryGuard(), 0)
	endpts := endpoints.Endpoints{BookingEndpoint: endpoints.MakeBookingEndpoint(workflow)}

	env.frontend = httptest.NewServer(MakeHTTPRouter(cfg, apiBase, endpts, renderer, nil))
	t.Cleanup(env.frontend.Close)

	return env
}

func (e *testFrontend) do(t *testing.T, method, path string, form url.Values, accept string) *http.Response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, e.frontend.URL+path, body)
	require.NoError(t, err)

	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}}

	resp, err := client.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func TestRouter_Health(t *testing.T) {
	env := newTestFrontend(t)

	resp := env.do(t, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRouter_Search(t *testing.T) {
	env := newTestFrontend(t)

	t.Run("html results carry booking links", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/flights?origin=+del+&destination=bom", nil, "text/html")
		body := readBody(t, resp)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
		assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
		assert.Contains(t, body, "Flight 7")
		assert.Contains(t, body, "₹4500")
		assert.Contains(t, body, "/booking-page?flight_id=7&amp;fare=4500")
		assert.Contains(t, body, `value="DEL"`)
	})

	t.Run("json view state", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/flights?origin=del&destination=bom", nil, "application/json")

		var state view.SearchView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))

		assert.Equal(t, view.SearchResults, state.Status)
		require.Len(t, state.Offers, 1)
		assert.Equal(t, "/quick-book?flight_id=7&fare=4500", state.Offers[0].QuickBookURL)
	})

	t.Run("empty result notice", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/flights?origin=GOI&destination=BOM", nil, "")

		assert.Contains(t, readBody(t, resp), "No flights available.")
	})
}

func TestRouter_Booking(t *testing.T) {
	env := newTestFrontend(t)

	t.Run("handoff prefills the form", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/booking-page?flight_id=7&fare=4500", nil, "application/json")

		var state view.BookingView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))

		assert.Equal(t, "7", state.Form.FlightID)
		assert.Equal(t, "4500", state.Form.Fare)
	})

	t.Run("submit renders confirmation and receipt links", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/booking-page", url.Values{
			"flight_id":      {"7"},
			"passenger_name": {"Asha Rao"},
			"email":          {"asha@example.com"},
			"fare":           {"4500"},
		}, "")
		body := readBody(t, resp)

		assert.Contains(t, body, "Booking confirmed! PNR: PNR123")
		assert.Contains(t, body, `href="/receipts/PNR123.pdf" target="_blank"`)
		assert.Contains(t, body, "Open PDF receipt")
		assert.Contains(t, body, `href="/receipts/PNR123.json" download`)
	})

	t.Run("missing fields never reach the backend", func(t *testing.T) {
		before := env.calls.Load()

		resp := env.do(t, http.MethodPost, "/booking-page", url.Values{"flight_id": {"7"}}, "")

		assert.Contains(t, readBody(t, resp), "Please fill all fields.")
		assert.Equal(t, before, env.calls.Load())
	})
}

func TestRouter_QuickBook(t *testing.T) {
	env := newTestFrontend(t)

	t.Run("name step asks for email", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/quick-book", url.Values{
			"flight_id": {"7"}, "fare": {"4500"}, "step": {"name"}, "input": {"Asha Rao"}, "action": {"ok"},
		}, "")
		body := readBody(t, resp)

		assert.Contains(t, body, "Email:")
		assert.Contains(t, body, `name="passenger_name" value="Asha Rao"`)
	})

	t.Run("email step books and redirects to lookup", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/quick-book", url.Values{
			"flight_id": {"7"}, "fare": {"4500"}, "step": {"email"}, "passenger_name": {"Asha Rao"},
			"input": {"asha@example.com"}, "action": {"ok"},
		}, "")

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/mybookings?pnr=PNR123&booked=true", resp.Header.Get("Location"))
	})

	t.Run("cancel abandons without a request", func(t *testing.T) {
		before := env.calls.Load()

		resp := env.do(t, http.MethodPost, "/quick-book", url.Values{
			"flight_id": {"7"}, "fare": {"4500"}, "step": {"email"}, "passenger_name": {"Asha Rao"},
			"input": {"asha@example.com"}, "action": {"cancel"},
		}, "")

		assert.Contains(t, readBody(t, resp), "Quick booking abandoned")
		assert.Equal(t, before, env.calls.Load())
	})
}

func TestRouter_MyBookings(t *testing.T) {
	env := newTestFrontend(t)

	t.Run("pnr is pre-seeded", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/mybookings?pnr=PNR123", nil, "")

		assert.Contains(t, readBody(t, resp), `name="pnr" value="PNR123"`)
	})

	t.Run("quick-book handoff shows the confirmation", func(t *testing.T) {
		resp := env.do(t, http.MethodGet, "/mybookings?pnr=PNR123&booked=true", nil, "")
		body := readBody(t, resp)

		assert.Contains(t, body, "Booking confirmed! PNR: PNR123")
		assert.Contains(t, body, `name="pnr" value="PNR123"`)
	})

	t.Run("json view state from a form post", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/mybookings/view", url.Values{"pnr": {"PNR123"}}, "application/json")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var state view.LookupView
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))

		require.NotNil(t, state.Record)
		assert.Equal(t, "Asha Rao", state.Record.PassengerName)
	})

	t.Run("view shows the booking", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/mybookings/view", url.Values{"pnr": {" PNR123 "}}, "")
		body := readBody(t, resp)

		assert.Contains(t, body, "Asha Rao")
		assert.Contains(t, body, "CONFIRMED")
	})

	t.Run("unknown pnr", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/mybookings/view", url.Values{"pnr": {"NOPE"}}, "")

		assert.Contains(t, readBody(t, resp), "Booking not found.")
	})

	t.Run("cancel asks first", func(t *testing.T) {
		before := env.calls.Load()

		resp := env.do(t, http.MethodPost, "/mybookings/cancel", url.Values{"pnr": {"PNR123"}}, "")

		assert.Contains(t, readBody(t, resp), "Cancel booking PNR123?")
		assert.Equal(t, before, env.calls.Load())
	})

	t.Run("cancel asks about the typed pnr", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/mybookings/cancel", url.Values{"pnr": {"P2"}}, "")
		body := readBody(t, resp)

		assert.Contains(t, body, "Cancel booking P2?")
		assert.Contains(t, body, `<input type="hidden" name="pnr" value="P2">`)
	})

	t.Run("declined cancel sends nothing", func(t *testing.T) {
		before := env.calls.Load()

		resp := env.do(t, http.MethodPost, "/mybookings/cancel", url.Values{"pnr": {"PNR123"}, "confirm": {"no"}}, "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, before, env.calls.Load())
	})

	t.Run("confirmed cancel", func(t *testing.T) {
		resp := env.do(t, http.MethodPost, "/mybookings/cancel", url.Values{"pnr": {"PNR123"}, "confirm": {"yes"}}, "")

		assert.Contains(t, readBody(t, resp), "Booking cancelled.")
	})
}

func TestRouter_ReceiptProxy(t *testing.T) {
	env := newTestFrontend(t)

	resp := env.do(t, http.MethodGet, "/receipts/PNR123.pdf", nil, "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "receipt PNR123.pdf", readBody(t, resp))
}
