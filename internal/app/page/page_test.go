//go:build unit

package page

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-client/internal/app/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	renderPage := func(name string, data interface{}, want ...string) func(t *testing.T) {
		return func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, renderer.Render(&buf, name, data))

			for _, fragment := range want {
				assert.Contains(t, buf.String(), fragment)
			}
		}
	}

	t.Run("search results", renderPage(Search, view.SearchView{
		Query:  dto.SearchQuery{Origin: "DEL", Destination: "BOM"},
		Status: view.SearchResults,
		Offers: []view.OfferCard{{
			Offer:        dto.FlightOffer{FlightID: 7, Origin: "DEL", Destination: "BOM", Fare: json.Number("4499.5")},
			BookingURL:   "/booking-page?flight_id=7&fare=4499.5",
			QuickBookURL: "/quick-book?flight_id=7&fare=4499.5",
		}},
	}, "<title>Search flights</title>", "₹4499.5", `href="/quick-book?flight_id=7&amp;fare=4499.5"`))

	t.Run("search notice", renderPage(Search, view.SearchView{
		Status: view.SearchBackendError,
		Notice: view.Warning("No flights found or backend error."),
	}, `class="notice notice-warning"`, "No flights found or backend error."))

	t.Run("booking confirmation", renderPage(Booking, view.BookingView{
		Notice:       view.Success("Booking confirmed! PNR: P1"),
		Confirmation: &dto.BookingConfirmation{PNR: "P1", PDF: "/receipts/P1.pdf", JSON: "/receipts/P1.json"},
	}, "Booking confirmed! PNR: P1", `target="_blank"`, "Open PDF receipt", `href="/receipts/P1.json" download`))

	t.Run("quick-book prompt", renderPage(QuickBook, view.QuickBookDialog{
		Step: view.StepName, FlightID: "7", Fare: "4500",
	}, "Passenger name:", `name="step" value="name"`, `value="cancel"`))

	t.Run("quick-book closed", renderPage(QuickBook, view.QuickBookDialog{
		Step: view.StepAbandoned, Notice: view.Info("Quick booking abandoned. No booking was made."),
	}, "Back to search"))

	t.Run("lookup confirm", renderPage(Lookup, view.LookupView{
		PNR: "P1", ConfirmCancel: "Cancel booking P1?",
	}, "Cancel booking P1?", `value="yes"`, `<input type="hidden" name="pnr" value="P1">`))

	t.Run("lookup form", renderPage(Lookup, view.LookupView{PNR: "P1"},
		`action="/mybookings/view"`, `formaction="/mybookings/cancel"`, `name="submission"`))

	t.Run("escapes backend text", renderPage(Lookup, view.LookupView{
		Notice: view.Danger("Cancellation failed: <script>"),
	}, "Cancellation failed: &lt;script&gt;"))
}

func TestRenderer_LookupCancelUsesTypedPNR(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, Lookup, view.LookupView{PNR: "P1"}))

	// cancel shares the visible input, no stale hidden copy
	assert.NotContains(t, buf.String(), `type="hidden" name="pnr"`)
	assert.Equal(t, 1, strings.Count(buf.String(), `name="pnr"`))
}

func TestRenderer_SubmissionTokenPerRender(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	token := func() string {
		var buf bytes.Buffer
		require.NoError(t, renderer.Render(&buf, Search, view.SearchView{}))

		match := regexp.MustCompile(`name="submission" value="([^"]+)"`).FindStringSubmatch(buf.String())
		require.Len(t, match, 2)
		return match[1]
	}

	assert.NotEqual(t, token(), token())
}

func TestRenderer_UnknownPage(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	assert.Error(t, renderer.Render(&bytes.Buffer{}, "nope", nil))
}
