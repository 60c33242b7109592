package bookingapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
)

// maxErrorBody bounds how much of a failure body is shown to the user.
const maxErrorBody = 4096

func encodeSearchRequest(_ context.Context, r *http.Request, request interface{}) error {
	query, ok := request.(dto.SearchQuery)
	if !ok {
		return fmt.Errorf("encode search request: unexpected type %T", request)
	}

	values := url.Values{}
	values.Set("origin", query.Origin)
	values.Set("destination", query.Destination)
	r.URL.RawQuery = values.Encode()

	return nil
}

func decodeSearchResponse(_ context.Context, resp *http.Response) (interface{}, error) {
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var offers []dto.FlightOffer
	if err := decodeJSON(resp.Body, &offers); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if offers == nil {
		offers = []dto.FlightOffer{}
	}

	return offers, nil
}

func decodeBookResponse(_ context.Context, resp *http.Response) (interface{}, error) {
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var confirmation dto.BookingConfirmation
	if err := decodeJSON(resp.Body, &confirmation); err != nil {
		return nil, fmt.Errorf("decode book response: %w", err)
	}

	return confirmation, nil
}

func decodeLookupResponse(_ context.Context, resp *http.Response) (interface{}, error) {
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var record dto.BookingRecord
	if err := decodeJSON(resp.Body, &record); err != nil {
		return nil, fmt.Errorf("decode booking response: %w", err)
	}

	return record, nil
}

func decodeCancelResponse(_ context.Context, resp *http.Response) (interface{}, error) {
	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var result dto.CancelResult
	if err := decodeJSON(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("decode cancel response: %w", err)
	}

	return result, nil
}

// checkStatus turns a non-2xx answer into a StatusError carrying the body text.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	return StatusError(resp.StatusCode, strings.TrimSpace(string(body)))
}

func decodeJSON(body io.Reader, v interface{}) error {
	decoder := json.NewDecoder(body)
	decoder.UseNumber()

	return decoder.Decode(v)
}
