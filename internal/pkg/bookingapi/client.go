// Package bookingapi is the HTTP client for the booking backend: search,
// book, lookup and cancel.
package bookingapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/exception"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/logger"
)

// Config for the backend client. A zero Timeout means requests run until the
// backend answers or the caller's context ends.
type Config struct {
	BaseURL    *url.URL
	Timeout    time.Duration
	HTTPClient *http.Client
}

type Client struct {
	search endpoint.Endpoint
	book   endpoint.Endpoint
	lookup endpoint.Endpoint
	cancel endpoint.Endpoint
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == nil || cfg.BaseURL.Scheme == "" || cfg.BaseURL.Host == "" {
		return nil, errors.New("booking api base url must be absolute")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	options := []httptransport.ClientOption{
		httptransport.SetClient(httpClient),
		httptransport.ClientBefore(
			httptransport.SetRequestHeader("Accept", "application/json"),
			propagateRequestID,
		),
	}

	return &Client{
		search: httptransport.NewClient(http.MethodGet, endpointURL(cfg.BaseURL, "search"),
			encodeSearchRequest, decodeSearchResponse, options...).Endpoint(),
		book: httptransport.NewClient(http.MethodPost, endpointURL(cfg.BaseURL, "book"),
			httptransport.EncodeJSONRequest, decodeBookResponse, options...).Endpoint(),
		lookup: httptransport.NewExplicitClient(makePNRRequest(cfg.BaseURL, http.MethodGet, "booking"),
			decodeLookupResponse, options...).Endpoint(),
		cancel: httptransport.NewExplicitClient(makePNRRequest(cfg.BaseURL, http.MethodDelete, "cancel"),
			decodeCancelResponse, options...).Endpoint(),
	}, nil
}

// SearchFlights calls GET /search. The query is sent as given; normalising it
// is the caller's job.
func (c *Client) SearchFlights(ctx context.Context, query dto.SearchQuery) ([]dto.FlightOffer, error) {
	resp, err := c.search(ctx, query)
	if err != nil {
		return nil, classify("search", err)
	}

	return resp.([]dto.FlightOffer), nil
}

// Book calls POST /book.
func (c *Client) Book(ctx context.Context, req dto.BookingRequest) (dto.BookingConfirmation, error) {
	resp, err := c.book(ctx, req)
	if err != nil {
		return dto.BookingConfirmation{}, classify("book", err)
	}

	return resp.(dto.BookingConfirmation), nil
}

// GetBooking calls GET /booking/<pnr>.
func (c *Client) GetBooking(ctx context.Context, pnr string) (dto.BookingRecord, error) {
	resp, err := c.lookup(ctx, pnr)
	if err != nil {
		return dto.BookingRecord{}, classify("lookup", err)
	}

	return resp.(dto.BookingRecord), nil
}

// CancelBooking calls DELETE /cancel/<pnr>.
func (c *Client) CancelBooking(ctx context.Context, pnr string) (dto.CancelResult, error) {
	resp, err := c.cancel(ctx, pnr)
	if err != nil {
		return dto.CancelResult{}, classify("cancel", err)
	}

	return resp.(dto.CancelResult), nil
}

// classify keeps backend-reported failures as they are and files everything
// else under TransportError.
func classify(op string, err error) error {
	var appErr exception.ApplicationError
	if errors.As(err, &appErr) {
		return fmt.Errorf("%s: %w", op, appErr)
	}

	return TransportError{Op: op, Cause: err}
}

func makePNRRequest(base *url.URL, method, resource string) httptransport.CreateRequestFunc {
	return func(ctx context.Context, request interface{}) (*http.Request, error) {
		pnr, ok := request.(string)
		if !ok {
			return nil, fmt.Errorf("create %s request: unexpected type %T", resource, request)
		}

		target := endpointURL(base, resource)
		escaped := target.EscapedPath()
		target.Path += "/" + pnr
		target.RawPath = escaped + "/" + url.PathEscape(pnr)

		return http.NewRequestWithContext(ctx, method, target.String(), nil)
	}
}

func endpointURL(base *url.URL, resource string) *url.URL {
	target := *base
	target.Path = strings.TrimRight(base.Path, "/") + "/" + resource
	target.RawPath = ""
	target.RawQuery = ""
	target.Fragment = ""

	return &target
}

func propagateRequestID(ctx context.Context, r *http.Request) context.Context {
	if reqID := logger.RequestID(ctx); reqID != "" {
		r.Header.Set("X-Request-Id", reqID)
	}

	return ctx
}
