package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ajg/form"
	"github.com/go-chi/render"
	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/exception"
)

var formDecoder = func() *form.Decoder {
	decoder := form.NewDecoder(nil)
	decoder.IgnoreUnknownKeys(true)

	return decoder
}()

// MakeHandlerFunc serves a go-kit endpoint with the given codec.
func MakeHandlerFunc(
	e endpoint.Endpoint,
	dec kithttp.DecodeRequestFunc,
	enc kithttp.EncodeResponseFunc,
) http.HandlerFunc {
	return kithttp.NewServer(e, dec, enc,
		kithttp.ServerBefore(kithttp.PopulateRequestContext),
		kithttp.ServerErrorEncoder(ErrorResponse),
	).ServeHTTP
}

// DecodeRequest reads T from the query string and form body, or from a JSON
// body, then runs T's Bind hook when it has one. The body format follows the
// request's Content-Type, never the negotiated response type.
func DecodeRequest[T any](_ context.Context, r *http.Request) (interface{}, error) {
	var req T

	if render.GetContentType(r.Header.Get("Content-Type")) == render.ContentTypeJSON {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			return nil, badRequest(err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return nil, badRequest(err)
		}

		if err := formDecoder.DecodeValues(&req, r.Form); err != nil {
			return nil, badRequest(err)
		}
	}

	if binder, ok := any(&req).(render.Binder); ok {
		if err := binder.Bind(r); err != nil {
			return nil, badRequest(err)
		}
	}

	return &req, nil
}

func badRequest(err error) error {
	return exception.ApplicationError{
		StatusCode: http.StatusBadRequest,
		Message:    "malformed request",
		Cause:      fmt.Errorf("decode request: %w", err),
	}
}
