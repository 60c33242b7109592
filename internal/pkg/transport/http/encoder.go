package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/exception"
)

// PageRenderer writes the named page for a view state.
type PageRenderer interface {
	Render(w io.Writer, name string, data interface{}) error
}

// Redirector is implemented by view states that end on another page.
type Redirector interface {
	RedirectURL() string
}

// ResponseWithBody is the common method to encode all response types to the client.
func ResponseWithBody(_ context.Context, w http.ResponseWriter, response interface{}) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("encode response body: %w", err)
	}

	return nil
}

// RenderView encodes a view state as the named HTML page, or as JSON when the
// client negotiated JSON.
func RenderView(renderer PageRenderer, name string) func(context.Context, http.ResponseWriter, interface{}) error {
	return func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
		if WantsJSON(ctx) {
			return ResponseWithBody(ctx, w, response)
		}

		if redirector, ok := response.(Redirector); ok && redirector.RedirectURL() != "" {
			w.Header().Set("Location", redirector.RedirectURL())
			w.WriteHeader(http.StatusSeeOther)

			return nil
		}

		var buf bytes.Buffer
		if err := renderer.Render(&buf, name, response); err != nil {
			return fmt.Errorf("render %s page: %w", name, err)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := buf.WriteTo(w); err != nil {
			return fmt.Errorf("write %s page: %w", name, err)
		}

		return nil
	}
}

// WantsJSON reports whether content negotiation chose JSON for this request.
func WantsJSON(ctx context.Context) bool {
	contentType, ok := ctx.Value(render.ContentTypeCtxKey).(render.ContentType)

	return ok && contentType == render.ContentTypeJSON
}

// ErrorResponse encodes the error response to the client. it will check if it's a sentinel error or unknown error.
func ErrorResponse(ctx context.Context, err error, respWriter http.ResponseWriter) {
	var (
		appErr     exception.ApplicationError
		message    string
		statusCode int
	)

	if errors.As(err, &appErr) {
		statusCode = appErr.StatusCode
		message = appErr.Message
	} else {
		statusCode = http.StatusInternalServerError
		message = err.Error()

		slog.ErrorContext(ctx, message, slog.Any("error", err))
	}

	respWriter.Header().Set("Content-Type", "application/json; charset=utf-8")
	respWriter.WriteHeader(statusCode)

	//nolint:errcheck,errchkjson
	json.NewEncoder(respWriter).Encode(dto.ErrorResponse{
		Error: message,
	})
}
