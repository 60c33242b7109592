package http

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/exception"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/inflight"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/logger"
)

var ErrTooManyRequests = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "too many requests, slow down",
}

type MiddlewareFunc func(http.Handler) http.Handler

func Recoverer(logger *slog.Logger) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if err, _ := rvr.(error); errors.Is(err, http.ErrAbortHandler) {
						// we don't recover http.ErrAbortHandler so the response
						// to the client is aborted, this should not be logged
						panic(rvr)
					}

					logger.ErrorContext(req.Context(), "panic occurred", slog.Any("message", rvr), slog.String("stack_trace", string(debug.Stack())))
					respWriter.WriteHeader(http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}

// CORSMiddleware set CORS related headers.
func CORSMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Origin", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	})
}

// RequestID add request id to context and response header.
func RequestID() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-Id")
			if requestID == "" {
				requestID = uuid.New().String()
			}

			ctx := context.WithValue(r.Context(), logger.RequestIDKey, requestID)
			w.Header().Set("X-Request-Id", requestID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubmissionField is the hidden form field carrying the token of one rendered
// form. API clients may send the same token as the X-Submission-Id header.
const SubmissionField = "submission"

const maxSubmissionLen = 64

// SubmissionScope scopes the in-flight guard to the submitted form token.
// Requests without a token are not guarded.
func SubmissionScope() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Submission-Id")
			if token == "" {
				token = r.FormValue(SubmissionField)
			}

			token = strings.TrimSpace(token)
			if token == "" || len(token) > maxSubmissionLen {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(inflight.WithScope(r.Context(), token)))
		})
	}
}

// NegotiateContentType picks JSON when the first recognised Accept entry is
// JSON and HTML otherwise.
func NegotiateContentType() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			contentType := render.ContentTypeHTML

		accept:
			for _, accepted := range strings.Split(r.Header.Get("Accept"), ",") {
				switch render.GetContentType(accepted) {
				case render.ContentTypeJSON:
					contentType = render.ContentTypeJSON
					break accept
				case render.ContentTypeHTML:
					break accept
				}
			}

			render.SetContentType(contentType)(next).ServeHTTP(w, r)
		})
	}
}

// RateLimit caps state-changing requests per client address. Reads pass
// through and a limiter failure never blocks the request.
func RateLimit(limiter *redis_rate.Limiter, rps int) MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if limiter == nil || rps <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			res, err := limiter.Allow(r.Context(), "ratelimit:"+clientIP(r), redis_rate.PerSecond(rps))
			if err != nil {
				slog.WarnContext(r.Context(), "rate limiter unavailable", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			if res.Allowed == 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
				ErrorResponse(r.Context(), ErrTooManyRequests, w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
