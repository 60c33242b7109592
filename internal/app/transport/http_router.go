package transport

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/flight-booking-client/internal/app/config"
	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-client/internal/app/endpoints"
	"github.com/ijalalfrz/flight-booking-client/internal/app/page"
	httptransport "github.com/ijalalfrz/flight-booking-client/internal/pkg/transport/http"
)

// MakeHTTPRouter builds the HTTP router with all the frontend pages.
// limiter may be nil, which disables rate limiting.
func MakeHTTPRouter(
	cfg *config.Config,
	apiBase *url.URL,
	endpts endpoints.Endpoints,
	renderer httptransport.PageRenderer,
	limiter *redis_rate.Limiter,
) *chi.Mux {
	router := chi.NewRouter()

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	receipts := newReceiptProxy(apiBase)
	for _, prefix := range cfg.API.ReceiptProxyPaths {
		prefix = "/" + strings.Trim(strings.TrimSpace(prefix), "/")
		if prefix == "/" {
			continue
		}

		router.Handle(prefix+"/*", receipts)
	}

	booking := endpts.BookingEndpoint

	router.Group(func(router chi.Router) {
		router.Use(
			middleware.RealIP,
			httptransport.RequestID(),
			httptransport.CORSMiddleware(cfg.HTTP.CORSAllowedOrigins),
			httptransport.Recoverer(slog.Default()),
			httptransport.NegotiateContentType(),
			httptransport.RateLimit(limiter, cfg.HTTP.RateLimitRPS),
			httptransport.SubmissionScope(),
		)

		router.Get("/", httptransport.MakeHandlerFunc(
			booking.SearchPage,
			httptransport.DecodeRequest[dto.SearchQuery],
			httptransport.RenderView(renderer, page.Search),
		))
		router.Get("/flights", httptransport.MakeHandlerFunc(
			booking.Search,
			httptransport.DecodeRequest[dto.SearchQuery],
			httptransport.RenderView(renderer, page.Search),
		))

		router.Get("/booking-page", httptransport.MakeHandlerFunc(
			booking.BookingPage,
			httptransport.DecodeRequest[dto.HandoffParams],
			httptransport.RenderView(renderer, page.Booking),
		))
		router.Post("/booking-page", httptransport.MakeHandlerFunc(
			booking.SubmitBooking,
			httptransport.DecodeRequest[dto.BookingForm],
			httptransport.RenderView(renderer, page.Booking),
		))

		router.Get("/quick-book", httptransport.MakeHandlerFunc(
			booking.StartQuickBook,
			httptransport.DecodeRequest[dto.HandoffParams],
			httptransport.RenderView(renderer, page.QuickBook),
		))
		router.Post("/quick-book", httptransport.MakeHandlerFunc(
			booking.AdvanceQuickBook,
			httptransport.DecodeRequest[dto.QuickBookForm],
			httptransport.RenderView(renderer, page.QuickBook),
		))

		router.Route("/mybookings", func(router chi.Router) {
			router.Get("/", httptransport.MakeHandlerFunc(
				booking.LookupPage,
				httptransport.DecodeRequest[dto.LookupForm],
				httptransport.RenderView(renderer, page.Lookup),
			))
			router.Post("/view", httptransport.MakeHandlerFunc(
				booking.ViewBooking,
				httptransport.DecodeRequest[dto.LookupForm],
				httptransport.RenderView(renderer, page.Lookup),
			))
			router.Post("/cancel", httptransport.MakeHandlerFunc(
				booking.CancelBooking,
				httptransport.DecodeRequest[dto.LookupForm],
				httptransport.RenderView(renderer, page.Lookup),
			))
		})
	})

	return router
}

// newReceiptProxy forwards receipt downloads to the backend so the opaque,
// origin-relative artifact URLs resolve from the frontend origin.
func newReceiptProxy(apiBase *url.URL) http.Handler {
	proxy := &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(apiBase)
			r.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			slog.WarnContext(r.Context(), "receipt proxy failed",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()))
			w.WriteHeader(http.StatusBadGateway)
		},
	}

	return proxy
}
