package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/flight-booking-client/internal/app/config"
	"github.com/ijalalfrz/flight-booking-client/internal/app/dto"
	"github.com/ijalalfrz/flight-booking-client/internal/app/endpoints"
	"github.com/ijalalfrz/flight-booking-client/internal/app/page"
	"github.com/ijalalfrz/flight-booking-client/internal/app/service"
	"github.com/ijalalfrz/flight-booking-client/internal/app/transport"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/bookingapi"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/inflight"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.MustInitConfig(".env")
	logger.InitStructuredLogger(cfg.LogLevel)

	slog.Debug("config loaded successfully", slog.Any("config", cfg))
	runApp(cfg)
}

func runApp(cfg config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "starting...", slog.String("log_level", string(cfg.LogLevel)))

	var waitGroup sync.WaitGroup
	// Starts the server in a go routine
	waitGroup.Add(1)
	go func() {
		defer waitGroup.Done()
		defer cancel()
		startHTTPServer(ctx, cfg)
	}()

	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case sig := <-sigChannel:
		cancel()
		slog.InfoContext(ctx, "received OS signal. Exiting...", slog.String("signal", sig.String()))
	case <-ctx.Done():
		slog.ErrorContext(ctx, "failed to start HTTP server")
	}

	waitGroup.Wait()
	slog.InfoContext(ctx, "All service closed...")
}

func startHTTPServer(ctx context.Context, cfg config.Config) {
	apiBase, err := cfg.API.URL()
	if err != nil {
		slog.ErrorContext(ctx, "invalid backend url", slog.String("error", err.Error()))
		return
	}

	renderer, err := page.NewRenderer()
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse pages", slog.String("error", err.Error()))
		return
	}

	redisClient := newRedisClient(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	endpts, err := makeEndpoints(ctx, &cfg, apiBase, redisClient)
	if err != nil {
		slog.ErrorContext(ctx, "failed to build endpoints", slog.String("error", err.Error()))
		return
	}

	var limiter *redis_rate.Limiter
	if redisClient != nil {
		limiter = redis_rate.NewLimiter(redisClient)
	}

	router := transport.MakeHTTPRouter(&cfg, apiBase, endpts, renderer, limiter)
	server := &http.Server{
		Handler:      router,
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		WriteTimeout: cfg.HTTP.Timeout,
		ReadTimeout:  cfg.HTTP.Timeout,
	}

	slog.Info("running HTTP server...",
		slog.Int("port", cfg.HTTP.Port),
		slog.String("backend", apiBase.String()))

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		slog.ErrorContext(ctx, "failed to start HTTP server", slog.String("error", err.Error()))
		return
	}

	if err := server.Shutdown(context.WithoutCancel(ctx)); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown HTTP server", slog.String("error", err.Error()))
	}

	slog.InfoContext(ctx, "HTTP server shutdown gracefully")
}

func newRedisClient(cfg config.Config) *redis.Client {
	if !cfg.Redis.Enabled() {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		ReadTimeout:  cfg.Redis.Timeout,
		WriteTimeout: cfg.Redis.Timeout,
	})
}

func makeEndpoints(ctx context.Context, cfg *config.Config, apiBase *url.URL,
	redisClient *redis.Client) (endpoints.Endpoints, error) {
	// init validator
	if err := dto.InitValidator(); err != nil {
		return endpoints.Endpoints{}, fmt.Errorf("init validator: %w", err)
	}

	api, err := bookingapi.NewClient(bookingapi.Config{
		BaseURL: apiBase,
		Timeout: cfg.API.Timeout,
	})
	if err != nil {
		return endpoints.Endpoints{}, fmt.Errorf("init booking api client: %w", err)
	}

	var guard service.RequestGuard = inflight.NewMemoryGuard()
	if redisClient != nil {
		guard = inflight.NewRedisGuard(redisClient)
		slog.InfoContext(ctx, "in-flight guard backed by redis", slog.String("addr", cfg.Redis.Addr))
	}

	workflow := service.NewBookingWorkflow(api, guard, cfg.InFlight.LockTimeout)

	return endpoints.Endpoints{
		BookingEndpoint: endpoints.MakeBookingEndpoint(workflow),
	}, nil
}
