package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

var ErrInvalidAPIBaseURL = errors.New("API_BASE_URL must be an absolute http(s) URL")

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the server configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	HTTP     HTTP       `mapstructure:",squash"`
	API      API        `mapstructure:",squash"`
	Redis    Redis      `mapstructure:",squash"`
	InFlight InFlight   `mapstructure:",squash"`
}

type HTTP struct {
	Port               int           `mapstructure:"HTTP_PORT"`
	Timeout            time.Duration `mapstructure:"HTTP_TIMEOUT"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RateLimitRPS       int           `mapstructure:"RATE_LIMIT_RPS"`
}

// API is the booking backend. Timeout zero leaves outbound calls bounded only
// by the inbound request.
type API struct {
	BaseURL           string        `mapstructure:"API_BASE_URL"`
	Timeout           time.Duration `mapstructure:"API_TIMEOUT"`
	ReceiptProxyPaths []string      `mapstructure:"RECEIPT_PROXY_PATHS"`
}

// URL parses BaseURL once for injection into the API client.
func (a API) URL() (*url.URL, error) {
	base, err := url.Parse(a.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAPIBaseURL, err)
	}

	if !base.IsAbs() || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAPIBaseURL, a.BaseURL)
	}

	return base, nil
}

// Redis is optional; an empty address keeps the in-flight guard in memory and
// disables rate limiting.
type Redis struct {
	Addr     string        `mapstructure:"REDIS_ADDR"`
	Password string        `mapstructure:"REDIS_PASSWORD"`
	DB       int           `mapstructure:"REDIS_DB"`
	Timeout  time.Duration `mapstructure:"REDIS_TIMEOUT"`
}

func (r Redis) Enabled() bool {
	return r.Addr != ""
}

type InFlight struct {
	LockTimeout time.Duration `mapstructure:"INFLIGHT_LOCK_TIMEOUT"`
}
