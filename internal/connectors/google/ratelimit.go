package google

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// ServiceType identifies a Google API call family for rate limiting purposes.
type ServiceType string

const (
	// ServiceSheetsMetadata is spreadsheets.get, called once per listed spreadsheet.
	ServiceSheetsMetadata ServiceType = "sheets-metadata"
)

// RateLimitConfig holds rate limiting configuration for a service.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits are deliberately far below Google's quotas.
var DefaultRateLimits = map[ServiceType]RateLimitConfig{
	ServiceSheetsMetadata: {RequestsPerSecond: 1.0, BurstSize: 1},
}

// RateLimiter spaces calls so that consecutive starts are at least
// 1/RequestsPerSecond apart. The last-admitted time lives inside the
// token bucket and is shared by every caller of this limiter.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter for the specified service.
func NewRateLimiter(service ServiceType) *RateLimiter {
	cfg, ok := DefaultRateLimits[service]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 1.0, BurstSize: 1}
	}
	return NewRateLimiterWithConfig(cfg)
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	if cfg.BurstSize < 1 {
		cfg.BurstSize = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a call may start without exceeding the rate.
// It only fails if ctx is done first.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Interval is the minimum gap between consecutive calls.
func (r *RateLimiter) Interval() time.Duration {
	limit := r.limiter.Limit()
	if limit <= 0 || limit == rate.Inf {
		return 0
	}
	return time.Duration(float64(time.Second) / float64(limit))
}

// Throttle wraps fn so that every invocation first waits on r.
// The wrapped function has the same inputs and outputs as fn.
func Throttle[T, R any](r *RateLimiter, fn func(context.Context, T) (R, error)) func(context.Context, T) (R, error) {
	return func(ctx context.Context, arg T) (R, error) {
		if err := r.Wait(ctx); err != nil {
			var zero R
			return zero, err
		}
		return fn(ctx, arg)
	}
}
