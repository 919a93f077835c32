package google

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_Default(t *testing.T) {
	limiter := NewRateLimiter(ServiceSheetsMetadata)

	assert.Equal(t, time.Second, limiter.Interval())
}

func TestNewRateLimiter_UnknownServiceFallsBack(t *testing.T) {
	limiter := NewRateLimiter(ServiceType("unknown"))

	assert.Equal(t, time.Second, limiter.Interval())
}

func TestNewRateLimiterWithConfig_BurstAtLeastOne(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 4, BurstSize: 0})

	assert.Equal(t, 1, limiter.limiter.Burst())
	assert.Equal(t, 250*time.Millisecond, limiter.Interval())
}

func TestRateLimiter_SpacesConsecutiveCalls(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 1})
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx))
	start := time.Now()
	require.NoError(t, limiter.Wait(ctx))

	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestRateLimiter_DefaultRateSpacing(t *testing.T) {
	if testing.Short() {
		t.Skip("waits a full interval")
	}

	limiter := NewRateLimiter(ServiceSheetsMetadata)
	ctx := context.Background()

	require.NoError(t, limiter.Wait(ctx))
	start := time.Now()
	require.NoError(t, limiter.Wait(ctx))

	assert.GreaterOrEqual(t, time.Since(start), 950*time.Millisecond)
}

func TestRateLimiter_WaitCancelled(t *testing.T) {
	limiter := NewRateLimiter(ServiceSheetsMetadata)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestThrottle_PassesThroughResult(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 1})
	double := Throttle(limiter, func(_ context.Context, n int) (int, error) {
		return n * 2, nil
	})

	got, err := double(context.Background(), 21)

	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestThrottle_SharedLimiterAcrossWrappers(t *testing.T) {
	limiter := NewRateLimiterWithConfig(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 1})
	var calls atomic.Int32
	fn := func(_ context.Context, _ string) (struct{}, error) {
		calls.Add(1)
		return struct{}{}, nil
	}
	first := Throttle(limiter, fn)
	second := Throttle(limiter, fn)
	ctx := context.Background()

	start := time.Now()
	_, err := first(ctx, "a")
	require.NoError(t, err)
	_, err = second(ctx, "b")
	require.NoError(t, err)
	_, err = first(ctx, "c")
	require.NoError(t, err)

	assert.Equal(t, int32(3), calls.Load())
	assert.GreaterOrEqual(t, time.Since(start), 180*time.Millisecond)
}

func TestThrottle_CancelledContextSkipsCall(t *testing.T) {
	limiter := NewRateLimiter(ServiceSheetsMetadata)
	called := false
	fn := Throttle(limiter, func(_ context.Context, _ string) (string, error) {
		called = true
		return "value", nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := fn(ctx, "id")

	require.Error(t, err)
	assert.Empty(t, got)
	assert.False(t, called)
}
