package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("redis: connection refused")

// fakeClock 可手动推进的时钟
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(config Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker("redis-session", config)
	cb.now = clock.now
	cb.resetWindow(clock.now())
	return cb, clock
}

func fail() error    { return errUnavailable }
func succeed() error { return nil }

func TestCircuitBreaker_Closed(t *testing.T) {
	cb, _ := newTestBreaker(Config{})

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(succeed))
	}
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(Config{Timeout: time.Minute})

	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
	}
	assert.Equal(t, StateClosed, cb.State())

	assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
	assert.Equal(t, StateOpen, cb.State())

	// 打开状态下不调用请求
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	var transitions []string
	cb, clock := newTestBreaker(Config{
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
		OnStateChange: func(_ string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	_ = cb.Execute(fail)
	require.Equal(t, StateOpen, cb.State())

	clock.advance(31 * time.Second)
	assert.Equal(t, StateHalfOpen, cb.State())

	// 探测失败,回到打开状态
	assert.ErrorIs(t, cb.Execute(fail), errUnavailable)
	assert.Equal(t, StateOpen, cb.State())

	// 再次超时后探测成功,恢复关闭
	clock.advance(31 * time.Second)
	require.NoError(t, cb.Execute(succeed))
	assert.Equal(t, StateClosed, cb.State())

	assert.Equal(t, []string{
		"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->OPEN",
		"OPEN->HALF_OPEN", "HALF_OPEN->CLOSED",
	}, transitions)
}

func TestCircuitBreaker_HalfOpenLimitsProbes(t *testing.T) {
	cb, clock := newTestBreaker(Config{
		MaxRequests: 1,
		Timeout:     time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})
	_ = cb.Execute(fail)
	clock.advance(2 * time.Second)

	// 第一个探测请求执行期间,第二个请求被拒绝
	err := cb.Execute(func() error {
		assert.ErrorIs(t, cb.Execute(succeed), ErrOpenState)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_IntervalResetsCounts(t *testing.T) {
	cb, clock := newTestBreaker(Config{Interval: 10 * time.Second})

	for i := 0; i < 4; i++ {
		_ = cb.Execute(fail)
	}
	clock.advance(11 * time.Second)
	_ = cb.Execute(fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().ConsecutiveFailures)
}

func TestCircuitBreaker_IsSuccessful(t *testing.T) {
	cb, _ := newTestBreaker(Config{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	assert.ErrorIs(t, cb.Execute(func() error { return context.Canceled }), context.Canceled)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCounts_FailureRate(t *testing.T) {
	assert.Equal(t, 0.0, Counts{}.FailureRate())
	assert.InDelta(t, 0.25, Counts{Requests: 4, TotalFailures: 1}.FailureRate(), 1e-9)
}
