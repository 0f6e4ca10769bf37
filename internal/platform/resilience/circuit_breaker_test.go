package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transition struct {
	from, to CircuitState
}

func newTestBreaker(t *testing.T, cfg CircuitBreakerConfig) (*Breaker, *time.Time, *[]transition) {
	t.Helper()

	now := time.Date(2025, 10, 4, 15, 0, 0, 0, time.UTC)
	var seen []transition
	b := NewBreaker("news-feeds", cfg).OnTransition(func(name string, from, to CircuitState) {
		assert.Equal(t, "news-feeds", name)
		seen = append(seen, transition{from, to})
	})
	b.now = func() time.Time { return now }
	return b, &now, &seen
}

func TestBreaker_OpensAndRecovers(t *testing.T) {
	b, now, seen := newTestBreaker(t, CircuitBreakerConfig{Enabled: true, FailureThreshold: 2, OpenTimeout: 5 * time.Second, HalfOpenMaxReq: 1})

	require.NoError(t, b.Allow())
	b.Done(true)
	assert.Equal(t, CircuitStateClosed, b.State())

	require.NoError(t, b.Allow())
	b.Done(true)
	assert.Equal(t, CircuitStateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	*now = now.Add(6 * time.Second)
	assert.Equal(t, CircuitStateHalfOpen, b.State())
	require.NoError(t, b.Allow())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen, "only one probe at a time")

	b.Done(false)
	assert.Equal(t, CircuitStateClosed, b.State())
	assert.Equal(t, []transition{
		{CircuitStateClosed, CircuitStateOpen},
		{CircuitStateOpen, CircuitStateHalfOpen},
		{CircuitStateHalfOpen, CircuitStateClosed},
	}, *seen)
}

func TestBreaker_FailedProbeReopens(t *testing.T) {
	b, now, _ := newTestBreaker(t, CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Second, HalfOpenMaxReq: 2})

	require.NoError(t, b.Allow())
	b.Done(true)
	*now = now.Add(2 * time.Second)

	require.NoError(t, b.Allow())
	b.Done(true)

	assert.Equal(t, CircuitStateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _, _ := newTestBreaker(t, CircuitBreakerConfig{Enabled: true, FailureThreshold: 2})

	b.Done(true)
	b.Done(false)
	b.Done(true)

	assert.Equal(t, CircuitStateClosed, b.State())
}

func TestBreaker_DisabledAdmitsEverything(t *testing.T) {
	b, _, seen := newTestBreaker(t, CircuitBreakerConfig{Enabled: false, FailureThreshold: 1})

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Allow())
		b.Done(true)
	}
	assert.False(t, b.Enabled())
	assert.Equal(t, CircuitStateClosed, b.State())
	assert.Empty(t, *seen)
}

func TestCircuitBreakerConfig_Normalize(t *testing.T) {
	got := CircuitBreakerConfig{Enabled: true, FailureThreshold: -1}.Normalize()

	assert.True(t, got.Enabled)
	assert.Equal(t, defaultFailureThreshold, got.FailureThreshold)
	assert.Equal(t, defaultOpenTimeout, got.OpenTimeout)
	assert.Equal(t, defaultHalfOpenProbes, got.HalfOpenMaxReq)
}
