package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute)
	failing := func() error { return errors.New("model down") }

	for i := 0; i < 3; i++ {
		err := cb.Call(failing)
		require.Error(t, err)
	}

	assert.Equal(t, StateOpen, cb.State())

	// Calls are rejected without invoking the function
	invoked := false
	err := cb.Call(func() error {
		invoked = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, invoked)
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)

	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(20 * time.Millisecond)

	// First call after timeout probes the service; success closes the circuit
	require.NoError(t, cb.Call(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 0, cb.Failures())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(1, 10*time.Millisecond)

	require.Error(t, cb.Call(func() error { return errors.New("boom") }))

	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Call(func() error { return errors.New("still down") }))
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_SuccessResetsFailures(t *testing.T) {
	cb := NewCircuitBreaker(3, time.Minute)

	require.Error(t, cb.Call(func() error { return errors.New("one") }))
	require.Error(t, cb.Call(func() error { return errors.New("two") }))
	require.NoError(t, cb.Call(func() error { return nil }))

	assert.Equal(t, 0, cb.Failures())
	assert.Equal(t, StateClosed, cb.State())

	m := cb.Metrics()
	assert.Equal(t, int64(3), m.TotalCalls)
	assert.Equal(t, int64(2), m.TotalFailures)
	assert.Equal(t, int64(1), m.TotalSuccesses)
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cb := NewCircuitBreaker(1, time.Minute)

	require.Error(t, cb.Call(func() error { return errors.New("boom") }))
	require.Equal(t, StateOpen, cb.State())

	cb.Reset()

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, 0, cb.Failures())
}
