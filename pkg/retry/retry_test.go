package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExponentialSucceedsAfterFailures(t *testing.T) {
	calls := 0
	retries := 0

	err := Exponential(func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, ExponentialConfig{
		InitialInterval: time.Millisecond,
		MaxElapsedTime:  time.Second,
		OnRetry:         func(error, time.Duration) { retries++ },
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, retries)
}

func TestExponentialRequiresInterval(t *testing.T) {
	err := Exponential(func() error { return nil }, ExponentialConfig{})
	assert.Error(t, err)
}

func TestExponentialGivesUp(t *testing.T) {
	sentinel := errors.New("always")
	err := Exponential(func() error { return sentinel }, ExponentialConfig{
		InitialInterval: time.Millisecond,
		MaxElapsedTime:  20 * time.Millisecond,
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestConstant(t *testing.T) {
	calls := 0
	err := Constant(func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	}, time.Millisecond, 5)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	err = Constant(func() error {
		calls++
		return errors.New("always")
	}, time.Millisecond, 3)
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}
