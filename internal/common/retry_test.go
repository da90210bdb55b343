package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/rollcall/internal/service"
	"github.com/stretchr/testify/assert"
)

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name      string
		failures  int
		err       error
		attempts  int
		wantCalls int
		wantErr   error
	}{
		{name: "succeeds first time", failures: 0, attempts: 3, wantCalls: 1},
		{name: "succeeds after failures", failures: 2, err: errBoom, attempts: 3, wantCalls: 3},
		{name: "exhausts attempts", failures: 5, err: errBoom, attempts: 3, wantCalls: 3, wantErr: ErrMaxRetries},
		{name: "non retryable stops", failures: 5, err: &RetryableError{Err: errBoom, Retryable: false}, attempts: 3, wantCalls: 1, wantErr: errBoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			}, fastRetry(tt.attempts))

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithRetryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := fastRetry(3)
	opts.InitialDelay = time.Second
	opts.MaxDelay = time.Second

	err := WithRetry(ctx, func() error { return errors.New("fail") }, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestUserError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewUserError("could not save report", cause)

	assert.Equal(t, "could not save report: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "just a message", NewUserError("just a message", nil).Error())
}
