package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/usecase"
)

func TestRetrierSucceedsFirstAttempt(t *testing.T) {
	var states []usecase.RetryState
	r := usecase.NewTestRetrier(2, time.Millisecond, func(s usecase.RetryState) {
		states = append(states, s)
	})

	calls := 0
	err := usecase.RetryDo(r, context.Background(), "op", func(ctx context.Context) error {
		calls++
		return nil
	})

	gt.NoError(t, err)
	gt.Value(t, calls).Equal(1)
	gt.Array(t, states).Length(2)
	gt.Value(t, states[0].Phase).Equal(usecase.RetryLoading)
	gt.Value(t, states[1].Phase).Equal(usecase.RetryIdle)
}

func TestRetrierRecoversAfterFailures(t *testing.T) {
	var delays []time.Duration
	r := usecase.NewTestRetrier(2, time.Millisecond, func(s usecase.RetryState) {
		if s.Phase == usecase.RetryPending {
			delays = append(delays, s.NextDelay)
		}
	})

	calls := 0
	err := usecase.RetryDo(r, context.Background(), "op", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return goerr.New("flaky")
		}
		return nil
	})

	gt.NoError(t, err)
	gt.Value(t, calls).Equal(3)
	// Backoff doubles per attempt.
	gt.Value(t, delays).Equal([]time.Duration{time.Millisecond, 2 * time.Millisecond})
}

func TestRetrierExhaustion(t *testing.T) {
	var last usecase.RetryState
	r := usecase.NewTestRetrier(2, time.Millisecond, func(s usecase.RetryState) {
		last = s
	})

	calls := 0
	err := usecase.RetryDo(r, context.Background(), "op", func(ctx context.Context) error {
		calls++
		return goerr.New("oracle down")
	})

	gt.Error(t, err)
	gt.Value(t, calls).Equal(3)
	gt.Value(t, last.Phase).Equal(usecase.RetryExhausted)
	gt.Bool(t, strings.Contains(err.Error(), "failed after 2 retries")).True()
	gt.Bool(t, strings.Contains(err.Error(), "oracle down")).True()
}

func TestRetrierCancelDuringBackoff(t *testing.T) {
	r := usecase.NewTestRetrier(3, time.Hour, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- usecase.RetryDo(r, ctx, "op", func(ctx context.Context) error {
			return goerr.New("always fails")
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		gt.Error(t, err)
		gt.Bool(t, strings.Contains(err.Error(), "retry aborted")).True()
	case <-time.After(time.Second):
		t.Fatal("retry did not abort on context cancellation")
	}
}
