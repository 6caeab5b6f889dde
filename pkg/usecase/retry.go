package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/logging"
)

// RetryPhase is the externally visible phase of a retried operation.
type RetryPhase string

const (
	RetryIdle      RetryPhase = "idle"
	RetryLoading   RetryPhase = "loading"
	RetryPending   RetryPhase = "retry_pending"
	RetryExhausted RetryPhase = "exhausted"
)

// RetryState is a snapshot of the retry loop, published to the observer on
// every transition. Attempt counts from zero.
type RetryState struct {
	Phase     RetryPhase
	Attempt   int
	NextDelay time.Duration
	LastError error
}

// retrier runs an operation with bounded exponential backoff. The delay for
// attempt n is baseDelay shifted left n times. The loop is single-writer;
// state is only published through the observer callback.
type retrier struct {
	maxRetries int
	baseDelay  time.Duration
	observer   func(RetryState)
}

func (r *retrier) publish(state RetryState) {
	if r.observer != nil {
		r.observer(state)
	}
}

// do runs op until it succeeds or maxRetries extra attempts are spent. The
// wait between attempts is cancellable through ctx. The terminal error wraps
// the last cause.
func (r *retrier) do(ctx context.Context, name string, op func(ctx context.Context) error) error {
	logger := logging.From(ctx)

	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		r.publish(RetryState{Phase: RetryLoading, Attempt: attempt, LastError: lastErr})

		lastErr = op(ctx)
		if lastErr == nil {
			r.publish(RetryState{Phase: RetryIdle, Attempt: attempt})
			return nil
		}

		if attempt == r.maxRetries {
			break
		}

		delay := r.baseDelay << attempt
		logger.Warn("operation failed, backing off",
			"operation", name,
			"attempt", attempt,
			"delay", delay.String(),
			"error", lastErr.Error(),
		)
		r.publish(RetryState{Phase: RetryPending, Attempt: attempt, NextDelay: delay, LastError: lastErr})

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.publish(RetryState{Phase: RetryIdle, Attempt: attempt, LastError: ctx.Err()})
			return goerr.Wrap(ctx.Err(), "retry aborted", goerr.V("operation", name))
		case <-timer.C:
		}
	}

	r.publish(RetryState{Phase: RetryExhausted, Attempt: r.maxRetries, LastError: lastErr})
	return goerr.Wrap(lastErr, fmt.Sprintf("failed after %d retries", r.maxRetries),
		goerr.V("operation", name),
	)
}
