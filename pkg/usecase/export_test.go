package usecase

import "time"

var (
	MergePreferences = mergePreferences
	DedupSuggestions = dedupSuggestions
)

type Retrier = retrier

func NewTestRetrier(maxRetries int, baseDelay time.Duration, observer func(RetryState)) *Retrier {
	return &retrier{maxRetries: maxRetries, baseDelay: baseDelay, observer: observer}
}

var RetryDo = (*retrier).do
