package usecase

import (
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model/config"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/messages"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/oracle"
)

type UseCases struct {
	repo     interfaces.Repository
	messages *messages.Service
	oracle   oracle.Service
	pipeline *config.Pipeline

	retrier *retrier
	cache   *suggestionCache
}

type Option func(*UseCases)

// WithPipeline overrides the default pipeline tunables.
func WithPipeline(cfg *config.Pipeline) Option {
	return func(uc *UseCases) {
		uc.pipeline = cfg
	}
}

// WithRetryObserver installs a callback receiving retry state snapshots.
// Intended for surfaces that show loading and retry progress.
func WithRetryObserver(observer func(RetryState)) Option {
	return func(uc *UseCases) {
		uc.retrier.observer = observer
	}
}

func New(repo interfaces.Repository, msgSvc *messages.Service, oracleSvc oracle.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		messages: msgSvc,
		oracle:   oracleSvc,
		pipeline: config.DefaultPipeline(),
		retrier:  &retrier{},
		cache:    &suggestionCache{},
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.retrier.maxRetries = uc.pipeline.MaxRetries
	uc.retrier.baseDelay = uc.pipeline.BaseDelay

	return uc
}
