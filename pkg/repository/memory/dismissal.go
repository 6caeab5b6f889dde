package memory

import (
	"context"
	"sync"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

type dismissalRepository struct {
	mu   sync.RWMutex
	keys map[types.SuggestionKey]struct{}
}

func newDismissalRepository() *dismissalRepository {
	return &dismissalRepository{
		keys: make(map[types.SuggestionKey]struct{}),
	}
}

func (r *dismissalRepository) Insert(ctx context.Context, key types.SuggestionKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Latest wins; re-inserting an existing key is a no-op.
	r.keys[key] = struct{}{}
	return nil
}

func (r *dismissalRepository) ListKeys(ctx context.Context) ([]types.SuggestionKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]types.SuggestionKey, 0, len(r.keys))
	for key := range r.keys {
		keys = append(keys, key)
	}

	return keys, nil
}
