package interfaces

import (
	"context"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

// DismissalRepository is the append-style ledger of suggestion keys the user
// has rejected. Writes are idempotent (latest wins); dedup always re-checks
// the full key set at filter time, so no transactional guard is needed.
type DismissalRepository interface {
	// Insert records a dismissed suggestion key. Re-inserting an existing
	// key is a safe no-op duplicate write.
	Insert(ctx context.Context, key types.SuggestionKey) error

	// ListKeys retrieves all dismissed suggestion keys
	ListKeys(ctx context.Context) ([]types.SuggestionKey, error)
}
