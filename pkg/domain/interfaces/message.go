package interfaces

import (
	"context"
	"time"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
)

// MessageRepository stores text messages synced from a device. It backs the
// server-side message source; devices append batches, the pipeline queries by
// time window.
type MessageRepository interface {
	// Append stores a batch of synced messages
	Append(ctx context.Context, messages []*model.Message) error

	// Query retrieves all messages with SentAt >= since
	Query(ctx context.Context, since time.Time) ([]*model.Message, error)
}

// MessageSource is the capability-gated collaborator the message store reads
// from. Absence of the capability yields an empty result, never an error.
type MessageSource interface {
	// Granted reports whether message history may be read at all
	Granted(ctx context.Context) bool

	// Query retrieves raw messages with SentAt >= since
	Query(ctx context.Context, since time.Time) ([]*model.Message, error)
}

// ContactResolver resolves a display name for a phone number. Implementations
// may return an empty string when the number is unknown.
type ContactResolver interface {
	ResolveName(ctx context.Context, phoneNumber string) (string, error)
}
