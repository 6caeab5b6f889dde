package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
)

// IngestMessages appends a batch of synced messages to the message store.
// Cached suggestions are invalidated because new history can change them.
func (uc *UseCases) IngestMessages(ctx context.Context, batch []*model.Message) error {
	for i, msg := range batch {
		if msg.ID == "" {
			return goerr.Wrap(ErrInvalidInput, "message ID is required", goerr.V("index", i))
		}
		if !msg.Direction.IsValid() {
			return goerr.Wrap(ErrInvalidInput, "invalid message direction",
				goerr.V("index", i), goerr.V("direction", msg.Direction))
		}
	}

	if err := uc.repo.Message().Append(ctx, batch); err != nil {
		return goerr.Wrap(err, "failed to append message batch")
	}

	uc.cache.invalidate()
	return nil
}
