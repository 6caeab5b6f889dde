package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
)

type messageRepository struct {
	mu       sync.RWMutex
	messages []*model.Message
}

func newMessageRepository() *messageRepository {
	return &messageRepository{}
}

func copyMessage(m *model.Message) *model.Message {
	copied := *m
	return &copied
}

func (r *messageRepository) Append(ctx context.Context, messages []*model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, msg := range messages {
		r.messages = append(r.messages, copyMessage(msg))
	}
	return nil
}

func (r *messageRepository) Query(ctx context.Context, since time.Time) ([]*model.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Message
	for _, msg := range r.messages {
		if !msg.SentAt.Before(since) {
			result = append(result, copyMessage(msg))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].SentAt.After(result[j].SentAt)
	})

	return result, nil
}
