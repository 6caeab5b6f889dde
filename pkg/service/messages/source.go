package messages

import (
	"context"
	"time"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
)

// repositorySource adapts a MessageRepository into a MessageSource. The
// capability is decided at construction: a server-side store holds only
// messages the device owner already consented to sync.
type repositorySource struct {
	repo    interfaces.MessageRepository
	granted bool
}

var _ interfaces.MessageSource = &repositorySource{}

// NewRepositorySource exposes a synced message store as a message source.
func NewRepositorySource(repo interfaces.MessageRepository, granted bool) interfaces.MessageSource {
	return &repositorySource{repo: repo, granted: granted}
}

func (s *repositorySource) Granted(ctx context.Context) bool {
	return s.granted
}

func (s *repositorySource) Query(ctx context.Context, since time.Time) ([]*model.Message, error) {
	return s.repo.Query(ctx, since)
}
