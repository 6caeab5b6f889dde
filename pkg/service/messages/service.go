package messages

import (
	"context"
	"sort"
	"time"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/logging"
)

// Service reads message history through a capability-gated source and groups
// it into per-contact conversations. It is best effort by design: a missing
// capability or a failed read yields an empty result, never an error.
type Service struct {
	source   interfaces.MessageSource
	resolver interfaces.ContactResolver
}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithContactResolver attaches a display-name resolver for phone numbers.
func WithContactResolver(resolver interfaces.ContactResolver) Option {
	return func(s *Service) {
		s.resolver = resolver
	}
}

// New creates a message store service on top of the given source.
func New(source interfaces.MessageSource, opts ...Option) *Service {
	s := &Service{source: source}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Granted reports whether message history may be read.
func (s *Service) Granted(ctx context.Context) bool {
	return s.source.Granted(ctx)
}

// Conversations reads all messages within the lookback window and groups
// them into conversations keyed by normalized phone number. Each conversation
// is truncated to maxPerConversation messages, newest first, and the list is
// ordered by each conversation's most recent message descending.
func (s *Service) Conversations(ctx context.Context, lookbackDays, maxPerConversation int) []*model.Conversation {
	logger := logging.From(ctx)

	if !s.source.Granted(ctx) {
		logger.Warn("message read capability not granted, returning empty list")
		return nil
	}

	since := startOfLookback(lookbackDays)
	msgs, err := s.source.Query(ctx, since)
	if err != nil {
		logger.Error("failed to read messages", "error", err.Error(), "since", since)
		return nil
	}

	return s.group(ctx, msgs, maxPerConversation)
}

// ConversationFor reads the message history with a single contact. Returns
// nil when nothing was found or the capability is missing.
func (s *Service) ConversationFor(ctx context.Context, phoneNumber string, lookbackDays int) *model.Conversation {
	logger := logging.From(ctx)

	if !s.source.Granted(ctx) {
		logger.Warn("message read capability not granted")
		return nil
	}

	since := startOfLookback(lookbackDays)
	msgs, err := s.source.Query(ctx, since)
	if err != nil {
		logger.Error("failed to read messages for contact", "error", err.Error(), "phone_number", phoneNumber)
		return nil
	}

	key := NormalizePhoneNumber(phoneNumber)
	var matched []*model.Message
	for _, msg := range msgs {
		if msg.IsNoise() {
			continue
		}
		if NormalizePhoneNumber(msg.Address) == key {
			matched = append(matched, msg)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	sortNewestFirst(matched)
	return &model.Conversation{
		ContactName:   s.resolveName(ctx, key),
		PhoneNumber:   key,
		Messages:      matched,
		LastMessageAt: matched[0].SentAt,
	}
}

func (s *Service) group(ctx context.Context, msgs []*model.Message, maxPerConversation int) []*model.Conversation {
	groups := make(map[string][]*model.Message)
	for _, msg := range msgs {
		if msg.IsNoise() {
			continue
		}
		key := NormalizePhoneNumber(msg.Address)
		groups[key] = append(groups[key], msg)
	}

	conversations := make([]*model.Conversation, 0, len(groups))
	for key, group := range groups {
		sortNewestFirst(group)
		if len(group) > maxPerConversation {
			group = group[:maxPerConversation]
		}

		conversations = append(conversations, &model.Conversation{
			ContactName:   s.resolveName(ctx, key),
			PhoneNumber:   key,
			Messages:      group,
			LastMessageAt: group[0].SentAt,
		})
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})

	return conversations
}

func (s *Service) resolveName(ctx context.Context, phoneNumber string) string {
	if s.resolver == nil {
		return ""
	}
	name, err := s.resolver.ResolveName(ctx, phoneNumber)
	if err != nil {
		logging.From(ctx).Debug("contact name resolution failed", "phone_number", phoneNumber, "error", err.Error())
		return ""
	}
	return name
}

func sortNewestFirst(msgs []*model.Message) {
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].SentAt.After(msgs[j].SentAt)
	})
}

func startOfLookback(lookbackDays int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -lookbackDays)
}
