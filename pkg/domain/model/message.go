package model

import (
	"time"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

// MinMessageBodyLength is the shortest body treated as signal. Anything
// shorter is dropped as noise (delivery reports, reaction stubs).
const MinMessageBodyLength = 3

// Message is a single text message read from a device's message history.
// Bodies are personal data and must never reach logs, hence the masq tag.
type Message struct {
	ID        string
	Address   string
	Body      string `masq:"secret"`
	SentAt    time.Time
	Direction types.Direction
	ThreadID  string
}

// IsNoise reports whether the message carries no usable signal.
func (m *Message) IsNoise() bool {
	body := m.Body
	for _, r := range body {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return len(body) < MinMessageBodyLength
		}
	}
	return true
}

// Conversation is the message history with one contact, grouped by
// normalized phone number. Messages are always ordered newest first and
// capped by the reader.
type Conversation struct {
	ContactName   string
	PhoneNumber   string
	Messages      []*Message
	LastMessageAt time.Time
}
