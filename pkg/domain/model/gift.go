package model

import (
	"time"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

// Gift is a tracked gift idea or purchase, optionally attached to a person.
type Gift struct {
	ID          types.GiftID
	Title       string
	Description string
	URL         string
	Price       float64
	PersonID    types.PersonID
	Purchased   bool
	PurchasedAt time.Time
	EventAt     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SuggestionKey returns the canonical dedup key for the gift.
func (g *Gift) SuggestionKey() types.SuggestionKey {
	return types.NewSuggestionKey(g.Title, g.URL)
}

// Suggestion is a gift candidate produced by the reasoning oracle. It is not
// persisted unless the user accepts it as a Gift.
type Suggestion struct {
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url,omitempty"`
	Price       float64        `json:"price,omitempty"`
	PersonID    types.PersonID `json:"person_id,omitempty"`
}

// SuggestionKey returns the canonical dedup key for the suggestion.
func (s *Suggestion) SuggestionKey() types.SuggestionKey {
	return types.NewSuggestionKey(s.Title, s.URL)
}
