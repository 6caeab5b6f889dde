package model

import "github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"

// Insight is a confidence-scored extraction of gift-relevant signal for one
// contact, produced by the reasoning oracle from a message conversation.
// Confidence is advisory and must gate downstream use.
type Insight struct {
	PhoneNumber        string   `json:"phone_number"`
	ContactName        string   `json:"contact_name,omitempty"`
	Confidence         float64  `json:"confidence"`
	ExtractedInterests []string `json:"extracted_interests,omitempty"`
	MentionedItems     []string `json:"mentioned_items,omitempty"`
	AvoidItems         []string `json:"avoid_items,omitempty"`
	SpecialDates       []string `json:"special_dates,omitempty"`
	Notes              string   `json:"notes,omitempty"`
}

// InsightApplication records a successful merge of insight interests into a
// person record. It is reported to the caller, never persisted.
type InsightApplication struct {
	PersonID     types.PersonID `json:"person_id"`
	PersonName   string         `json:"person_name"`
	NewInterests []string       `json:"new_interests"`
	Confidence   float64        `json:"confidence"`
}
