package model

import (
	"time"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

// Person is a gift recipient known to the user.
type Person struct {
	ID            types.PersonID
	Name          string
	Relationships []string
	Notes         string
	Preferences   []string
	DefaultBudget float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Hint returns the read-only projection of the person that is sent to the
// reasoning oracle as matching context. It is never written back.
func (p *Person) Hint() *PersonHint {
	return &PersonHint{
		ID:            p.ID,
		Name:          p.Name,
		Relationships: append([]string(nil), p.Relationships...),
		Notes:         p.Notes,
		Preferences:   append([]string(nil), p.Preferences...),
		DefaultBudget: p.DefaultBudget,
	}
}

// PersonHint is the oracle-facing projection of a person record.
type PersonHint struct {
	ID            types.PersonID `json:"id"`
	Name          string         `json:"name"`
	Relationships []string       `json:"relationships,omitempty"`
	Notes         string         `json:"notes,omitempty"`
	Preferences   []string       `json:"preferences,omitempty"`
	DefaultBudget float64        `json:"default_budget,omitempty"`
}
