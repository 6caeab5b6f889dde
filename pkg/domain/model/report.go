package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

// RunID identifies a single analysis pipeline run.
type RunID string

// NewRunID generates a new time-ordered RunID.
func NewRunID() RunID {
	return RunID(uuid.Must(uuid.NewV7()).String())
}

// AnalysisReport is the structured result of one message analysis run. A run
// either yields a report or a typed error; partial per-insight failures are
// logged and skipped, never fatal.
type AnalysisReport struct {
	RunID         RunID                 `json:"run_id"`
	PersonID      types.PersonID        `json:"person_id"`
	Conversations int                   `json:"conversations"`
	Insights      []*Insight            `json:"insights"`
	Applied       []*InsightApplication `json:"applied"`
	Suggestions   []*Suggestion         `json:"suggestions"`
	StartedAt     time.Time             `json:"started_at"`
	FinishedAt    time.Time             `json:"finished_at"`
}
