package oracle

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
)

// ErrFailure is returned when the oracle responds but produces nothing
// usable. Transport and parse errors are wrapped as-is; callers treat any
// error from a Service call as retryable.
var ErrFailure = goerr.New("oracle returned no usable response")

// AnalyzeInput carries the conversations and matching context for one
// insight-extraction request.
type AnalyzeInput struct {
	Conversations []*model.Conversation
	PersonHints   []*model.PersonHint
	RangeStart    time.Time
	RangeEnd      time.Time

	// MaxConversations caps how many conversations are rendered into the
	// prompt. Zero means no cap beyond what the caller passed in.
	MaxConversations int
}

// SuggestInput carries the context for one gift-suggestion request. Interest
// and owned hints are passed as dedicated fields; they never masquerade as
// gift records.
type SuggestInput struct {
	Persons        []*model.PersonHint
	TargetPersonID types.PersonID
	ExistingGifts  []*model.Gift
	InterestHints  []string
	OwnedHints     []string
	BudgetMin      float64
	BudgetMax      float64
}

// Service is the reasoning oracle behind insight extraction and gift
// suggestion. Implementations must return an error wrapping ErrFailure for
// anything the caller should retry.
type Service interface {
	Analyze(ctx context.Context, input *AnalyzeInput) ([]*model.Insight, error)
	Suggest(ctx context.Context, input *SuggestInput) ([]*model.Suggestion, error)
}
