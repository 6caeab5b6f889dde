package oracle

import (
	"context"
	"sync"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
)

// Mock is a scriptable Service for tests. It records every input it
// received; unset function fields return empty results.
type Mock struct {
	AnalyzeFn func(ctx context.Context, input *AnalyzeInput) ([]*model.Insight, error)
	SuggestFn func(ctx context.Context, input *SuggestInput) ([]*model.Suggestion, error)

	mu           sync.Mutex
	analyzeCalls []*AnalyzeInput
	suggestCalls []*SuggestInput
}

var _ Service = (*Mock)(nil)

func (m *Mock) Analyze(ctx context.Context, input *AnalyzeInput) ([]*model.Insight, error) {
	m.mu.Lock()
	m.analyzeCalls = append(m.analyzeCalls, input)
	m.mu.Unlock()

	if m.AnalyzeFn != nil {
		return m.AnalyzeFn(ctx, input)
	}
	return nil, nil
}

func (m *Mock) Suggest(ctx context.Context, input *SuggestInput) ([]*model.Suggestion, error) {
	m.mu.Lock()
	m.suggestCalls = append(m.suggestCalls, input)
	m.mu.Unlock()

	if m.SuggestFn != nil {
		return m.SuggestFn(ctx, input)
	}
	return nil, nil
}

// AnalyzeCalls returns a snapshot of recorded Analyze inputs.
func (m *Mock) AnalyzeCalls() []*AnalyzeInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*AnalyzeInput(nil), m.analyzeCalls...)
}

// SuggestCalls returns a snapshot of recorded Suggest inputs.
func (m *Mock) SuggestCalls() []*SuggestInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*SuggestInput(nil), m.suggestCalls...)
}
