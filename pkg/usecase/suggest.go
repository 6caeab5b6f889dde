package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/oracle"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// suggestionCache debounces general suggestion fetches. It only ever holds
// the result of the last successful FetchSuggestions call and is owned by a
// single UseCases instance.
type suggestionCache struct {
	mu          sync.Mutex
	fetchedAt   time.Time
	suggestions []*model.Suggestion
}

func (c *suggestionCache) get(cooldown time.Duration) ([]*model.Suggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchedAt.IsZero() || time.Since(c.fetchedAt) >= cooldown {
		return nil, false
	}
	return c.suggestions, true
}

func (c *suggestionCache) store(suggestions []*model.Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Now()
	c.suggestions = suggestions
}

// generateFromInsights turns fresh insights into deduplicated suggestions for
// one person. Insights below the confidence threshold are ignored, and when
// nothing crosses it the oracle is not called at all.
//
// Interest and owned hints are passed to the oracle as dedicated fields with
// a source prefix. They never take the shape of gift records and are never
// persisted.
func (uc *UseCases) generateFromInsights(ctx context.Context, person *model.Person, insights []*model.Insight, existingGifts []*model.Gift, dismissed []types.SuggestionKey) ([]*model.Suggestion, error) {
	var interestHints, ownedHints, avoidHints []string
	for _, insight := range insights {
		if insight.Confidence < uc.pipeline.ConfidenceThreshold {
			continue
		}
		for _, interest := range insight.ExtractedInterests {
			interestHints = append(interestHints, "sms:"+interest)
		}
		for _, item := range insight.MentionedItems {
			ownedHints = append(ownedHints, "mentioned:"+item)
		}
		avoidHints = append(avoidHints, insight.AvoidItems...)
	}

	// Only interests and mentioned items count as signal. Avoid items alone
	// give the oracle nothing to suggest from.
	if len(interestHints) == 0 && len(ownedHints) == 0 {
		return nil, nil
	}
	ownedHints = append(ownedHints, avoidHints...)

	input := &oracle.SuggestInput{
		Persons:        []*model.PersonHint{person.Hint()},
		TargetPersonID: person.ID,
		ExistingGifts:  existingGifts,
		InterestHints:  interestHints,
		OwnedHints:     ownedHints,
	}

	var suggestions []*model.Suggestion
	err := uc.retrier.do(ctx, "suggest", func(ctx context.Context) error {
		var opErr error
		suggestions, opErr = uc.oracle.Suggest(ctx, input)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	return dedupSuggestions(suggestions, existingGifts, dismissed), nil
}

// FetchSuggestions produces suggestions for every known person, skipping
// anything the user dismissed or already tracks. A call within the cooldown
// window of the previous successful call returns the cached result without
// touching the oracle.
func (uc *UseCases) FetchSuggestions(ctx context.Context) ([]*model.Suggestion, error) {
	logger := logging.From(ctx)

	if cached, ok := uc.cache.get(uc.pipeline.Cooldown); ok {
		logger.Debug("returning cached suggestions", "count", len(cached))
		return cached, nil
	}

	persons, gifts, dismissed, err := uc.loadSuggestionContext(ctx)
	if err != nil {
		return nil, err
	}

	hints := make([]*model.PersonHint, 0, len(persons))
	for _, p := range persons {
		hints = append(hints, p.Hint())
	}

	var all []*model.Suggestion
	for _, p := range persons {
		input := &oracle.SuggestInput{
			Persons:        hints,
			TargetPersonID: p.ID,
			ExistingGifts:  giftsFor(gifts, p.ID),
		}

		var suggestions []*model.Suggestion
		err := uc.retrier.do(ctx, "suggest", func(ctx context.Context) error {
			var opErr error
			suggestions, opErr = uc.oracle.Suggest(ctx, input)
			return opErr
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			logger.Error("suggestion fetch failed for person, skipping",
				"personID", p.ID,
				"error", err.Error(),
			)
			continue
		}
		all = append(all, suggestions...)
	}

	result := dedupSuggestions(all, gifts, dismissed)
	uc.cache.store(result)
	return result, nil
}

// FetchSuggestionsByBudget produces suggestions for one person within a
// price range. Budget fetches are always fresh; they bypass the debounce
// cache in both directions.
func (uc *UseCases) FetchSuggestionsByBudget(ctx context.Context, personID types.PersonID, minPrice, maxPrice float64) ([]*model.Suggestion, error) {
	if maxPrice > 0 && minPrice > maxPrice {
		return nil, goerr.Wrap(ErrInvalidInput, "invalid budget range",
			goerr.V("min", minPrice), goerr.V("max", maxPrice),
		)
	}

	persons, gifts, dismissed, err := uc.loadSuggestionContext(ctx)
	if err != nil {
		return nil, err
	}

	hints := make([]*model.PersonHint, 0, len(persons))
	found := false
	for _, p := range persons {
		if p.ID == personID {
			found = true
		}
		hints = append(hints, p.Hint())
	}
	if !found {
		return nil, goerr.Wrap(ErrPersonNotFound, "cannot fetch suggestions",
			goerr.V("personID", personID),
		)
	}

	input := &oracle.SuggestInput{
		Persons:        hints,
		TargetPersonID: personID,
		ExistingGifts:  giftsFor(gifts, personID),
		BudgetMin:      minPrice,
		BudgetMax:      maxPrice,
	}

	var suggestions []*model.Suggestion
	err = uc.retrier.do(ctx, "suggest", func(ctx context.Context) error {
		var opErr error
		suggestions, opErr = uc.oracle.Suggest(ctx, input)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	return dedupSuggestions(suggestions, gifts, dismissed), nil
}

// Dismiss records the suggestion's canonical key so it never resurfaces.
// Dismissing the same suggestion twice is a no-op.
func (uc *UseCases) Dismiss(ctx context.Context, suggestion *model.Suggestion) error {
	if strings.TrimSpace(suggestion.Title) == "" && strings.TrimSpace(suggestion.URL) == "" {
		return goerr.Wrap(ErrInvalidInput, "suggestion has neither title nor URL")
	}
	key := suggestion.SuggestionKey()
	if err := uc.repo.Dismissal().Insert(ctx, key); err != nil {
		return goerr.Wrap(err, "failed to record dismissal", goerr.V("key", key))
	}
	uc.cache.invalidate()
	return nil
}

func (c *suggestionCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchedAt = time.Time{}
	c.suggestions = nil
}

func (uc *UseCases) loadSuggestionContext(ctx context.Context) ([]*model.Person, []*model.Gift, []types.SuggestionKey, error) {
	var (
		persons   []*model.Person
		gifts     []*model.Gift
		dismissed []types.SuggestionKey
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		persons, err = uc.repo.Person().List(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		gifts, err = uc.repo.Gift().List(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		dismissed, err = uc.repo.Dismissal().ListKeys(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, nil, goerr.Wrap(err, "failed to load suggestion context")
	}
	return persons, gifts, dismissed, nil
}

// dedupSuggestions removes dismissed and already tracked suggestions in two
// passes over the canonical keys, then drops duplicates within the batch
// itself (first occurrence wins).
func dedupSuggestions(suggestions []*model.Suggestion, gifts []*model.Gift, dismissed []types.SuggestionKey) []*model.Suggestion {
	drop := make(map[types.SuggestionKey]struct{}, len(dismissed)+len(gifts))
	for _, key := range dismissed {
		drop[key] = struct{}{}
	}
	for _, g := range gifts {
		drop[g.SuggestionKey()] = struct{}{}
	}

	result := make([]*model.Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		key := s.SuggestionKey()
		if _, ok := drop[key]; ok {
			continue
		}
		drop[key] = struct{}{}
		result = append(result, s)
	}
	return result
}

func giftsFor(gifts []*model.Gift, personID types.PersonID) []*model.Gift {
	var result []*model.Gift
	for _, g := range gifts {
		if g.PersonID == personID {
			result = append(result, g)
		}
	}
	return result
}
