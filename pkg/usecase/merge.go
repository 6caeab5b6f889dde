package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
)

// applyInsight merges an insight's extracted interests into the person's
// recorded preferences. The merge is non-destructive: existing preferences
// are never removed or reordered, and the person is written back only when
// the union is strictly larger than what was already recorded. Returns nil
// when nothing new was learned.
func (uc *UseCases) applyInsight(ctx context.Context, person *model.Person, insight *model.Insight) (*model.InsightApplication, error) {
	merged, added := mergePreferences(person.Preferences, insight.ExtractedInterests)
	if len(added) == 0 {
		return nil, nil
	}

	person.Preferences = merged
	if _, err := uc.repo.Person().Update(ctx, person); err != nil {
		return nil, goerr.Wrap(err, "failed to persist merged preferences",
			goerr.V("personID", person.ID),
		)
	}

	return &model.InsightApplication{
		PersonID:     person.ID,
		PersonName:   person.Name,
		NewInterests: added,
		Confidence:   insight.Confidence,
	}, nil
}

// mergePreferences appends interests not already present, comparing
// case-insensitively on trimmed values. Blank interests are dropped. The
// second return value lists what was actually added.
func mergePreferences(existing, interests []string) (merged []string, added []string) {
	seen := make(map[string]struct{}, len(existing))
	merged = append(merged, existing...)
	for _, p := range existing {
		seen[normalizePreference(p)] = struct{}{}
	}

	for _, interest := range interests {
		trimmed := strings.TrimSpace(interest)
		if trimmed == "" {
			continue
		}
		key := normalizePreference(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		merged = append(merged, trimmed)
		added = append(added, trimmed)
	}

	return merged, added
}

func normalizePreference(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
