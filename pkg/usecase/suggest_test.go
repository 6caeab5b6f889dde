package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model/config"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/oracle"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/usecase"
)

func TestDedupSuggestions(t *testing.T) {
	suggestions := []*model.Suggestion{
		{Title: "Chalk bag", URL: "https://shop.example/chalk"},
		{Title: "Coffee grinder"},
		{Title: "COFFEE GRINDER  "},
		{Title: "Dismissed", URL: "https://shop.example/no"},
		{Title: "Pour over kettle"},
	}
	gifts := []*model.Gift{
		{Title: "different name", URL: "HTTPS://SHOP.EXAMPLE/CHALK"},
	}
	dismissed := []types.SuggestionKey{
		types.NewSuggestionKey("Dismissed", "https://shop.example/no"),
	}

	result := usecase.DedupSuggestions(suggestions, gifts, dismissed)

	gt.Array(t, result).Length(2)
	gt.Value(t, result[0].Title).Equal("Coffee grinder")
	gt.Value(t, result[1].Title).Equal("Pour over kettle")
}

func TestFetchSuggestions_Debounce(t *testing.T) {
	env := newTestEnv(t, true, func(p *config.Pipeline) {
		p.Cooldown = time.Minute
	})
	env.createPerson(t, "Robert Smith", "climbing")

	env.oracle.SuggestFn = func(ctx context.Context, input *oracle.SuggestInput) ([]*model.Suggestion, error) {
		return []*model.Suggestion{{Title: "Chalk bag"}}, nil
	}

	first, err := env.uc.FetchSuggestions(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, first).Length(1)

	second, err := env.uc.FetchSuggestions(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, second).Length(1)

	// The second fetch landed in the cooldown window and hit the cache.
	gt.Array(t, env.oracle.SuggestCalls()).Length(1)
}

func TestFetchSuggestions_CacheExpires(t *testing.T) {
	env := newTestEnv(t, true, func(p *config.Pipeline) {
		p.Cooldown = 20 * time.Millisecond
	})
	env.createPerson(t, "Robert Smith")

	env.oracle.SuggestFn = func(ctx context.Context, input *oracle.SuggestInput) ([]*model.Suggestion, error) {
		return []*model.Suggestion{{Title: "Chalk bag"}}, nil
	}

	_, err := env.uc.FetchSuggestions(context.Background())
	gt.NoError(t, err).Required()

	time.Sleep(30 * time.Millisecond)

	_, err = env.uc.FetchSuggestions(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, env.oracle.SuggestCalls()).Length(2)
}

func TestDismiss(t *testing.T) {
	env := newTestEnv(t, true, func(p *config.Pipeline) {
		p.Cooldown = time.Minute
	})
	env.createPerson(t, "Robert Smith")

	env.oracle.SuggestFn = func(ctx context.Context, input *oracle.SuggestInput) ([]*model.Suggestion, error) {
		return []*model.Suggestion{
			{Title: "Chalk bag", URL: "https://shop.example/chalk"},
			{Title: "Belay glasses"},
		}, nil
	}

	first, err := env.uc.FetchSuggestions(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, first).Length(2)

	target := first[0]
	gt.NoError(t, env.uc.Dismiss(context.Background(), target)).Required()
	// Dismissing twice is a no-op.
	gt.NoError(t, env.uc.Dismiss(context.Background(), target)).Required()

	// Dismissal invalidates the cache, so the next fetch is fresh and the
	// dismissed suggestion no longer surfaces.
	second, err := env.uc.FetchSuggestions(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, second).Length(1)
	gt.Value(t, second[0].Title).Equal("Belay glasses")
	gt.Array(t, env.oracle.SuggestCalls()).Length(2)
}

func TestDismiss_RequiresIdentity(t *testing.T) {
	env := newTestEnv(t, true, nil)
	err := env.uc.Dismiss(context.Background(), &model.Suggestion{Title: "   "})
	gt.Error(t, err)
}

func TestFetchSuggestionsByBudget(t *testing.T) {
	env := newTestEnv(t, true, nil)
	person := env.createPerson(t, "Robert Smith", "climbing")

	env.oracle.SuggestFn = func(ctx context.Context, input *oracle.SuggestInput) ([]*model.Suggestion, error) {
		return []*model.Suggestion{{Title: "Chalk bag", Price: 30}}, nil
	}

	suggestions, err := env.uc.FetchSuggestionsByBudget(context.Background(), person.ID, 25, 100)
	gt.NoError(t, err).Required()
	gt.Array(t, suggestions).Length(1)

	calls := env.oracle.SuggestCalls()
	gt.Array(t, calls).Length(1)
	gt.Value(t, calls[0].TargetPersonID).Equal(person.ID)
	gt.Value(t, calls[0].BudgetMin).Equal(25.0)
	gt.Value(t, calls[0].BudgetMax).Equal(100.0)

	t.Run("invalid range", func(t *testing.T) {
		_, err := env.uc.FetchSuggestionsByBudget(context.Background(), person.ID, 100, 25)
		gt.Error(t, err)
	})

	t.Run("unknown person", func(t *testing.T) {
		_, err := env.uc.FetchSuggestionsByBudget(context.Background(), 999, 25, 100)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, usecase.ErrPersonNotFound)).True()
	})
}
