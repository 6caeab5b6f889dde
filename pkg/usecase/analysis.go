package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/match"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/oracle"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// AnalyzeMessages runs the full analysis pipeline for one person: read
// recent conversations, extract insights through the oracle, merge matched
// interests into person records, and generate suggestions for the target
// person. Insights matched to other known people still update those people;
// only the suggestion stage is scoped to the target.
//
// Failures of individual insights are logged and skipped. The run as a whole
// fails only on missing permission, empty history, oracle exhaustion, or a
// missing person.
func (uc *UseCases) AnalyzeMessages(ctx context.Context, personID types.PersonID) (*model.AnalysisReport, error) {
	logger := logging.From(ctx)
	startedAt := time.Now().UTC()

	person, err := uc.repo.Person().Get(ctx, personID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrPersonNotFound, "cannot analyze messages",
				goerr.V("personID", personID),
			)
		}
		return nil, goerr.Wrap(err, "failed to load person", goerr.V("personID", personID))
	}

	if !uc.messages.Granted(ctx) {
		return nil, goerr.Wrap(ErrPermissionDenied, "message history is not readable")
	}

	conversations := uc.messages.Conversations(ctx, uc.pipeline.LookbackDays, uc.pipeline.MaxMessagesPerAnalysis)
	if len(conversations) == 0 {
		return nil, goerr.Wrap(ErrNoConversations, "nothing to analyze",
			goerr.V("lookbackDays", uc.pipeline.LookbackDays),
		)
	}
	// Conversations arrive most recent first; the oracle only ever sees the
	// newest MaxConversations of them.
	if len(conversations) > uc.pipeline.MaxConversations {
		conversations = conversations[:uc.pipeline.MaxConversations]
	}

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
		gifts, err = uc.repo.Gift().ListByPerson(egCtx, personID)
		return err
	})
	eg.Go(func() error {
		var err error
		dismissed, err = uc.repo.Dismissal().ListKeys(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "failed to load analysis context")
	}

	// Use the listed copy of the target from here on so merges through the
	// matching loop and the suggestion stage see the same record.
	for _, p := range persons {
		if p.ID == personID {
			person = p
			break
		}
	}

	hints := make([]*model.PersonHint, 0, len(persons))
	for _, p := range persons {
		hints = append(hints, p.Hint())
	}

	rangeEnd := time.Now().UTC()
	input := &oracle.AnalyzeInput{
		Conversations:    conversations,
		PersonHints:      hints,
		RangeStart:       rangeEnd.AddDate(0, 0, -uc.pipeline.LookbackDays),
		RangeEnd:         rangeEnd,
		MaxConversations: uc.pipeline.MaxConversations,
	}

	var insights []*model.Insight
	err = uc.retrier.do(ctx, "analyze", func(ctx context.Context) error {
		var opErr error
		insights, opErr = uc.oracle.Analyze(ctx, input)
		return opErr
	})
	if err != nil {
		return nil, err
	}

	report := &model.AnalysisReport{
		RunID:         model.NewRunID(),
		PersonID:      personID,
		Conversations: len(conversations),
		Insights:      insights,
		StartedAt:     startedAt,
	}

	// Merge writes are serialized: insights for the same person accumulate
	// on the same record instead of racing each other.
	var targetInsights []*model.Insight
	for _, insight := range insights {
		matched := match.Person(insight, persons)
		if matched == nil {
			logger.Debug("insight matched no known person",
				"phone_number", insight.PhoneNumber,
				"contact_name", insight.ContactName,
			)
			continue
		}
		if matched.ID == personID {
			targetInsights = append(targetInsights, insight)
		}

		applied, err := uc.applyInsight(ctx, matched, insight)
		if err != nil {
			logger.Error("failed to apply insight, skipping",
				"personID", matched.ID,
				"error", err.Error(),
			)
			continue
		}
		if applied != nil {
			report.Applied = append(report.Applied, applied)
		}
	}

	suggestions, err := uc.generateFromInsights(ctx, person, targetInsights, gifts, dismissed)
	if err != nil {
		return nil, err
	}
	report.Suggestions = suggestions
	report.FinishedAt = time.Now().UTC()

	logger.Info("analysis run finished",
		"run_id", report.RunID,
		"personID", personID,
		"conversations", report.Conversations,
		"insights", len(report.Insights),
		"applied", len(report.Applied),
		"suggestions", len(report.Suggestions),
	)

	return report, nil
}
