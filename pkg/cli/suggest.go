package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/cli/config"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/oracle"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/usecase"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdSuggest() *cli.Command {
	var personID int64
	var minPrice, maxPrice float64
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var pipelineCfg config.Pipeline
	var messagesCfg config.Messages

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "person",
			Usage:       "Restrict suggestions to one person and enable the budget range",
			Sources:     cli.EnvVars("GIFTWISE_PERSON_ID"),
			Destination: &personID,
		},
		&cli.FloatFlag{
			Name:        "min",
			Usage:       "Minimum price for budget suggestions",
			Destination: &minPrice,
		},
		&cli.FloatFlag{
			Name:        "max",
			Usage:       "Maximum price for budget suggestions",
			Destination: &maxPrice,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, pipelineCfg.Flags()...)
	flags = append(flags, messagesCfg.Flags()...)

	return &cli.Command{
		Name:    "suggest",
		Usage:   "Fetch gift suggestions",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			pipeline, err := pipelineCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure pipeline")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			llmClient, err := geminiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure Gemini client")
			}

			uc := usecase.New(repo, messagesCfg.Configure(repo), oracle.New(llmClient),
				usecase.WithPipeline(pipeline),
				usecase.WithRetryObserver(printRetryState),
			)

			var suggestions []*model.Suggestion
			if personID != 0 {
				suggestions, err = uc.FetchSuggestionsByBudget(ctx, types.PersonID(personID), minPrice, maxPrice)
			} else {
				suggestions, err = uc.FetchSuggestions(ctx)
			}
			if err != nil {
				return err
			}

			if len(suggestions) == 0 {
				fmt.Println("No suggestions.")
				return nil
			}

			for _, s := range suggestions {
				printSuggestion(s.Title, s.Description, s.URL, s.Price)
			}

			return nil
		},
	}
}
