package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/cli/config"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/oracle"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/usecase"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdAnalyze() *cli.Command {
	var personID int64
	var repoCfg config.Repository
	var geminiCfg config.Gemini
	var pipelineCfg config.Pipeline
	var messagesCfg config.Messages

	flags := []cli.Flag{
		&cli.Int64Flag{
			Name:        "person",
			Usage:       "ID of the person to analyze messages for",
			Required:    true,
			Sources:     cli.EnvVars("GIFTWISE_PERSON_ID"),
			Destination: &personID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, pipelineCfg.Flags()...)
	flags = append(flags, messagesCfg.Flags()...)

	return &cli.Command{
		Name:    "analyze",
		Aliases: []string{"a"},
		Usage:   "Analyze recent messages and update gift preferences for a person",
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

			report, err := uc.AnalyzeMessages(ctx, types.PersonID(personID))
			if err != nil {
				return err
			}

			printReport(report.RunID, report.Conversations, len(report.Insights))

			if len(report.Applied) > 0 {
				color.New(color.Bold).Println("Updated preferences:")
				for _, applied := range report.Applied {
					fmt.Printf("  %s %s: %s (confidence %.2f)\n",
						color.GreenString("+"),
						applied.PersonName,
						strings.Join(applied.NewInterests, ", "),
						applied.Confidence,
					)
				}
			}

			if len(report.Suggestions) > 0 {
				color.New(color.Bold).Println("Suggestions:")
				for _, s := range report.Suggestions {
					printSuggestion(s.Title, s.Description, s.URL, s.Price)
				}
			} else {
				fmt.Println("No new suggestions.")
			}

			return nil
		},
	}
}

func printReport(runID any, conversations, insights int) {
	fmt.Printf("Run %s: %d conversations, %d insights\n",
		color.CyanString("%v", runID), conversations, insights)
}

func printRetryState(state usecase.RetryState) {
	if state.Phase != usecase.RetryPending {
		return
	}
	fmt.Printf("%s attempt %d failed, retrying in %s\n",
		color.YellowString("retry:"), state.Attempt+1, state.NextDelay)
}

func printSuggestion(title, description, url string, price float64) {
	fmt.Printf("  %s %s", color.GreenString("*"), color.New(color.Bold).Sprint(title))
	if price > 0 {
		fmt.Printf(" (~%.2f)", price)
	}
	fmt.Println()
	if description != "" {
		fmt.Printf("    %s\n", description)
	}
	if url != "" {
		fmt.Printf("    %s\n", color.BlueString(url))
	}
}
