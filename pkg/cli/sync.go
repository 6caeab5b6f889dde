package cli

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/cli/config"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/logging"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// syncedMessage is the wire format devices use to upload message batches.
type syncedMessage struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
	Direction string    `json:"direction"`
	ThreadID  string    `json:"thread_id,omitempty"`
}

func cmdSync() *cli.Command {
	var inputPath string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Usage:       "Path to a JSON file with a message batch to sync",
			Required:    true,
			Sources:     cli.EnvVars("GIFTWISE_SYNC_INPUT"),
			Destination: &inputPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "sync",
		Usage: "Upload a batch of exported messages into the message store",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// #nosec G304 - path is expected to be provided by CLI argument
			input, err := os.Open(inputPath)
			if err != nil {
				return goerr.Wrap(err, "failed to open sync input", goerr.V("path", inputPath))
			}
			defer safe.Close(ctx, input)

			var raw []syncedMessage
			if err := json.NewDecoder(input).Decode(&raw); err != nil {
				return goerr.Wrap(err, "failed to parse sync input", goerr.V("path", inputPath))
			}

			batch := make([]*model.Message, 0, len(raw))
			for i, m := range raw {
				direction, err := types.ParseDirection(m.Direction)
				if err != nil {
					return goerr.Wrap(err, "invalid message in sync input", goerr.V("index", i))
				}
				if m.ID == "" {
					return goerr.New("message ID is required", goerr.V("index", i))
				}
				batch = append(batch, &model.Message{
					ID:        m.ID,
					Address:   m.Address,
					Body:      m.Body,
					SentAt:    m.SentAt,
					Direction: direction,
					ThreadID:  m.ThreadID,
				})
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			if err := repo.Message().Append(ctx, batch); err != nil {
				return goerr.Wrap(err, "failed to append message batch")
			}

			logger.Info("Synced message batch", "count", len(batch), "path", inputPath)
			return nil
		},
	}
}
