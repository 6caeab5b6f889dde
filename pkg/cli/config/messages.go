package config

import (
	"log/slog"

	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/interfaces"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/messages"
	"github.com/urfave/cli/v3"
)

// Messages holds CLI flags for the message store. The read consent flag
// mirrors the device-side permission: when it is off, the pipeline behaves
// exactly as if message history were unreadable.
type Messages struct {
	readConsent bool
}

// Flags returns CLI flags for message store configuration
func (m *Messages) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "sms-read-consent",
			Usage:       "Whether the synced message history may be read for analysis",
			Value:       true,
			Sources:     cli.EnvVars("GIFTWISE_SMS_READ_CONSENT"),
			Destination: &m.readConsent,
		},
	}
}

// LogValue renders the effective flag values for startup logging.
func (m Messages) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("sms_read_consent", m.readConsent),
	)
}

// Configure builds the message store service on top of the repository's
// synced message collection.
func (m *Messages) Configure(repo interfaces.Repository) *messages.Service {
	return messages.New(messages.NewRepositorySource(repo.Message(), m.readConsent))
}
