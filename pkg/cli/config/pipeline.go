package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// Pipeline holds CLI flags for the analysis pipeline tunables. An optional
// TOML file can override individual values; file values win over flags.
type Pipeline struct {
	configPath string

	lookbackDays               int64
	maxConversations           int64
	maxMessagesPerConversation int64
	maxMessagesPerAnalysis     int64
	confidenceThreshold        float64
	maxRetries                 int64
	baseDelay                  time.Duration
	cooldown                   time.Duration
}

// pipelineFile mirrors the TOML override file. Pointer fields distinguish
// "absent" from "set to zero".
type pipelineFile struct {
	LookbackDays               *int     `toml:"lookback_days"`
	MaxConversations           *int     `toml:"max_conversations"`
	MaxMessagesPerConversation *int     `toml:"max_messages_per_conversation"`
	MaxMessagesPerAnalysis     *int     `toml:"max_messages_per_analysis"`
	ConfidenceThreshold        *float64 `toml:"confidence_threshold"`
	MaxRetries                 *int     `toml:"max_retries"`
	BaseDelay                  *string  `toml:"base_delay"`
	Cooldown                   *string  `toml:"cooldown"`
}

// Flags returns CLI flags for pipeline configuration
func (p *Pipeline) Flags() []cli.Flag {
	defaults := domainConfig.DefaultPipeline()
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "pipeline-config",
			Usage:       "Path to a TOML file overriding pipeline tunables",
			Sources:     cli.EnvVars("GIFTWISE_PIPELINE_CONFIG"),
			Destination: &p.configPath,
		},
		&cli.Int64Flag{
			Name:        "lookback-days",
			Usage:       "How many days of message history to analyze",
			Value:       int64(defaults.LookbackDays),
			Sources:     cli.EnvVars("GIFTWISE_LOOKBACK_DAYS"),
			Destination: &p.lookbackDays,
		},
		&cli.Int64Flag{
			Name:        "max-conversations",
			Usage:       "Maximum conversations sent to the oracle",
			Value:       int64(defaults.MaxConversations),
			Sources:     cli.EnvVars("GIFTWISE_MAX_CONVERSATIONS"),
			Destination: &p.maxConversations,
		},
		&cli.Int64Flag{
			Name:        "max-messages",
			Usage:       "Maximum messages per conversation in a full scan",
			Value:       int64(defaults.MaxMessagesPerConversation),
			Sources:     cli.EnvVars("GIFTWISE_MAX_MESSAGES"),
			Destination: &p.maxMessagesPerConversation,
		},
		&cli.Int64Flag{
			Name:        "max-messages-per-analysis",
			Usage:       "Maximum messages per conversation in a per-person run",
			Value:       int64(defaults.MaxMessagesPerAnalysis),
			Sources:     cli.EnvVars("GIFTWISE_MAX_MESSAGES_PER_ANALYSIS"),
			Destination: &p.maxMessagesPerAnalysis,
		},
		&cli.FloatFlag{
			Name:        "confidence-threshold",
			Usage:       "Minimum insight confidence for suggestion generation",
			Value:       defaults.ConfidenceThreshold,
			Sources:     cli.EnvVars("GIFTWISE_CONFIDENCE_THRESHOLD"),
			Destination: &p.confidenceThreshold,
		},
		&cli.Int64Flag{
			Name:        "max-retries",
			Usage:       "Oracle retry attempts after the first failure",
			Value:       int64(defaults.MaxRetries),
			Sources:     cli.EnvVars("GIFTWISE_MAX_RETRIES"),
			Destination: &p.maxRetries,
		},
		&cli.DurationFlag{
			Name:        "base-delay",
			Usage:       "Initial retry backoff delay, doubled per attempt",
			Value:       defaults.BaseDelay,
			Sources:     cli.EnvVars("GIFTWISE_BASE_DELAY"),
			Destination: &p.baseDelay,
		},
		&cli.DurationFlag{
			Name:        "cooldown",
			Usage:       "Cooldown window for repeated suggestion fetches",
			Value:       defaults.Cooldown,
			Sources:     cli.EnvVars("GIFTWISE_COOLDOWN"),
			Destination: &p.cooldown,
		},
	}
}

// LogValue renders the effective flag values for startup logging.
func (p Pipeline) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("lookback_days", p.lookbackDays),
		slog.Int64("max_conversations", p.maxConversations),
		slog.Int64("max_messages", p.maxMessagesPerConversation),
		slog.Int64("max_messages_per_analysis", p.maxMessagesPerAnalysis),
		slog.Float64("confidence_threshold", p.confidenceThreshold),
		slog.Int64("max_retries", p.maxRetries),
		slog.Duration("base_delay", p.baseDelay),
		slog.Duration("cooldown", p.cooldown),
	)
}

// Configure resolves flags and the optional TOML file into validated
// pipeline tunables.
func (p *Pipeline) Configure() (*domainConfig.Pipeline, error) {
	cfg := &domainConfig.Pipeline{
		LookbackDays:               int(p.lookbackDays),
		MaxConversations:           int(p.maxConversations),
		MaxMessagesPerConversation: int(p.maxMessagesPerConversation),
		MaxMessagesPerAnalysis:     int(p.maxMessagesPerAnalysis),
		ConfidenceThreshold:        p.confidenceThreshold,
		MaxRetries:                 int(p.maxRetries),
		BaseDelay:                  p.baseDelay,
		Cooldown:                   p.cooldown,
	}

	if p.configPath != "" {
		if err := applyPipelineFile(cfg, p.configPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid pipeline configuration")
	}

	return cfg, nil
}

func applyPipelineFile(cfg *domainConfig.Pipeline, path string) error {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read pipeline config file", goerr.V("path", path))
	}

	var file pipelineFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return goerr.Wrap(err, "failed to parse pipeline TOML", goerr.V("path", path))
	}

	if file.LookbackDays != nil {
		cfg.LookbackDays = *file.LookbackDays
	}
	if file.MaxConversations != nil {
		cfg.MaxConversations = *file.MaxConversations
	}
	if file.MaxMessagesPerConversation != nil {
		cfg.MaxMessagesPerConversation = *file.MaxMessagesPerConversation
	}
	if file.MaxMessagesPerAnalysis != nil {
		cfg.MaxMessagesPerAnalysis = *file.MaxMessagesPerAnalysis
	}
	if file.ConfidenceThreshold != nil {
		cfg.ConfidenceThreshold = *file.ConfidenceThreshold
	}
	if file.MaxRetries != nil {
		cfg.MaxRetries = *file.MaxRetries
	}
	if file.BaseDelay != nil {
		d, err := time.ParseDuration(*file.BaseDelay)
		if err != nil {
			return goerr.Wrap(err, "invalid base_delay in pipeline config", goerr.V("value", *file.BaseDelay))
		}
		cfg.BaseDelay = d
	}
	if file.Cooldown != nil {
		d, err := time.ParseDuration(*file.Cooldown)
		if err != nil {
			return goerr.Wrap(err, "invalid cooldown in pipeline config", goerr.V("value", *file.Cooldown))
		}
		cfg.Cooldown = d
	}

	return nil
}
