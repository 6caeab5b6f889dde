package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Pipeline holds the tunables of the message analysis pipeline. The defaults
// match the behavior of the shipped mobile app; all of them can be overridden
// by CLI flags or a TOML file.
type Pipeline struct {
	// LookbackDays bounds how far back message history is read.
	LookbackDays int
	// MaxConversations caps how many conversations are sent to the oracle.
	MaxConversations int
	// MaxMessagesPerConversation caps a conversation in a full scan.
	MaxMessagesPerConversation int
	// MaxMessagesPerAnalysis caps a conversation in a per-person run.
	MaxMessagesPerAnalysis int
	// ConfidenceThreshold gates which insights seed suggestions.
	ConfidenceThreshold float64
	// MaxRetries bounds oracle retry attempts after the first failure.
	MaxRetries int
	// BaseDelay is the initial backoff delay, doubled per attempt.
	BaseDelay time.Duration
	// Cooldown suppresses repeated suggestion fetches after a success.
	Cooldown time.Duration
}

// DefaultPipeline returns the default pipeline tunables.
func DefaultPipeline() *Pipeline {
	return &Pipeline{
		LookbackDays:               30,
		MaxConversations:           10,
		MaxMessagesPerConversation: 100,
		MaxMessagesPerAnalysis:     50,
		ConfidenceThreshold:        0.5,
		MaxRetries:                 2,
		BaseDelay:                  time.Second,
		Cooldown:                   10 * time.Second,
	}
}

// Validate checks the pipeline configuration for usable values.
func (p *Pipeline) Validate() error {
	if p.LookbackDays <= 0 {
		return goerr.New("lookback days must be positive", goerr.V("lookback_days", p.LookbackDays))
	}
	if p.MaxConversations <= 0 {
		return goerr.New("max conversations must be positive", goerr.V("max_conversations", p.MaxConversations))
	}
	if p.MaxMessagesPerConversation <= 0 || p.MaxMessagesPerAnalysis <= 0 {
		return goerr.New("message caps must be positive",
			goerr.V("max_messages_per_conversation", p.MaxMessagesPerConversation),
			goerr.V("max_messages_per_analysis", p.MaxMessagesPerAnalysis))
	}
	if p.ConfidenceThreshold < 0 || p.ConfidenceThreshold > 1 {
		return goerr.New("confidence threshold must be within [0,1]", goerr.V("confidence_threshold", p.ConfidenceThreshold))
	}
	if p.MaxRetries < 0 {
		return goerr.New("max retries must not be negative", goerr.V("max_retries", p.MaxRetries))
	}
	if p.BaseDelay <= 0 {
		return goerr.New("base delay must be positive", goerr.V("base_delay", p.BaseDelay))
	}
	if p.Cooldown < 0 {
		return goerr.New("cooldown must not be negative", goerr.V("cooldown", p.Cooldown))
	}
	return nil
}
