package config

import (
	domainConfig "github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model/config"
)

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewPipelineForTest creates a Pipeline config carrying the default flag
// values, as if the app parsed an empty command line.
func NewPipelineForTest(configPath string) *Pipeline {
	defaults := domainConfig.DefaultPipeline()
	return &Pipeline{
		configPath:                 configPath,
		lookbackDays:               int64(defaults.LookbackDays),
		maxConversations:           int64(defaults.MaxConversations),
		maxMessagesPerConversation: int64(defaults.MaxMessagesPerConversation),
		maxMessagesPerAnalysis:     int64(defaults.MaxMessagesPerAnalysis),
		confidenceThreshold:        defaults.ConfidenceThreshold,
		maxRetries:                 int64(defaults.MaxRetries),
		baseDelay:                  defaults.BaseDelay,
		cooldown:                   defaults.Cooldown,
	}
}
