package oracle

import (
	"context"
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
)

// Client implements Service on top of a gollem LLM client. Each request runs
// in a fresh JSON-schema session so responses are machine-parseable.
type Client struct {
	llm gollem.LLMClient
}

var _ Service = (*Client)(nil)

// New creates a Client backed by the given LLM client.
func New(llm gollem.LLMClient) *Client {
	return &Client{llm: llm}
}

var analyzeSchema = &gollem.Parameter{
	Title:       "ConversationInsights",
	Description: "Gift-relevant insights extracted from message conversations",
	Type:        gollem.TypeObject,
	Properties: map[string]*gollem.Parameter{
		"insights": {
			Type:     gollem.TypeArray,
			Required: true,
			Items: &gollem.Parameter{
				Type: gollem.TypeObject,
				Properties: map[string]*gollem.Parameter{
					"phone_number": {
						Type:        gollem.TypeString,
						Description: "Phone number copied verbatim from the conversation header",
						Required:    true,
					},
					"contact_name": {
						Type:        gollem.TypeString,
						Description: "Name the contact is addressed by, empty if unknown",
					},
					"confidence": {
						Type:        gollem.TypeNumber,
						Description: "Reliability estimate between 0.0 and 1.0",
						Required:    true,
					},
					"extracted_interests": {
						Type:  gollem.TypeArray,
						Items: &gollem.Parameter{Type: gollem.TypeString},
					},
					"mentioned_items": {
						Type:  gollem.TypeArray,
						Items: &gollem.Parameter{Type: gollem.TypeString},
					},
					"avoid_items": {
						Type:  gollem.TypeArray,
						Items: &gollem.Parameter{Type: gollem.TypeString},
					},
					"special_dates": {
						Type:  gollem.TypeArray,
						Items: &gollem.Parameter{Type: gollem.TypeString},
					},
					"notes": {
						Type: gollem.TypeString,
					},
				},
			},
		},
	},
}

var suggestSchema = &gollem.Parameter{
	Title:       "GiftSuggestions",
	Description: "Concrete gift suggestions for one person",
	Type:        gollem.TypeObject,
	Properties: map[string]*gollem.Parameter{
		"suggestions": {
			Type:     gollem.TypeArray,
			Required: true,
			Items: &gollem.Parameter{
				Type: gollem.TypeObject,
				Properties: map[string]*gollem.Parameter{
					"title": {
						Type:        gollem.TypeString,
						Description: "Short name of the suggested gift",
						Required:    true,
					},
					"description": {
						Type:        gollem.TypeString,
						Description: "One sentence on why this fits the person",
					},
					"url": {
						Type:        gollem.TypeString,
						Description: "Stable product or search page URL, if known",
					},
					"price": {
						Type:        gollem.TypeNumber,
						Description: "Estimated price, 0 when unknown",
					},
				},
			},
		},
	},
}

type analyzeResponse struct {
	Insights []*model.Insight `json:"insights"`
}

type suggestResponse struct {
	Suggestions []*model.Suggestion `json:"suggestions"`
}

// Analyze extracts insights from the given conversations.
func (c *Client) Analyze(ctx context.Context, input *AnalyzeInput) ([]*model.Insight, error) {
	prompt, err := buildAnalyzePrompt(input)
	if err != nil {
		return nil, err
	}

	var parsed analyzeResponse
	if err := c.generate(ctx, analyzeSystemPrompt, analyzeSchema, prompt, &parsed); err != nil {
		return nil, err
	}

	for _, insight := range parsed.Insights {
		insight.Confidence = clampConfidence(insight.Confidence)
	}
	return parsed.Insights, nil
}

// Suggest produces gift suggestions for the target person in the input.
func (c *Client) Suggest(ctx context.Context, input *SuggestInput) ([]*model.Suggestion, error) {
	prompt, err := buildSuggestPrompt(input)
	if err != nil {
		return nil, err
	}

	var parsed suggestResponse
	if err := c.generate(ctx, suggestSystemPrompt, suggestSchema, prompt, &parsed); err != nil {
		return nil, err
	}

	for _, s := range parsed.Suggestions {
		s.PersonID = input.TargetPersonID
	}
	return parsed.Suggestions, nil
}

func (c *Client) generate(ctx context.Context, systemPrompt string, schema *gollem.Parameter, prompt string, out any) error {
	session, err := c.llm.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(schema),
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create oracle session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return goerr.Wrap(err, "failed to generate oracle response")
	}
	if len(resp.Texts) == 0 {
		return goerr.Wrap(ErrFailure, "oracle returned empty response")
	}

	if err := json.Unmarshal([]byte(resp.Texts[0]), out); err != nil {
		return goerr.Wrap(err, "failed to parse oracle response JSON",
			goerr.V("response", resp.Texts[0]),
		)
	}
	return nil
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
