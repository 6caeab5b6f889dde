package oracle

import (
	"bytes"
	_ "embed"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
)

//go:embed prompt/analyze_system.md
var analyzeSystemPrompt string

//go:embed prompt/suggest_system.md
var suggestSystemPrompt string

var analyzeUserPrompt = template.Must(template.New("analyze_user").Parse(`# Time range

{{ .RangeStart }} to {{ .RangeEnd }}

# Known people
{{ if .Persons }}{{ range .Persons }}
- {{ .Name }}{{ if .Relationships }} ({{ range $i, $r := .Relationships }}{{ if $i }}, {{ end }}{{ $r }}{{ end }}){{ end }}{{ if .Preferences }} likes: {{ range $i, $p := .Preferences }}{{ if $i }}, {{ end }}{{ $p }}{{ end }}{{ end }}{{ end }}
{{ else }}
(none recorded)
{{ end }}
# Conversations
{{ range .Conversations }}
## {{ .PhoneNumber }}{{ if .ContactName }} ({{ .ContactName }}){{ end }}

{{ range .Messages }}[{{ .SentAt }}] {{ .Speaker }}: {{ .Body }}
{{ end }}{{ end }}`))

var suggestUserPrompt = template.Must(template.New("suggest_user").Parse(`# Person

{{ .Person.Name }}{{ if .Person.Relationships }} ({{ range $i, $r := .Person.Relationships }}{{ if $i }}, {{ end }}{{ $r }}{{ end }}){{ end }}
{{ if .Person.Notes }}Notes: {{ .Person.Notes }}
{{ end }}{{ if .Person.Preferences }}Recorded preferences: {{ range $i, $p := .Person.Preferences }}{{ if $i }}, {{ end }}{{ $p }}{{ end }}
{{ end }}{{ if .Person.DefaultBudget }}Default budget: {{ .Person.DefaultBudget }}
{{ end }}
# Budget
{{ if .HasBudget }}
Between {{ .BudgetMin }} and {{ .BudgetMax }}.
{{ else }}
No explicit range.
{{ end }}
# Recent interests from conversations
{{ if .InterestHints }}{{ range .InterestHints }}
- {{ . }}{{ end }}
{{ else }}
(none)
{{ end }}
# Owned or avoided items
{{ if .OwnedHints }}{{ range .OwnedHints }}
- {{ . }}{{ end }}
{{ else }}
(none)
{{ end }}
# Gift history
{{ if .Gifts }}{{ range .Gifts }}
- {{ .Title }}{{ if .Purchased }} (purchased){{ end }}{{ end }}
{{ else }}
(none)
{{ end }}`))

type promptMessage struct {
	SentAt  string
	Speaker string
	Body    string
}

type promptConversation struct {
	PhoneNumber string
	ContactName string
	Messages    []promptMessage
}

type analyzePromptData struct {
	RangeStart    string
	RangeEnd      string
	Persons       []*model.PersonHint
	Conversations []promptConversation
}

type suggestPromptData struct {
	Person        *model.PersonHint
	HasBudget     bool
	BudgetMin     float64
	BudgetMax     float64
	InterestHints []string
	OwnedHints    []string
	Gifts         []*model.Gift
}

func buildAnalyzePrompt(input *AnalyzeInput) (string, error) {
	conversations := input.Conversations
	if input.MaxConversations > 0 && len(conversations) > input.MaxConversations {
		conversations = conversations[:input.MaxConversations]
	}

	data := analyzePromptData{
		RangeStart: input.RangeStart.UTC().Format(time.RFC3339),
		RangeEnd:   input.RangeEnd.UTC().Format(time.RFC3339),
		Persons:    input.PersonHints,
	}

	for _, conv := range conversations {
		pc := promptConversation{
			PhoneNumber: conv.PhoneNumber,
			ContactName: conv.ContactName,
		}
		// Messages are held newest-first; render oldest-first so the
		// conversation reads top to bottom.
		for i := len(conv.Messages) - 1; i >= 0; i-- {
			m := conv.Messages[i]
			speaker := "them"
			if m.Direction.IsSent() {
				speaker = "me"
			}
			pc.Messages = append(pc.Messages, promptMessage{
				SentAt:  m.SentAt.UTC().Format(time.RFC3339),
				Speaker: speaker,
				Body:    m.Body,
			})
		}
		data.Conversations = append(data.Conversations, pc)
	}

	var buf bytes.Buffer
	if err := analyzeUserPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render analyze prompt")
	}
	return buf.String(), nil
}

func buildSuggestPrompt(input *SuggestInput) (string, error) {
	var target *model.PersonHint
	for _, p := range input.Persons {
		if p.ID == input.TargetPersonID {
			target = p
			break
		}
	}
	if target == nil {
		return "", goerr.New("target person not in suggest input",
			goerr.V("personID", input.TargetPersonID),
		)
	}

	data := suggestPromptData{
		Person:        target,
		HasBudget:     input.BudgetMax > 0,
		BudgetMin:     input.BudgetMin,
		BudgetMax:     input.BudgetMax,
		InterestHints: input.InterestHints,
		OwnedHints:    input.OwnedHints,
		Gifts:         input.ExistingGifts,
	}

	var buf bytes.Buffer
	if err := suggestUserPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to render suggest prompt")
	}
	return buf.String(), nil
}
