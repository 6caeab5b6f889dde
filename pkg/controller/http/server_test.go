package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	controller "github.com/threekidsinatrenchcoat/giftwise/pkg/controller/http"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model/config"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/repository/memory"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/messages"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/service/oracle"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/usecase"
)

type serverEnv struct {
	repo   *memory.Memory
	oracle *oracle.Mock
	server *controller.Server
}

func newServerEnv(t *testing.T, granted bool) *serverEnv {
	t.Helper()

	repo := memory.New()
	mock := &oracle.Mock{}

	pipeline := config.DefaultPipeline()
	pipeline.BaseDelay = time.Millisecond
	pipeline.Cooldown = 0

	msgSvc := messages.New(messages.NewRepositorySource(repo.Message(), granted))
	uc := usecase.New(repo, msgSvc, mock, usecase.WithPipeline(pipeline))

	return &serverEnv{
		repo:   repo,
		oracle: mock,
		server: controller.New(uc),
	}
}

func (e *serverEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		gt.NoError(t, err).Required()
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.server.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	env := newServerEnv(t, true)
	rec := env.do(t, http.MethodGet, "/health", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, rec.Body.String()).Contains(`"ok"`)
}

func TestAnalyzeEndpoint(t *testing.T) {
	env := newServerEnv(t, true)

	person, err := env.repo.Person().Create(context.Background(), &model.Person{Name: "Robert Smith"})
	gt.NoError(t, err).Required()

	gt.NoError(t, env.repo.Message().Append(context.Background(), []*model.Message{
		{
			ID:        "m1",
			Address:   "5551234567",
			Body:      "thinking about a new chess set",
			SentAt:    time.Now().UTC().Add(-time.Hour),
			Direction: types.DirectionReceived,
		},
	})).Required()

	env.oracle.AnalyzeFn = func(ctx context.Context, input *oracle.AnalyzeInput) ([]*model.Insight, error) {
		return []*model.Insight{
			{
				PhoneNumber:        "5551234567",
				ContactName:        "Robert Smith",
				Confidence:         0.9,
				ExtractedInterests: []string{"chess"},
			},
		}, nil
	}
	env.oracle.SuggestFn = func(ctx context.Context, input *oracle.SuggestInput) ([]*model.Suggestion, error) {
		return []*model.Suggestion{{Title: "Tournament chess set", PersonID: input.TargetPersonID}}, nil
	}

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/persons/%d/analyze", person.ID), nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var report model.AnalysisReport
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report)).Required()
	gt.Value(t, report.PersonID).Equal(person.ID)
	gt.Array(t, report.Suggestions).Length(1)
	gt.String(t, string(report.RunID)).NotEqual("")

	t.Run("unknown person yields 404", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/persons/999/analyze", nil)
		gt.Value(t, rec.Code).Equal(http.StatusNotFound)
	})

	t.Run("invalid ID yields 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/persons/abc/analyze", nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestAnalyzeEndpoint_PermissionDenied(t *testing.T) {
	env := newServerEnv(t, false)

	person, err := env.repo.Person().Create(context.Background(), &model.Person{Name: "Robert Smith"})
	gt.NoError(t, err).Required()

	rec := env.do(t, http.MethodPost, fmt.Sprintf("/api/persons/%d/analyze", person.ID), nil)
	gt.Value(t, rec.Code).Equal(http.StatusForbidden)
	gt.String(t, rec.Body.String()).Contains("SMS permission required")
}

func TestSuggestionsEndpoint(t *testing.T) {
	env := newServerEnv(t, true)

	_, err := env.repo.Person().Create(context.Background(), &model.Person{Name: "Robert Smith"})
	gt.NoError(t, err).Required()

	env.oracle.SuggestFn = func(ctx context.Context, input *oracle.SuggestInput) ([]*model.Suggestion, error) {
		return []*model.Suggestion{{Title: "Chess clock"}}, nil
	}

	rec := env.do(t, http.MethodGet, "/api/suggestions", nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var resp struct {
		Suggestions []*model.Suggestion `json:"suggestions"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp)).Required()
	gt.Array(t, resp.Suggestions).Length(1)
}

func TestBudgetSuggestionsEndpoint(t *testing.T) {
	env := newServerEnv(t, true)

	person, err := env.repo.Person().Create(context.Background(), &model.Person{Name: "Robert Smith"})
	gt.NoError(t, err).Required()

	env.oracle.SuggestFn = func(ctx context.Context, input *oracle.SuggestInput) ([]*model.Suggestion, error) {
		return []*model.Suggestion{{Title: "Chess clock", Price: 40}}, nil
	}

	rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/suggestions/budget?person=%d&min=25&max=100", person.ID), nil)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	calls := env.oracle.SuggestCalls()
	gt.Array(t, calls).Length(1)
	gt.Value(t, calls[0].BudgetMin).Equal(25.0)
	gt.Value(t, calls[0].BudgetMax).Equal(100.0)

	t.Run("missing person parameter yields 400", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/suggestions/budget?min=25", nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("inverted range yields 400", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, fmt.Sprintf("/api/suggestions/budget?person=%d&min=100&max=25", person.ID), nil)
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestSyncMessagesEndpoint(t *testing.T) {
	env := newServerEnv(t, true)

	batch := []map[string]any{
		{
			"id":        "m1",
			"address":   "+1 (555) 123-4567",
			"body":      "see you at the climbing gym",
			"sent_at":   time.Now().UTC().Add(-time.Hour).Format(time.RFC3339),
			"direction": "received",
		},
		{
			"id":        "m2",
			"address":   "+1 (555) 123-4567",
			"body":      "sounds good",
			"sent_at":   time.Now().UTC().Format(time.RFC3339),
			"direction": "sent",
			"thread_id": "t1",
		},
	}

	rec := env.do(t, http.MethodPost, "/api/messages/sync", batch)
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, rec.Body.String()).Contains(`"synced":2`)

	stored, err := env.repo.Message().Query(context.Background(), time.Time{})
	gt.NoError(t, err).Required()
	gt.Array(t, stored).Length(2)

	t.Run("invalid direction yields 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/messages/sync", []map[string]any{
			{"id": "m3", "address": "5551234567", "body": "hello", "direction": "bounced"},
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})

	t.Run("missing message ID yields 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/messages/sync", []map[string]any{
			{"address": "5551234567", "body": "hello", "direction": "sent"},
		})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}

func TestDismissEndpoint(t *testing.T) {
	env := newServerEnv(t, true)

	rec := env.do(t, http.MethodPost, "/api/suggestions/dismiss", &model.Suggestion{
		Title: "Chess clock",
		URL:   "https://shop.example/clock",
	})
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	keys, err := env.repo.Dismissal().ListKeys(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, keys).Length(1)
	gt.Value(t, keys[0]).Equal(types.NewSuggestionKey("Chess clock", "https://shop.example/clock"))

	t.Run("empty suggestion yields 400", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/suggestions/dismiss", &model.Suggestion{})
		gt.Value(t, rec.Code).Equal(http.StatusBadRequest)
	})
}
