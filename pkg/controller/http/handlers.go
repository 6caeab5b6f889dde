package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/model"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/domain/types"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/usecase"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/async"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/errutil"
	"github.com/threekidsinatrenchcoat/giftwise/pkg/utils/safe"
)

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(ctx, w, data)
}

// handleUseCaseError maps pipeline sentinel errors onto HTTP status codes.
func handleUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrPersonNotFound):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrPermissionDenied):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusForbidden)
	case errors.Is(err, usecase.ErrNoConversations):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidInput):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}

func analyzeHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid person ID"), http.StatusBadRequest)
			return
		}

		report, err := uc.AnalyzeMessages(r.Context(), types.PersonID(id))
		if err != nil {
			handleUseCaseError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, report)
	}
}

func suggestionsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Suggestions []*model.Suggestion `json:"suggestions"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		suggestions, err := uc.FetchSuggestions(r.Context())
		if err != nil {
			handleUseCaseError(w, r, err)
			return
		}
		if suggestions == nil {
			suggestions = []*model.Suggestion{}
		}
		writeJSON(r.Context(), w, http.StatusOK, response{Suggestions: suggestions})
	}
}

func budgetSuggestionsHandler(uc *usecase.UseCases) http.HandlerFunc {
	type response struct {
		Suggestions []*model.Suggestion `json:"suggestions"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		personID, err := strconv.ParseInt(q.Get("person"), 10, 64)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid person parameter"), http.StatusBadRequest)
			return
		}

		parsePrice := func(name string) (float64, error) {
			raw := q.Get(name)
			if raw == "" {
				return 0, nil
			}
			return strconv.ParseFloat(raw, 64)
		}

		minPrice, err := parsePrice("min")
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid min parameter"), http.StatusBadRequest)
			return
		}
		maxPrice, err := parsePrice("max")
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid max parameter"), http.StatusBadRequest)
			return
		}

		suggestions, err := uc.FetchSuggestionsByBudget(r.Context(), types.PersonID(personID), minPrice, maxPrice)
		if err != nil {
			handleUseCaseError(w, r, err)
			return
		}
		if suggestions == nil {
			suggestions = []*model.Suggestion{}
		}
		writeJSON(r.Context(), w, http.StatusOK, response{Suggestions: suggestions})
	}
}

// syncedMessage is the wire format devices use to upload message batches.
type syncedMessage struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
	Direction string    `json:"direction"`
	ThreadID  string    `json:"thread_id,omitempty"`
}

func syncMessagesHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw []syncedMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid sync request body"), http.StatusBadRequest)
			return
		}

		batch := make([]*model.Message, 0, len(raw))
		for _, m := range raw {
			batch = append(batch, &model.Message{
				ID:        m.ID,
				Address:   m.Address,
				Body:      m.Body,
				SentAt:    m.SentAt,
				Direction: types.Direction(m.Direction),
				ThreadID:  m.ThreadID,
			})
		}

		if err := uc.IngestMessages(r.Context(), batch); err != nil {
			handleUseCaseError(w, r, err)
			return
		}

		// Warm the suggestion cache so the next fetch reflects the new
		// history without blocking the sync response.
		async.Dispatch(r.Context(), func(ctx context.Context) error {
			_, err := uc.FetchSuggestions(ctx)
			return err
		})

		writeJSON(r.Context(), w, http.StatusOK, map[string]int{"synced": len(batch)})
	}
}

func dismissHandler(uc *usecase.UseCases) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var suggestion model.Suggestion
		if err := json.NewDecoder(r.Body).Decode(&suggestion); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid dismiss request body"), http.StatusBadRequest)
			return
		}

		if err := uc.Dismiss(r.Context(), &suggestion); err != nil {
			handleUseCaseError(w, r, err)
			return
		}

		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "dismissed"})
	}
}
