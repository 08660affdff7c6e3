package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/Brian-Masheti/rentowl-sub001/internal/dtos"
	"github.com/Brian-Masheti/rentowl-sub001/internal/services"
	"github.com/Brian-Masheti/rentowl-sub001/internal/utils"
)

var actionValidate = validator.New()

type ActionController struct {
	actionService services.CaretakerActionService
	feed          services.ActionFeed
}

func NewActionController(as services.CaretakerActionService, feed services.ActionFeed) *ActionController {
	return &ActionController{actionService: as, feed: feed}
}

// ----------------------------------------------------------------
// POST /api/v1/caretaker-actions
// ----------------------------------------------------------------
func (c *ActionController) LogActionHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.LogActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return
	}
	if err := actionValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil)
		return
	}

	action, err := c.actionService.Log(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, action)
}

// ----------------------------------------------------------------
// GET /api/v1/caretaker-actions
// ----------------------------------------------------------------
func (c *ActionController) QueryActionsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := services.ParseActionFilter(queryValues(r))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}

	actions, err := c.actionService.Query(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, actions)
}

// ----------------------------------------------------------------
// GET /api/v1/caretaker-actions/export
// ----------------------------------------------------------------
// Same filter semantics as the query endpoint, streamed as CSV.
func (c *ActionController) ExportActionsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := services.ParseActionFilter(queryValues(r))
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="caretaker-actions.csv"`)
	if err := c.actionService.ExportCSV(r.Context(), filter, w); err != nil {
		// Headers are already out; all we can do is log and cut the stream.
		utils.Logger.WithError(err).Error("CSV export failed mid-stream")
	}
}

// ----------------------------------------------------------------
// GET /api/v1/caretaker-actions/feed
// ----------------------------------------------------------------
// Server-sent events. Delivery is at-least-once from the moment of
// subscription; there is no replay, so clients re-query on reconnect.
func (c *ActionController) FeedHandler(w http.ResponseWriter, r *http.Request) {
	if c.feed == nil {
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Live feed is not configured", nil)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Streaming unsupported", nil)
		return
	}

	ch, cancel := c.feed.Subscribe(r.Context())
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	enc := json.NewEncoder(w)
	for {
		select {
		case <-r.Context().Done():
			return
		case action, open := <-ch:
			if !open {
				return
			}
			if _, err := w.Write([]byte("data: ")); err != nil {
				return
			}
			if err := enc.Encode(action); err != nil {
				return
			}
			if _, err := w.Write([]byte("\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func queryValues(r *http.Request) map[string]string {
	q := r.URL.Query()
	out := make(map[string]string, len(q))
	for k := range q {
		out[k] = q.Get(k)
	}
	return out
}
