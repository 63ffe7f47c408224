package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/ekiden/internal/domain/content"
)

// TopicsHandler serves the latest-activity listings.
type TopicsHandler struct {
	deps         Dependencies
	defaultLimit int
	maxLimit     int
}

// NewTopicsHandler creates a new topics handler.
func NewTopicsHandler(deps Dependencies, defaultLimit, maxLimit int) *TopicsHandler {
	return &TopicsHandler{
		deps:         deps,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

// HandleLatestTopics handles GET /api/topics?limit=N requests.
func (h *TopicsHandler) HandleLatestTopics(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.deps.LatestTopics)
}

// HandleLatestResults handles GET /api/topics/results?limit=N requests.
func (h *TopicsHandler) HandleLatestResults(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, h.deps.LatestResults)
}

func (h *TopicsHandler) serve(w http.ResponseWriter, r *http.Request, latest func(context.Context, int) []content.Topic) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	n := h.defaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request",
				fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
		if v > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded",
				fmt.Errorf("%w: limit must not exceed %d", ErrLimitExceeded, h.maxLimit))
			return
		}
		n = v
	}
	writeJSON(w, http.StatusOK, latest(r.Context(), n))
}
