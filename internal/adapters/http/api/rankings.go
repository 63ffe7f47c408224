package api

import (
	"errors"
	"net/http"

	"github.com/okian/ekiden/internal/adapters/repository"
	"github.com/okian/ekiden/internal/app"
	"github.com/okian/ekiden/pkg/logger"
)

// RankingsHandler serves generated event rankings.
type RankingsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps Dependencies, l logger.Logger) *RankingsHandler {
	return &RankingsHandler{deps: deps, logger: l}
}

// HandleListRankings handles GET /api/rankings requests with the tracked
// events and the keys their rankings are served under.
func (h *RankingsHandler) HandleListRankings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.TrackedEvents())
}

// HandleGetRanking handles GET /api/rankings/{key} requests, where key is
// the ranking file name without extension (e.g. half-marathon).
func (h *RankingsHandler) HandleGetRanking(w http.ResponseWriter, r *http.Request) {
	key, ok := pathParam(w, r, "/api/rankings/")
	if !ok {
		return
	}
	rk, err := h.deps.EventRanking(r.Context(), key)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, rk)
	case errors.Is(err, app.ErrUnknownEvent), errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	default:
		h.logger.Error(r.Context(), "ranking read failed",
			logger.String("key", key),
			logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", errors.New("ranking unavailable"))
	}
}
