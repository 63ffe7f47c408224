package api

import (
	"net/http"
	"strings"
)

// ContentHandler serves the news and results collections.
type ContentHandler struct {
	deps Dependencies
}

// NewContentHandler creates a new content handler.
func NewContentHandler(deps Dependencies) *ContentHandler {
	return &ContentHandler{deps: deps}
}

// HandleListNews handles GET /api/news requests.
func (h *ContentHandler) HandleListNews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.NewsMetadata(r.Context()))
}

// HandleListResults handles GET /api/results requests.
func (h *ContentHandler) HandleListResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ResultsMetadata(r.Context()))
}

// HandleGetNews handles GET /api/news/{slug} requests.
func (h *ContentHandler) HandleGetNews(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathParam(w, r, "/api/news/")
	if !ok {
		return
	}
	a := h.deps.NewsArticle(r.Context(), slug)
	if a == nil {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleGetResult handles GET /api/results/{slug} requests.
func (h *ContentHandler) HandleGetResult(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathParam(w, r, "/api/results/")
	if !ok {
		return
	}
	a := h.deps.ResultArticle(r.Context(), slug)
	if a == nil {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// pathParam extracts the single segment after prefix. It writes the error
// response itself and reports false when the request cannot be served.
func pathParam(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return "", false
	}
	p := strings.TrimPrefix(r.URL.Path, prefix)
	if p == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return "", false
	}
	if strings.Contains(p, "/") {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
		return "", false
	}
	return p, true
}
