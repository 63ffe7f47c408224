// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/ekiden/internal/app"
	"github.com/okian/ekiden/internal/domain/content"
	"github.com/okian/ekiden/internal/domain/ranking"
	"github.com/okian/ekiden/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	NewsMetadata(ctx context.Context) content.NewsCollection
	ResultsMetadata(ctx context.Context) content.ResultsCollection

	// NewsArticle and ResultArticle return nil for an unknown slug.
	NewsArticle(ctx context.Context, slug string) *content.Article[content.NewsArticle]
	ResultArticle(ctx context.Context, slug string) *content.Article[content.ResultArticle]

	LatestTopics(ctx context.Context, limit int) []content.Topic
	LatestResults(ctx context.Context, limit int) []content.Topic

	TrackedEvents() []app.TrackedEvent
	EventRanking(ctx context.Context, key string) (ranking.EventRanking, error)
}

// Default limits for the topic listings.
const (
	DefaultTopicsLimit = 3
	DefaultMaxLimit    = 50
)

// Server wires HTTP routes for the content API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	contentHandler  *ContentHandler
	topicsHandler   *TopicsHandler
	rankingsHandler *RankingsHandler
	logger          logger.Logger
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	defaultLimit int
	maxLimit     int
	logger       logger.Logger
}

// WithDefaultLimit sets the topic count used when ?limit is absent.
func WithDefaultLimit(n int) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.defaultLimit = n
		}
	}
}

// WithMaxLimit sets the largest accepted ?limit.
func WithMaxLimit(n int) Option {
	return func(o *serverOptions) {
		if n > 0 {
			o.maxLimit = n
		}
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(l logger.Logger) Option {
	return func(o *serverOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := serverOptions{
		defaultLimit: DefaultTopicsLimit,
		maxLimit:     DefaultMaxLimit,
		logger:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.defaultLimit > o.maxLimit {
		o.defaultLimit = o.maxLimit
	}
	return &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		contentHandler:  NewContentHandler(deps),
		topicsHandler:   NewTopicsHandler(deps, o.defaultLimit, o.maxLimit),
		rankingsHandler: NewRankingsHandler(deps, o.logger),
		logger:          o.logger,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", s.wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.wrap(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/news", s.wrap(s.contentHandler.HandleListNews, "news"))
	mux.HandleFunc("/api/news/", s.wrap(s.contentHandler.HandleGetNews, "news_article"))
	mux.HandleFunc("/api/results", s.wrap(s.contentHandler.HandleListResults, "results"))
	mux.HandleFunc("/api/results/", s.wrap(s.contentHandler.HandleGetResult, "result_article"))
	mux.HandleFunc("/api/topics", s.wrap(s.topicsHandler.HandleLatestTopics, "topics"))
	mux.HandleFunc("/api/topics/results", s.wrap(s.topicsHandler.HandleLatestResults, "topics_results"))
	mux.HandleFunc("/api/rankings", s.wrap(s.rankingsHandler.HandleListRankings, "rankings_list"))
	mux.HandleFunc("/api/rankings/", s.wrap(s.rankingsHandler.HandleGetRanking, "rankings"))
}

func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return MetricsMiddleware(RequestIDMiddleware(h), endpoint)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
