// Package app provides the content service behind the site: it loads the
// season's news and results, orders and merges them, and serves generated
// rankings.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/ekiden/internal/adapters/repository"
	"github.com/okian/ekiden/internal/domain/content"
	"github.com/okian/ekiden/internal/domain/ranking"
	"github.com/okian/ekiden/pkg/logger"
	"github.com/okian/ekiden/pkg/metrics"
)

// Service implements the read operations used by page rendering and the HTTP API.
type Service struct {
	store  repository.Store
	season string
	events []ranking.Event
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the data store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSeason sets the year used in topic links.
func WithSeason(season string) Option {
	return func(s *Service) {
		if season != "" {
			s.season = season
		}
	}
}

// WithEvents sets the tracked events whose rankings can be served.
func WithEvents(events []ranking.Event) Option {
	return func(s *Service) {
		if len(events) > 0 {
			s.events = events
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:  repository.NewJSONStore(),
		season: "2025",
		events: ranking.DefaultEvents(),
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Season returns the configured season.
func (s *Service) Season() string { return s.season }

// NewsMetadata loads the news collection, most recent first. A missing or
// malformed file is logged and yields an empty collection.
func (s *Service) NewsMetadata(ctx context.Context) content.NewsCollection {
	start := time.Now()
	c, err := s.store.News(ctx)
	if err != nil {
		s.loadFailed(ctx, content.CollectionNews, err)
		return content.NewsCollection{Articles: []content.NewsArticle{}}
	}
	if c.Articles == nil {
		c.Articles = []content.NewsArticle{}
	}
	content.SortNews(c.Articles)
	s.loaded(ctx, content.CollectionNews, len(c.Articles), start,
		content.DuplicateSlugs(c.Articles, content.NewsSlug))
	return c
}

// ResultsMetadata loads the results collection, most recent first. A
// missing or malformed file is logged and yields an empty collection.
func (s *Service) ResultsMetadata(ctx context.Context) content.ResultsCollection {
	start := time.Now()
	c, err := s.store.Results(ctx)
	if err != nil {
		s.loadFailed(ctx, content.CollectionResults, err)
		return content.ResultsCollection{Articles: []content.ResultArticle{}}
	}
	if c.Articles == nil {
		c.Articles = []content.ResultArticle{}
	}
	content.SortResults(c.Articles)
	s.loaded(ctx, content.CollectionResults, len(c.Articles), start,
		content.DuplicateSlugs(c.Articles, content.ResultSlug))
	return c
}

// NewsArticleBySlug returns the news article with slug, or nil.
func (s *Service) NewsArticleBySlug(ctx context.Context, slug string) *content.NewsArticle {
	return content.FindNews(s.NewsMetadata(ctx).Articles, slug)
}

// ResultArticleBySlug returns the result article with slug, or nil.
func (s *Service) ResultArticleBySlug(ctx context.Context, slug string) *content.ResultArticle {
	return content.FindResult(s.ResultsMetadata(ctx).Articles, slug)
}

// NewsNavigation returns the news articles published just before and after
// slug. Both are nil when slug is unknown.
func (s *Service) NewsNavigation(ctx context.Context, slug string) content.Navigation[content.NewsArticle] {
	nav, _ := content.Neighbours(s.NewsMetadata(ctx).Articles, slug, content.NewsSlug)
	return nav
}

// ResultNavigation is NewsNavigation for results.
func (s *Service) ResultNavigation(ctx context.Context, slug string) content.Navigation[content.ResultArticle] {
	nav, _ := content.Neighbours(s.ResultsMetadata(ctx).Articles, slug, content.ResultSlug)
	return nav
}

// NewsArticle returns an article with its navigation from a single load, or
// nil when slug is unknown.
func (s *Service) NewsArticle(ctx context.Context, slug string) *content.Article[content.NewsArticle] {
	items := s.NewsMetadata(ctx).Articles
	nav, found := content.Neighbours(items, slug, content.NewsSlug)
	if !found {
		return nil
	}
	return &content.Article[content.NewsArticle]{Article: *content.FindNews(items, slug), Navigation: nav}
}

// ResultArticle is NewsArticle for results.
func (s *Service) ResultArticle(ctx context.Context, slug string) *content.Article[content.ResultArticle] {
	items := s.ResultsMetadata(ctx).Articles
	nav, found := content.Neighbours(items, slug, content.ResultSlug)
	if !found {
		return nil
	}
	return &content.Article[content.ResultArticle]{Article: *content.FindResult(items, slug), Navigation: nav}
}

// LatestResults returns at most limit results as topics, most recent first.
func (s *Service) LatestResults(ctx context.Context, limit int) []content.Topic {
	results := s.ResultsMetadata(ctx).Articles
	return content.Latest(limit, content.ResultTopics(results, s.season))
}

// LatestTopics returns at most limit news and results merged, most recent
// first. On equal dates news comes before results.
func (s *Service) LatestTopics(ctx context.Context, limit int) []content.Topic {
	news := s.NewsMetadata(ctx).Articles
	results := s.ResultsMetadata(ctx).Articles
	return content.Latest(limit,
		content.NewsTopics(news, s.season),
		content.ResultTopics(results, s.season),
	)
}

// TrackedEvent describes a ranking that can be requested by key.
type TrackedEvent struct {
	Event string `json:"event"`
	Key   string `json:"key"`
}

// TrackedEvents lists the rankings in output order.
func (s *Service) TrackedEvents() []TrackedEvent {
	out := make([]TrackedEvent, len(s.events))
	for i, ev := range s.events {
		out[i] = TrackedEvent{Event: ev.Name, Key: eventKey(ev)}
	}
	return out
}

// EventRanking returns the generated ranking for key, the ranking file name
// without its extension. Unlike the collections, failures are returned:
// ErrUnknownEvent for an untracked key and repository.ErrNotFound when the
// ranking has not been generated.
func (s *Service) EventRanking(ctx context.Context, key string) (ranking.EventRanking, error) {
	for _, ev := range s.events {
		if eventKey(ev) != key {
			continue
		}
		r, err := s.store.Ranking(ctx, ev.File)
		if err != nil {
			return ranking.EventRanking{}, fmt.Errorf("ranking %s: %w", ev.Name, err)
		}
		return r, nil
	}
	return ranking.EventRanking{}, fmt.Errorf("%w: %q", ErrUnknownEvent, key)
}

// Stats reports collection sizes for the current season.
func (s *Service) Stats(ctx context.Context) map[string]any {
	return map[string]any{
		"season":        s.season,
		"news":          len(s.NewsMetadata(ctx).Articles),
		"results":       len(s.ResultsMetadata(ctx).Articles),
		"trackedEvents": len(s.events),
	}
}

func eventKey(ev ranking.Event) string {
	return strings.TrimSuffix(ev.File, ".json")
}

func (s *Service) loaded(ctx context.Context, collection string, n int, start time.Time, dups []string) {
	metrics.RecordContentLoad(collection, float64(time.Since(start).Microseconds())/1000)
	metrics.UpdateContentItems(collection, n)
	for _, slug := range dups {
		s.logger.Warn(ctx, "duplicate slug; only the most recent is reachable",
			logger.String("collection", collection),
			logger.String("slug", slug))
	}
}

func (s *Service) loadFailed(ctx context.Context, collection string, err error) {
	reason := "read"
	switch {
	case errors.Is(err, repository.ErrNotFound):
		reason = "not_found"
	case errors.Is(err, repository.ErrDecode):
		reason = "decode"
	}
	metrics.RecordContentLoadFailure(collection, reason)
	metrics.UpdateContentItems(collection, 0)
	s.logger.Error(ctx, "collection unavailable, serving empty list",
		logger.String("collection", collection),
		logger.String("reason", reason),
		logger.Error(err))
}
