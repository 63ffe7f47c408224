package sitecheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/ekiden/internal/app"
	"github.com/okian/ekiden/internal/domain/content"
	"github.com/okian/ekiden/internal/domain/ranking"
	"github.com/okian/ekiden/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Default run configuration.
const (
	DefaultWorkers     = 4
	DefaultTimeout     = 10 * time.Second
	DefaultTopicsLimit = 10
)

// Run executes every check against cfg.BaseURL. A transport failure aborts
// the run; inconsistencies are collected in the report and returned as an
// error wrapping ErrInconsistent.
func Run(ctx context.Context, cfg *Config, l logger.Logger) (*Report, error) {
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.TopicsLimit < 1 {
		cfg.TopicsLimit = DefaultTopicsLimit
	}

	report := &Report{StartTime: time.Now()}
	c := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	l.Info(ctx, "starting site check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, c); err != nil {
		return report, err
	}

	// Step 2: Collections and article pages
	if err := checkNews(ctx, c, cfg, report, l); err != nil {
		return report, fmt.Errorf("news check failed: %w", err)
	}
	if err := checkResults(ctx, c, cfg, report, l); err != nil {
		return report, fmt.Errorf("results check failed: %w", err)
	}

	// Step 3: Topic listings
	if err := checkTopics(ctx, c, cfg, report); err != nil {
		return report, fmt.Errorf("topics check failed: %w", err)
	}

	// Step 4: Generated rankings
	if err := checkRankings(ctx, c, report, l); err != nil {
		return report, fmt.Errorf("rankings check failed: %w", err)
	}

	report.Duration = time.Since(report.StartTime)
	l.Info(ctx, "final statistics",
		logger.Int("newsArticles", report.NewsArticles),
		logger.Int("resultArticles", report.ResultArticles),
		logger.Int("articlesChecked", report.ArticlesChecked),
		logger.Int("topicsChecked", report.TopicsChecked),
		logger.Int("rankingsChecked", report.RankingsChecked),
		logger.Int("rankingsMissing", report.RankingsMissing),
		logger.Int("violations", len(report.Violations)),
		logger.Duration("duration", report.Duration))

	if !report.OK() {
		for _, v := range report.Violations {
			l.Warn(ctx, "violation", logger.String("detail", v))
		}
		return report, fmt.Errorf("%w: %d violations", ErrInconsistent, len(report.Violations))
	}
	return report, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, c *httpClient) error {
	status, _, err := c.get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

func checkNews(ctx context.Context, c *httpClient, cfg *Config, report *Report, l logger.Logger) error {
	var news content.NewsCollection
	if err := c.getJSON(ctx, "/api/news", &news); err != nil {
		return err
	}
	report.NewsArticles = len(news.Articles)
	dates := make([]string, len(news.Articles))
	for i, a := range news.Articles {
		dates[i] = a.Date
	}
	for _, v := range verifyOrder(dates) {
		report.violation("news order: %s", v)
	}
	return checkArticles(ctx, c, cfg, report, l, "/api/news/", news.Articles, content.NewsSlug)
}

func checkResults(ctx context.Context, c *httpClient, cfg *Config, report *Report, l logger.Logger) error {
	var results content.ResultsCollection
	if err := c.getJSON(ctx, "/api/results", &results); err != nil {
		return err
	}
	report.ResultArticles = len(results.Articles)
	dates := make([]string, len(results.Articles))
	for i, a := range results.Articles {
		dates[i] = a.Date
	}
	for _, v := range verifyOrder(dates) {
		report.violation("results order: %s", v)
	}
	return checkArticles(ctx, c, cfg, report, l, "/api/results/", results.Articles, content.ResultSlug)
}

// checkArticles fetches every distinct slug's page concurrently and checks
// its navigation against the collection order.
func checkArticles[T any](ctx context.Context, c *httpClient, cfg *Config, report *Report, l logger.Logger,
	prefix string, items []T, slugOf func(T) string,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		slug := slugOf(item)
		if slug == "" {
			report.violation("%s: article without slug", prefix)
			continue
		}
		if _, dup := seen[slug]; dup {
			report.violation("%s%s: duplicate slug", prefix, slug)
			continue
		}
		seen[slug] = struct{}{}

		g.Go(func() error {
			var page content.Article[T]
			if err := c.getJSON(gctx, prefix+slug, &page); err != nil {
				if errors.Is(err, ErrUnexpected) {
					report.violation("%s%s: %v", prefix, slug, err)
					return nil
				}
				return err
			}
			for _, v := range verifyNavigation(items, slug, page, slugOf) {
				report.violation("%s%s", prefix, v)
			}
			report.mu.Lock()
			report.ArticlesChecked++
			report.mu.Unlock()
			if cfg.Verbose {
				l.Debug(gctx, "article checked", logger.String("path", prefix+slug))
			}
			return nil
		})
	}
	return g.Wait()
}

func checkTopics(ctx context.Context, c *httpClient, cfg *Config, report *Report) error {
	limit := strconv.Itoa(cfg.TopicsLimit)

	var topics []content.Topic
	if err := c.getJSON(ctx, "/api/topics?limit="+limit, &topics); err != nil {
		return err
	}
	for _, v := range verifyTopics(topics, cfg.TopicsLimit, "") {
		report.violation("/api/topics: %s", v)
	}
	if want := min(cfg.TopicsLimit, report.NewsArticles+report.ResultArticles); len(topics) != want {
		report.violation("/api/topics: %d topics, want %d", len(topics), want)
	}

	var results []content.Topic
	if err := c.getJSON(ctx, "/api/topics/results?limit="+limit, &results); err != nil {
		return err
	}
	for _, v := range verifyTopics(results, cfg.TopicsLimit, content.TypeResult) {
		report.violation("/api/topics/results: %s", v)
	}

	status, _, err := c.get(ctx, "/api/topics?limit=0")
	if err != nil {
		return err
	}
	if status != http.StatusBadRequest {
		report.violation("/api/topics?limit=0: status %d, want %d", status, http.StatusBadRequest)
	}

	report.TopicsChecked = len(topics) + len(results)
	return nil
}

func checkRankings(ctx context.Context, c *httpClient, report *Report, l logger.Logger) error {
	var events []app.TrackedEvent
	if err := c.getJSON(ctx, "/api/rankings", &events); err != nil {
		return err
	}
	for _, ev := range events {
		status, body, err := c.get(ctx, "/api/rankings/"+ev.Key)
		if err != nil {
			return err
		}
		switch status {
		case http.StatusOK:
		case http.StatusNotFound:
			// Events without records are never written.
			l.Info(ctx, "ranking not generated", logger.String("event", ev.Event))
			report.RankingsMissing++
			continue
		default:
			report.violation("/api/rankings/%s: status %d", ev.Key, status)
			continue
		}

		var r ranking.EventRanking
		if err := json.Unmarshal(body, &r); err != nil {
			report.violation("/api/rankings/%s: %v", ev.Key, err)
			continue
		}
		if len(r.Records) == 0 {
			report.violation("/api/rankings/%s: ranking written without records", ev.Key)
		}
		for _, v := range verifyRanking(r, ev.Event) {
			report.violation("/api/rankings/%s: %s", ev.Key, v)
		}
		report.RankingsChecked++
	}
	return nil
}
