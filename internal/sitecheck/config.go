// Package sitecheck crawls a running content server and verifies that what
// it serves is consistent: collection order, article navigation, topic
// listings and generated rankings.
package sitecheck

import (
	"fmt"
	"sync"
	"time"
)

// Config holds configuration for a check run.
type Config struct {
	BaseURL     string        // Base URL of the service
	Workers     int           // Concurrent article fetches
	Timeout     time.Duration // HTTP request timeout
	TopicsLimit int           // limit passed to the topic listings
	Verbose     bool          // Log every fetched article
}

// Report holds run statistics and every inconsistency found.
type Report struct {
	NewsArticles    int
	ResultArticles  int
	ArticlesChecked int
	TopicsChecked   int
	RankingsChecked int
	RankingsMissing int
	Violations      []string
	StartTime       time.Time
	Duration        time.Duration

	mu sync.Mutex
}

// OK reports whether the run found no violations.
func (r *Report) OK() bool { return len(r.Violations) == 0 }

func (r *Report) violation(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Violations = append(r.Violations, fmt.Sprintf(format, args...))
}
