package sitecheck

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/ekiden/internal/domain/content"
	"github.com/okian/ekiden/internal/domain/racetime"
	"github.com/okian/ekiden/internal/domain/ranking"
)

const displayDateLayout = "2006.01.02"

// verifyOrder checks that dates are most recent first. Unparseable dates
// sort as the epoch, so they must trail every parseable one.
func verifyOrder(dates []string) []string {
	var out []string
	for i := 1; i < len(dates); i++ {
		if content.DateKey(dates[i]) > content.DateKey(dates[i-1]) {
			out = append(out, fmt.Sprintf("item %d (%s) is newer than item %d (%s)", i, dates[i], i-1, dates[i-1]))
		}
	}
	return out
}

// verifyNavigation compares a served page's neighbours against the
// neighbours expected from the collection order.
func verifyNavigation[T any](items []T, slug string, page content.Article[T], slugOf func(T) string) []string {
	var out []string
	if got := slugOf(page.Article); got != slug {
		out = append(out, fmt.Sprintf("%s: served article %q", slug, got))
	}
	want, _ := content.Neighbours(items, slug, slugOf)
	if a, b := slugOrEmpty(want.Previous, slugOf), slugOrEmpty(page.Previous, slugOf); a != b {
		out = append(out, fmt.Sprintf("%s: previous is %q, want %q", slug, b, a))
	}
	if a, b := slugOrEmpty(want.Next, slugOf), slugOrEmpty(page.Next, slugOf); a != b {
		out = append(out, fmt.Sprintf("%s: next is %q, want %q", slug, b, a))
	}
	return out
}

func slugOrEmpty[T any](v *T, slugOf func(T) string) string {
	if v == nil {
		return ""
	}
	return slugOf(*v)
}

// verifyTopics checks a topic listing: size, link shape and date order.
// onlyType restricts the accepted topic type when non-empty.
func verifyTopics(topics []content.Topic, limit int, onlyType string) []string {
	var out []string
	if len(topics) > limit {
		out = append(out, fmt.Sprintf("%d topics returned for limit %d", len(topics), limit))
	}

	var prev time.Time
	for i, t := range topics {
		if onlyType != "" && t.Type != onlyType {
			out = append(out, fmt.Sprintf("topic %d has type %q, want %q", i, t.Type, onlyType))
		}
		collection := content.CollectionNews
		if t.Type == content.TypeResult {
			collection = content.CollectionResults
		}
		if !strings.HasPrefix(t.Link, "/topics/"+collection+"/") {
			out = append(out, fmt.Sprintf("topic %d link %q does not match type %q", i, t.Link, t.Type))
		}

		d, err := time.Parse(displayDateLayout, t.Date)
		if err != nil {
			continue
		}
		if !prev.IsZero() && d.After(prev) {
			out = append(out, fmt.Sprintf("topic %d (%s) is newer than the one before it", i, t.Date))
		}
		prev = d
	}
	return out
}

// verifyRanking checks that ranks run 1..N and times never decrease.
func verifyRanking(r ranking.EventRanking, event string) []string {
	var out []string
	if r.Event != event {
		out = append(out, fmt.Sprintf("ranking for %q names event %q", event, r.Event))
	}
	for i, rec := range r.Records {
		if rec.Rank != i+1 {
			out = append(out, fmt.Sprintf("%s: record %d has rank %d", event, i, rec.Rank))
		}
		if i > 0 && racetime.ParseDisplay(rec.Time) < racetime.ParseDisplay(r.Records[i-1].Time) {
			out = append(out, fmt.Sprintf("%s: %s (%s) is faster than rank %d", event, rec.FullName, rec.Time, i))
		}
	}
	return out
}
