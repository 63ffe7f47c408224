package content

import (
	"cmp"
	"slices"
	"time"
)

// Accepted date layouts, tried in order.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
}

// ParseDate parses a content date. ok is false when no layout matches.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateKey returns the Unix milliseconds of s, or 0 when s cannot be parsed,
// which places it with the oldest items.
func DateKey(s string) int64 {
	t, ok := ParseDate(s)
	if !ok {
		return 0
	}
	return t.UnixMilli()
}

func byDateDesc(a, b string) int {
	return cmp.Compare(DateKey(b), DateKey(a))
}

// SortNews orders news most recent first. Equal dates keep file order.
func SortNews(items []NewsArticle) {
	slices.SortStableFunc(items, func(a, b NewsArticle) int { return byDateDesc(a.Date, b.Date) })
}

// SortResults orders results most recent first. Equal dates keep file order.
func SortResults(items []ResultArticle) {
	slices.SortStableFunc(items, func(a, b ResultArticle) int { return byDateDesc(a.Date, b.Date) })
}

// FindNews returns the first news article with slug, or nil.
func FindNews(items []NewsArticle, slug string) *NewsArticle {
	i := slices.IndexFunc(items, func(a NewsArticle) bool { return a.Slug == slug })
	if i < 0 {
		return nil
	}
	a := items[i]
	return &a
}

// FindResult returns the first result article with slug, or nil.
func FindResult(items []ResultArticle, slug string) *ResultArticle {
	i := slices.IndexFunc(items, func(a ResultArticle) bool { return a.Slug == slug })
	if i < 0 {
		return nil
	}
	a := items[i]
	return &a
}

// Neighbours returns the items on either side of the first item with slug.
// found is false when no item matches; both neighbours are nil at the ends.
func Neighbours[T any](items []T, slug string, slugOf func(T) string) (nav Navigation[T], found bool) {
	i := slices.IndexFunc(items, func(it T) bool { return slugOf(it) == slug })
	if i < 0 {
		return nav, false
	}
	if i > 0 {
		prev := items[i-1]
		nav.Previous = &prev
	}
	if i+1 < len(items) {
		next := items[i+1]
		nav.Next = &next
	}
	return nav, true
}

// NewsSlug and ResultSlug adapt the article types to Neighbours.
func NewsSlug(a NewsArticle) string     { return a.Slug }
func ResultSlug(a ResultArticle) string { return a.Slug }

// DuplicateSlugs returns slugs that occur more than once, in first-seen order.
func DuplicateSlugs[T any](items []T, slugOf func(T) string) []string {
	seen := make(map[string]int, len(items))
	var dups []string
	for _, it := range items {
		s := slugOf(it)
		seen[s]++
		if seen[s] == 2 {
			dups = append(dups, s)
		}
	}
	return dups
}
