package content

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	displayDateLayout = "2006.01.02"
	maxExcerptRunes   = 120
)

// KeyedTopic is a Topic with the date key used to order it. The key never
// leaves this package; Latest returns bare Topics.
type KeyedTopic struct {
	key   int64
	topic Topic
}

// Topic returns the projected topic.
func (k KeyedTopic) Topic() Topic { return k.topic }

// Link builds the route of an article: /topics/<collection>/<year>/<slug>.
func Link(collection, year, slug string) string {
	return fmt.Sprintf("/topics/%s/%s/%s", collection, year, slug)
}

// DisplayDate renders a content date as YYYY.MM.DD, or returns it unchanged
// when it cannot be parsed.
func DisplayDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(displayDateLayout)
}

// NewsTopic projects a news article. season is the year used in its link.
func NewsTopic(a NewsArticle, season string) KeyedTopic {
	return KeyedTopic{
		key: DateKey(a.Date),
		topic: Topic{
			Type:    TypeNews,
			Date:    DisplayDate(a.Date),
			Title:   a.Title,
			Link:    Link(CollectionNews, season, a.Slug),
			Excerpt: Excerpt(a.Excerpt),
			Image:   a.Image,
		},
	}
}

// ResultTopic projects a result article. season is the year used in its link.
func ResultTopic(a ResultArticle, season string) KeyedTopic {
	return KeyedTopic{
		key: DateKey(a.Date),
		topic: Topic{
			Type:    TypeResult,
			Date:    DisplayDate(a.Date),
			Title:   a.Title,
			Link:    Link(CollectionResults, season, a.Slug),
			Excerpt: Excerpt(a.Summary),
			Image:   a.Image,
		},
	}
}

// NewsTopics projects every news article, keeping order.
func NewsTopics(items []NewsArticle, season string) []KeyedTopic {
	out := make([]KeyedTopic, len(items))
	for i, a := range items {
		out[i] = NewsTopic(a, season)
	}
	return out
}

// ResultTopics projects every result article, keeping order.
func ResultTopics(items []ResultArticle, season string) []KeyedTopic {
	out := make([]KeyedTopic, len(items))
	for i, a := range items {
		out[i] = ResultTopic(a, season)
	}
	return out
}

// Latest concatenates sources in argument order, sorts the result most
// recent first and returns at most limit topics. The sort is stable, so on
// equal dates items keep their source order and earlier sources win.
func Latest(limit int, sources ...[]KeyedTopic) []Topic {
	if limit <= 0 {
		return []Topic{}
	}

	var merged []KeyedTopic
	for _, src := range sources {
		merged = append(merged, src...)
	}
	slices.SortStableFunc(merged, func(a, b KeyedTopic) int {
		return cmp.Compare(b.key, a.key)
	})

	n := min(limit, len(merged))
	out := make([]Topic, n)
	for i := 0; i < n; i++ {
		out[i] = merged[i].topic
	}
	return out
}

// Excerpt turns an HTML or plain-text summary into a single line of plain
// text of at most maxExcerptRunes runes.
func Excerpt(s string) string {
	text := PlainText(s)
	if utf8.RuneCountInString(text) <= maxExcerptRunes {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxExcerptRunes])) + "…"
}

// PlainText strips markup and collapses whitespace.
func PlainText(s string) string {
	if strings.ContainsRune(s, '<') {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
