// Package content holds the news and results collections and the ordering,
// projection and navigation rules applied to them.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Collection names, also used as the link segment of topics.
const (
	CollectionNews    = "news"
	CollectionResults = "results"
)

// Topic type tags.
const (
	TypeNews   = "news"
	TypeResult = "result"
)

// ItemID is an article id. Data files use both numbers and strings.
type ItemID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ItemID(n.String())
	return nil
}

// NewsArticle is one entry of news.json.
type NewsArticle struct {
	ID       ItemID `json:"id"`
	Slug     string `json:"slug"`
	Date     string `json:"date"`
	Title    string `json:"title"`
	Category string `json:"category,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
	Image    string `json:"image,omitempty"`
	Content  string `json:"content,omitempty"`
}

// ResultArticle is one entry of results.json.
type ResultArticle struct {
	ID          ItemID `json:"id"`
	Slug        string `json:"slug"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Competition string `json:"competition,omitempty"`
	Venue       string `json:"venue,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Image       string `json:"image,omitempty"`
	Content     string `json:"content,omitempty"`
}

// NewsCollection is the news.json document.
type NewsCollection struct {
	Articles []NewsArticle `json:"articles"`
}

// ResultsCollection is the results.json document.
type ResultsCollection struct {
	Articles []ResultArticle `json:"articles"`
}

// Topic is a news or result item projected into the shape shared by the
// "latest activity" listings.
type Topic struct {
	Type    string `json:"type"`
	Date    string `json:"date"`
	Title   string `json:"title"`
	Link    string `json:"link"`
	Excerpt string `json:"excerpt,omitempty"`
	Image   string `json:"image,omitempty"`
}

// Navigation holds the neighbours of an article in collection order.
// Previous is the more recent one.
type Navigation[T any] struct {
	Previous *T `json:"previous"`
	Next     *T `json:"next"`
}

// Article pairs an article with its navigation.
type Article[T any] struct {
	Article    T `json:"article"`
	Navigation[T]
}
