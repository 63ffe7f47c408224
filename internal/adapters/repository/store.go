// Package repository reads the JSON data files behind the site.
package repository

import (
	"context"

	"github.com/okian/ekiden/internal/domain/content"
	"github.com/okian/ekiden/internal/domain/ranking"
)

// File names of the season collections.
const (
	NewsFile    = "news.json"
	ResultsFile = "results.json"
)

// Store provides read access to the content collections and generated rankings.
type Store interface {
	// News returns news.json as stored, without ordering.
	News(ctx context.Context) (content.NewsCollection, error)
	// Results returns results.json as stored, without ordering.
	Results(ctx context.Context) (content.ResultsCollection, error)
	// Ranking returns a generated ranking file by bare file name.
	// Returns ErrNotFound if it has not been generated.
	Ranking(ctx context.Context, file string) (ranking.EventRanking, error)
}
