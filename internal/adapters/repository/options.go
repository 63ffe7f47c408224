package repository

// Option applies a configuration option to the JSONStore.
type Option func(*JSONStore)

// WithSeasonDir sets the directory holding news.json and results.json.
func WithSeasonDir(dir string) Option {
	return func(s *JSONStore) {
		if dir != "" {
			s.seasonDir = dir
		}
	}
}

// WithRankingsDir sets the directory the ranking generator writes to.
func WithRankingsDir(dir string) Option {
	return func(s *JSONStore) {
		if dir != "" {
			s.rankingsDir = dir
		}
	}
}
