// Package config defines process configuration shared by the content server
// and the ranking generator.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/okian/ekiden/internal/domain/ranking"
)

// TrackedEvent binds an event name, matched exactly against personal bests,
// to the ranking file written for it.
type TrackedEvent struct {
	Event string `koanf:"event"`
	File  string `koanf:"file"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataDir is the root of the content data; collections live under DataDir/Season.
	DataDir string `koanf:"data_dir"`

	// Season selects the data directory and the year used in topic links.
	Season string `koanf:"season"`

	// RosterFile is the member roster read by the ranking generator.
	RosterFile string `koanf:"roster_file"`

	// RankingsDir receives one JSON file per tracked event.
	RankingsDir string `koanf:"rankings_dir"`

	// PublicDir is the rendered site served at "/". Empty disables it.
	PublicDir string `koanf:"public_dir"`

	// DefaultTopicsLimit applies when /api/topics has no limit parameter.
	DefaultTopicsLimit int `koanf:"default_topics_limit"`

	// MaxTopicsLimit caps GET /api/topics?limit.
	MaxTopicsLimit int `koanf:"max_topics_limit"`

	// Strict makes the ranking generator fail on unparseable times instead
	// of ranking them last.
	Strict bool `koanf:"strict"`

	// TrackedEvents lists the events the ranking generator writes, in order.
	TrackedEvents []TrackedEvent `koanf:"tracked_events"`
}

// DefaultTrackedEvents returns the events ranked when none are configured.
func DefaultTrackedEvents() []TrackedEvent {
	return []TrackedEvent{
		{Event: "5000m", File: "5000m.json"},
		{Event: "10000m", File: "10000m.json"},
		{Event: "Half Marathon", File: "half-marathon.json"},
	}
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		DataDir:            "data",
		Season:             "2025",
		RosterFile:         filepath.Join("data", "members.json"),
		RankingsDir:        filepath.Join("data", "rankings"),
		PublicDir:          "public",
		DefaultTopicsLimit: 3,
		MaxTopicsLimit:     50,
		TrackedEvents:      DefaultTrackedEvents(),
	}
}

// SeasonDir returns the directory holding the current season's collections.
func (c *Config) SeasonDir() string {
	return filepath.Join(c.DataDir, c.Season)
}

// RankingEvents converts TrackedEvents into the ranking builder's event table.
func (c *Config) RankingEvents() []ranking.Event {
	out := make([]ranking.Event, len(c.TrackedEvents))
	for i, ev := range c.TrackedEvents {
		out[i] = ranking.Event{Name: ev.Event, File: ev.File}
	}
	return out
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.Season) == "":
		return fmt.Errorf("%w: season must not be empty", ErrInvalidConfig)
	case c.DefaultTopicsLimit < 1:
		return fmt.Errorf("%w: default_topics_limit must be positive", ErrInvalidConfig)
	case c.MaxTopicsLimit < c.DefaultTopicsLimit:
		return fmt.Errorf("%w: max_topics_limit must be >= default_topics_limit", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.TrackedEvents))
	for i, ev := range c.TrackedEvents {
		if ev.Event == "" || ev.File == "" {
			return fmt.Errorf("%w: tracked_events[%d] needs both event and file", ErrInvalidConfig, i)
		}
		if filepath.Base(ev.File) != ev.File {
			return fmt.Errorf("%w: tracked_events[%d] file %q must be a bare file name", ErrInvalidConfig, i, ev.File)
		}
		if _, dup := seen[ev.File]; dup {
			return fmt.Errorf("%w: tracked_events file %q listed twice", ErrInvalidConfig, ev.File)
		}
		seen[ev.File] = struct{}{}
	}
	return nil
}
