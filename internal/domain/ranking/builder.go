package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"

	"github.com/okian/ekiden/pkg/logger"
	"github.com/okian/ekiden/pkg/metrics"
)

// File permission constants.
const (
	outputDirPermission  = 0o755
	outputFilePermission = 0o644
)

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithOutputDir sets the directory ranking files are written to.
func WithOutputDir(dir string) Option {
	return func(b *Builder) {
		if dir != "" {
			b.outputDir = dir
		}
	}
}

// WithEvents replaces the tracked events table.
func WithEvents(events []Event) Option {
	return func(b *Builder) {
		if len(events) > 0 {
			b.events = slices.Clone(events)
		}
	}
}

// WithStrict makes Build fail before writing anything when a tracked event
// has an unparseable time.
func WithStrict(strict bool) Option {
	return func(b *Builder) {
		b.strict = strict
	}
}

// WithLogger sets a custom logger for the builder.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// Builder writes one ranking file per tracked event.
type Builder struct {
	outputDir string
	events    []Event
	strict    bool
	logger    logger.Logger
}

// EventResult describes one written ranking file.
type EventResult struct {
	Event   string
	Path    string
	Records int
}

// Summary reports what a Build did.
type Summary struct {
	RunID     string
	Written   []EventResult
	Skipped   []string
	Anomalies []Anomaly
}

// NewBuilder creates a Builder with the default events and output directory.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		outputDir: filepath.Join("data", "rankings"),
		events:    DefaultEvents(),
		logger:    logger.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Events returns a copy of the tracked events table.
func (b *Builder) Events() []Event {
	return slices.Clone(b.events)
}

// Build ranks every tracked event and writes the non-empty ones. Events with
// no records are skipped and logged, not treated as failures.
func (b *Builder) Build(ctx context.Context, roster *Roster) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	log := b.logger.With(logger.String("run_id", summary.RunID))

	if roster == nil {
		return summary, fmt.Errorf("%w: nil roster", ErrMalformedInput)
	}

	summary.Anomalies = Validate(roster, b.events...)
	metrics.RecordRankingAnomalies(len(summary.Anomalies))
	for _, a := range summary.Anomalies {
		log.Warn(ctx, "unparseable time ranked last",
			logger.String("member", a.FullName),
			logger.String("event", a.Event),
			logger.String("time", a.Time))
	}
	if b.strict && len(summary.Anomalies) > 0 {
		errs := make([]error, len(summary.Anomalies))
		for i, a := range summary.Anomalies {
			errs[i] = a
		}
		return summary, errors.Join(errs...)
	}

	if err := os.MkdirAll(b.outputDir, outputDirPermission); err != nil {
		return summary, fmt.Errorf("%w: create %s: %w", ErrWrite, b.outputDir, err)
	}

	for _, ev := range b.events {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("build cancelled: %w", err)
		}

		records := ExtractEventRecords(roster.Members, ev.Name)
		if len(records) == 0 {
			log.Info(ctx, "no records, skipping event", logger.String("event", ev.Name))
			metrics.RecordRankingSkipped(ev.Name)
			summary.Skipped = append(summary.Skipped, ev.Name)
			continue
		}

		path := filepath.Join(b.outputDir, ev.File)
		if err := writeRanking(path, EventRanking{Event: ev.Name, Records: records}); err != nil {
			return summary, err
		}
		metrics.RecordRankingWritten(ev.Name, len(records))
		log.Info(ctx, "ranking written",
			logger.String("event", ev.Name),
			logger.String("path", path),
			logger.Int("records", len(records)))
		summary.Written = append(summary.Written, EventResult{Event: ev.Name, Path: path, Records: len(records)})
	}

	return summary, nil
}

// writeRanking writes through a temp file so readers never see a partial file.
func writeRanking(path string, r EventRanking) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %w", ErrWrite, r.Event, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := tmp.Chmod(outputFilePermission); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWrite, path, err)
	}
	return nil
}
