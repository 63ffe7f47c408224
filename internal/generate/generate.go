// Package generate drives a ranking build from configuration and command-line
// overrides.
package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/okian/ekiden/internal/config"
	"github.com/okian/ekiden/internal/domain/ranking"
	"github.com/okian/ekiden/pkg/logger"
)

// Options are the command-line overrides. Unset options keep the
// configured value.
type Options struct {
	Config   string `long:"config" env:"EKIDEN_CONFIG" description:"YAML configuration file"`
	Roster   string `long:"roster" description:"Member roster JSON (overrides roster_file)"`
	OutDir   string `long:"out-dir" description:"Directory receiving ranking files (overrides rankings_dir)"`
	Strict   bool   `long:"strict" description:"Fail on unparseable times instead of ranking them last"`
	LogLevel string `long:"log-level" description:"debug, info, warn or error (overrides log_level)"`
}

// ParseArgs parses args into Options. It returns (nil, nil) when help was
// requested; go-flags has already printed it.
func ParseArgs(args []string) (*Options, error) {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "generate-rankings"

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return &opts, nil
}

// Resolve loads the configuration named by opts and applies the overrides.
func Resolve(ctx context.Context, opts *Options) (*config.Config, error) {
	cfg, err := config.LoadFile(ctx, opts.Config)
	if err != nil {
		return nil, err
	}
	if opts.Roster != "" {
		cfg.RosterFile = opts.Roster
	}
	if opts.OutDir != "" {
		cfg.RankingsDir = opts.OutDir
	}
	if opts.Strict {
		cfg.Strict = true
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	return cfg, nil
}

// Run reads the roster named by cfg and writes one ranking per tracked event.
func Run(ctx context.Context, cfg *config.Config, l logger.Logger) (ranking.Summary, error) {
	roster, err := ranking.LoadRoster(cfg.RosterFile)
	if err != nil {
		return ranking.Summary{}, err
	}
	l.Info(ctx, "roster loaded",
		logger.String("path", cfg.RosterFile),
		logger.Int("members", len(roster.Members)))

	builder := ranking.NewBuilder(
		ranking.WithOutputDir(cfg.RankingsDir),
		ranking.WithEvents(cfg.RankingEvents()),
		ranking.WithStrict(cfg.Strict),
		ranking.WithLogger(l),
	)
	summary, err := builder.Build(ctx, roster)
	if err != nil {
		return summary, err
	}

	l.Info(ctx, "rankings generated",
		logger.String("run_id", summary.RunID),
		logger.String("out_dir", cfg.RankingsDir),
		logger.Int("written", len(summary.Written)),
		logger.Int("skipped", len(summary.Skipped)),
		logger.Int("anomalies", len(summary.Anomalies)))
	return summary, nil
}
