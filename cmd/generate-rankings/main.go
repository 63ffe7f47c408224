package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/ekiden/internal/generate"
	"github.com/okian/ekiden/pkg/logger"
)

func main() {
	opts, err := generate.ParseArgs(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if opts == nil {
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Named("generate-rankings")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := generate.Resolve(ctx, opts)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	if _, err := generate.Run(ctx, cfg, log); err != nil {
		log.Error(ctx, "ranking generation failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
