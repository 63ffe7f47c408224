package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/okian/ekiden/internal/sitecheck"
	"github.com/okian/ekiden/pkg/logger"
)

type options struct {
	URL         string        `long:"url" env:"EKIDEN_CHECK_URL" default:"http://localhost:9080" description:"Base URL of the content server"`
	Workers     int           `long:"workers" default:"4" description:"Concurrent article fetches"`
	Timeout     time.Duration `long:"timeout" default:"10s" description:"HTTP request timeout"`
	TopicsLimit int           `long:"topics-limit" default:"10" description:"limit passed to the topic listings"`
	Verbose     bool          `long:"verbose" short:"v" description:"Log every checked article"`
}

func main() {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if opts.Verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Named("check-site")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &sitecheck.Config{
		BaseURL:     opts.URL,
		Workers:     opts.Workers,
		Timeout:     opts.Timeout,
		TopicsLimit: opts.TopicsLimit,
		Verbose:     opts.Verbose,
	}
	if _, err := sitecheck.Run(ctx, cfg, log); err != nil {
		log.Error(ctx, "site check failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
	log.Info(ctx, "site check passed")
}
