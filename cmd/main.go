package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/ekiden/internal/adapters/http/api"
	"github.com/okian/ekiden/internal/adapters/http/site"
	"github.com/okian/ekiden/internal/adapters/http/swagger"
	"github.com/okian/ekiden/internal/adapters/repository"
	app "github.com/okian/ekiden/internal/app"
	"github.com/okian/ekiden/internal/config"
	"github.com/okian/ekiden/pkg/logger"
	"github.com/okian/ekiden/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	registerRuntimeCollectors()

	mux := newMux(ctx, cfg, loggerInstance)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("season", cfg.Season),
			logger.String("data_dir", cfg.SeasonDir()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-errCh:
		loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
		os.Exit(1)
	}
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// newMux builds the content service from cfg and registers every route.
func newMux(ctx context.Context, cfg *config.Config, l logger.Logger) *http.ServeMux {
	store := repository.NewJSONStore(
		repository.WithSeasonDir(cfg.SeasonDir()),
		repository.WithRankingsDir(cfg.RankingsDir),
	)
	svc := app.New(
		app.WithStore(store),
		app.WithSeason(cfg.Season),
		app.WithEvents(cfg.RankingEvents()),
		app.WithLogger(l.Named("content")),
	)

	mux := http.NewServeMux()

	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc,
		api.WithDefaultLimit(cfg.DefaultTopicsLimit),
		api.WithMaxLimit(cfg.MaxTopicsLimit),
		api.WithLogger(l.Named("api")),
	)
	apiServer.Register(ctx, mux)

	if cfg.PublicDir != "" {
		if err := site.Register(ctx, mux, cfg.PublicDir); err != nil {
			l.Warn(ctx, "static site not served", logger.String("public_dir", cfg.PublicDir), logger.Error(err))
		}
	}
	return mux
}

// registerRuntimeCollectors exposes Go runtime and process metrics on the
// service registry. Registration errors mean they are already present.
func registerRuntimeCollectors() {
	reg := metrics.GetRegistry()
	_ = reg.Register(collectors.NewGoCollector())
	_ = reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}
