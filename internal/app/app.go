package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/indexdeck/internal/algolia"
	"github.com/five82/indexdeck/internal/config"
	"github.com/five82/indexdeck/internal/console"
	"github.com/five82/indexdeck/internal/logging"
	"github.com/five82/indexdeck/internal/metrics"
	"github.com/five82/indexdeck/internal/prefs"
	"github.com/five82/indexdeck/internal/ui"
)

// Options configure indexdeck.
type Options struct {
	ConfigPath    string
	PrefsPath     string // empty uses default ~/.config/indexdeck/prefs.toml
	MetricsListen string // empty disables the metrics endpoint
	LogToStderr   bool   // overrides the configured log file
	Timeout       time.Duration
}

// Runtime holds the wired dependencies shared by the TUI and the CLI.
type Runtime struct {
	Config  config.Config
	Log     *zap.Logger
	Metrics *metrics.Recorder
	Console *console.Service

	closeLog func()
}

// Setup loads configuration and builds the logger, metrics recorder, API
// client and console service.
func Setup(opts Options) (*Runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   cfg.LogFile,
		Stderr: opts.LogToStderr || cfg.LogToStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	recorder := metrics.New()
	client, err := algolia.NewClient(cfg, algolia.WithRecorder(recorder))
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("init algolia client: %w", err)
	}

	logger.Info("indexdeck started",
		zap.String("app_id", cfg.AppID),
		zap.String("search_host", cfg.SearchHost),
		zap.String("start_date", cfg.StartDate),
	)

	return &Runtime{
		Config:   cfg,
		Log:      logger,
		Metrics:  recorder,
		Console:  console.New(client, logger.Named("console")),
		closeLog: closeLog,
	}, nil
}

// Close flushes the logger.
func (r *Runtime) Close() {
	if r.closeLog != nil {
		r.closeLog()
	}
}

// StartMetrics serves the metrics endpoint in the background until the
// returned stop func is called. It is a no-op without an address.
func (r *Runtime) StartMetrics(ctx context.Context, addr string) (stop func()) {
	if addr == "" {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := r.Metrics.Serve(ctx, addr, r.Log); err != nil {
			r.Log.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// Run boots the TUI until the operator quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := Setup(opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		rt.Log.Warn("preferences unavailable, using defaults", zap.Error(err))
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return rt.Metrics.Serve(ctx, opts.MetricsListen, rt.Log)
	})
	g.Go(func() error {
		defer cancel()
		logPath := rt.Config.LogFile
		if opts.LogToStderr || rt.Config.LogToStderr() {
			logPath = ""
		}
		return ui.Run(ui.Options{
			Context:   ctx,
			Console:   rt.Console,
			AppID:     rt.Config.AppID,
			LogPath:   logPath,
			PrefsPath: prefsPath,
			Prefs:     userPrefs,
			Timeout:   opts.Timeout,
			Log:       rt.Log.Named("ui"),
		})
	})

	err = g.Wait()
	rt.Log.Info("indexdeck stopped", zap.Error(err))
	return err
}
