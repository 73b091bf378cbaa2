package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/five82/indexdeck/internal/app"
)

// Version is set via ldflags during build
var Version = "dev"

// Globals are the flags shared by every command.
type Globals struct {
	Config        string        `help:"Path to config.toml (default ~/.config/indexdeck/config.toml)." placeholder:"PATH"`
	Prefs         string        `help:"Path to prefs.toml (default ~/.config/indexdeck/prefs.toml)." placeholder:"PATH"`
	MetricsListen string        `help:"Serve Prometheus metrics on this address, e.g. 127.0.0.1:9464." placeholder:"ADDR" env:"INDEXDECK_METRICS_LISTEN"`
	Output        string        `short:"o" help:"Output format for data commands." enum:"table,json,yaml" default:"table"`
	Timeout       time.Duration `help:"Timeout for each provider action." default:"30s"`
}

func (g *Globals) options() app.Options {
	return app.Options{
		ConfigPath:    g.Config,
		PrefsPath:     g.Prefs,
		MetricsListen: g.MetricsListen,
		Timeout:       g.Timeout,
	}
}

// CLI is the command tree.
type CLI struct {
	Globals

	TUI       TUICmd       `cmd:"" name:"tui" help:"Open the interactive console" default:"1"`
	Records   RecordsCmd   `cmd:"" help:"List or delete index records"`
	Settings  SettingsCmd  `cmd:"" help:"Show or replace index settings"`
	Usage     UsageCmd     `cmd:"" help:"Show daily usage counters for an index"`
	Logs      LogsCmd      `cmd:"" help:"Show the provider's recent query log for an index"`
	Analytics AnalyticsCmd `cmd:"" help:"Show search analytics for an index"`
	Version   VersionCmd   `cmd:"" help:"Show version information"`
}

// TUICmd runs the Bubble Tea console.
type TUICmd struct{}

func (c *TUICmd) Run(ctx context.Context, g *Globals) error {
	return app.Run(ctx, g.options())
}

type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	fmt.Printf("indexdeck %s\n", Version)
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("indexdeck"),
		kong.Description("Operator console for Algolia indices"),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&cli.Globals),
	)
	if err := kctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "indexdeck: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
