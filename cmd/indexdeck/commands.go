package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/five82/indexdeck/internal/algolia"
	"github.com/five82/indexdeck/internal/app"
	"github.com/five82/indexdeck/internal/console"
	"github.com/five82/indexdeck/internal/listing"
	"github.com/five82/indexdeck/internal/state"
)

var (
	stdout io.Writer = os.Stdout
	stdin  io.Reader = os.Stdin
)

// session is one wired runtime for a single CLI command.
type session struct {
	ctx  context.Context
	g    *Globals
	rt   *app.Runtime
	out  printer
	stop func()
}

func openSession(ctx context.Context, g *Globals) (*session, error) {
	rt, err := app.Setup(g.options())
	if err != nil {
		return nil, err
	}
	return &session{
		ctx:  ctx,
		g:    g,
		rt:   rt,
		out:  printer{w: stdout, format: g.Output},
		stop: rt.StartMetrics(ctx, g.MetricsListen),
	}, nil
}

func (s *session) Close() {
	s.stop()
	s.rt.Close()
}

func (s *session) action() (context.Context, context.CancelFunc) {
	if s.g.Timeout <= 0 {
		return context.WithCancel(s.ctx)
	}
	return context.WithTimeout(s.ctx, s.g.Timeout)
}

// operatorError turns a console error into the message the TUI would show.
// Remote failures keep the underlying cause.
func operatorError(op state.Op, err error) error {
	notice := state.Describe(op, err)
	if notice.Kind != state.KindRemote {
		return errors.New(notice.Text)
	}
	if algolia.ServerMessage(err) != "" {
		return errors.New(notice.Text)
	}
	return fmt.Errorf("%s (%w)", notice.Text, err)
}

// RecordsCmd groups the record subcommands.
type RecordsCmd struct {
	List   RecordsListCmd   `cmd:"" help:"List records of an index" default:"withargs"`
	Delete RecordsDeleteCmd `cmd:"" help:"Delete one record"`
}

type RecordsListCmd struct {
	Index  string `arg:"" help:"Index name."`
	Filter string `short:"f" help:"Only show records whose name, ID, type or category contains this text."`
	Page   int    `help:"Page to show." default:"1"`
	Size   int    `help:"Records per page (10, 20 or 50)." default:"10"`
	All    bool   `short:"a" help:"Show every matching record instead of one page."`
}

func (c *RecordsListCmd) Validate() error {
	for _, size := range listing.PageSizes {
		if c.Size == size {
			return nil
		}
	}
	return fmt.Errorf("--size must be one of %v", listing.PageSizes)
}

func (c *RecordsListCmd) Run(ctx context.Context, g *Globals) error {
	s, err := openSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.Close()

	actx, cancel := s.action()
	defer cancel()
	records, err := s.rt.Console.Records(actx, c.Index)
	if err != nil {
		return operatorError(state.OpFetchRecords, err)
	}

	visible := listing.FilterRecords(records, c.Filter)
	if !c.All {
		pager := listing.NewPager(c.Size).SetPage(c.Page, len(visible))
		visible = listing.Slice(visible, pager)
	}
	if len(visible) == 0 && s.out.format == formatTable {
		_, err := fmt.Fprintln(stdout, state.MsgNoRecordsFound)
		return err
	}
	return s.out.records(visible)
}

type RecordsDeleteCmd struct {
	Index    string `arg:"" help:"Index name."`
	ObjectID string `arg:"" name:"object-id" help:"objectID of the record to delete."`
	Yes      bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *RecordsDeleteCmd) Run(ctx context.Context, g *Globals) error {
	if !c.Yes {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete %s from %s?", c.ObjectID, c.Index)).
					Affirmative("Delete").
					Negative("Cancel").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			_, err := fmt.Fprintln(stdout, "Cancelled.")
			return err
		}
	}

	s, err := openSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.Close()

	actx, cancel := s.action()
	defer cancel()
	remaining, err := s.rt.Console.DeleteRecord(actx, c.Index, c.ObjectID)
	if err != nil {
		var refetch *console.RefetchError
		if errors.As(err, &refetch) {
			return operatorError(state.OpFetchRecords, refetch.Err)
		}
		return operatorError(state.OpDeleteRecord, err)
	}
	_, err = fmt.Fprintf(stdout, "Deleted %s. %d records remain in %s.\n", c.ObjectID, len(remaining), c.Index)
	return err
}

// SettingsCmd groups the settings subcommands.
type SettingsCmd struct {
	Get SettingsGetCmd `cmd:"" help:"Print the current settings as JSON"`
	Put SettingsPutCmd `cmd:"" help:"Replace the settings with a JSON document"`
}

type SettingsGetCmd struct {
	Index string `arg:"" help:"Index name."`
}

func (c *SettingsGetCmd) Run(ctx context.Context, g *Globals) error {
	s, err := openSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.Close()

	actx, cancel := s.action()
	defer cancel()
	settings, err := s.rt.Console.Settings(actx, c.Index)
	if err != nil {
		return operatorError(state.OpFetchSettings, err)
	}
	return s.out.settings(settings)
}

type SettingsPutCmd struct {
	Index string `arg:"" help:"Index name."`
	File  string `arg:"" help:"JSON settings file, or - to read standard input."`
}

func (c *SettingsPutCmd) Run(ctx context.Context, g *Globals) error {
	text, err := readDocument(c.File)
	if err != nil {
		return err
	}

	s, err := openSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.Close()

	actx, cancel := s.action()
	defer cancel()
	ack, err := s.rt.Console.UpdateSettings(actx, c.Index, text)
	if err != nil {
		return operatorError(state.OpUpdateSettings, err)
	}
	_, err = fmt.Fprintf(stdout, "%s (task %d)\n", state.MsgConfigUpdated, ack.TaskID)
	return err
}

func readDocument(path string) (string, error) {
	if strings.TrimSpace(path) == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read settings file: %w", err)
	}
	return string(data), nil
}

type UsageCmd struct {
	Index string `arg:"" help:"Index name."`
}

func (c *UsageCmd) Run(ctx context.Context, g *Globals) error {
	s, err := openSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.Close()

	actx, cancel := s.action()
	defer cancel()
	rows, err := s.rt.Console.Usage(actx, c.Index)
	if err != nil {
		return operatorError(state.OpFetchUsage, err)
	}
	return s.out.usage(rows)
}

type LogsCmd struct {
	Index string `arg:"" help:"Index name."`
}

func (c *LogsCmd) Run(ctx context.Context, g *Globals) error {
	s, err := openSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.Close()

	actx, cancel := s.action()
	defer cancel()
	logs, err := s.rt.Console.QueryLogs(actx, c.Index)
	if err != nil {
		return operatorError(state.OpFetchQueryLogs, err)
	}
	return s.out.queryLogs(logs)
}

type AnalyticsCmd struct {
	Index string `arg:"" help:"Index name."`
}

func (c *AnalyticsCmd) Run(ctx context.Context, g *Globals) error {
	s, err := openSession(ctx, g)
	if err != nil {
		return err
	}
	defer s.Close()

	actx, cancel := s.action()
	defer cancel()
	result, err := s.rt.Console.Analytics(actx, c.Index)
	if err != nil {
		return operatorError(state.OpFetchAnalytics, err)
	}
	return s.out.analytics(result)
}
