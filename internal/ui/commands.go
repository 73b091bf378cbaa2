package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/indexdeck/internal/algolia"
	"github.com/five82/indexdeck/internal/logtail"
	"github.com/five82/indexdeck/internal/state"
)

const activityLines = 500

// Messages

type recordsMsg struct {
	ticket  state.Ticket
	index   string
	records []algolia.Record
	err     error
}

type deleteMsg struct {
	ticket  state.Ticket
	records []algolia.Record
	err     error
}

type settingsMsg struct {
	ticket   state.Ticket
	index    string
	settings algolia.Settings
	err      error
}

type updateMsg struct {
	ticket state.Ticket
	ack    algolia.SettingsUpdate
	err    error
}

type usageMsg struct {
	ticket state.Ticket
	index  string
	rows   []algolia.UsageRow
	err    error
}

type queryLogsMsg struct {
	ticket state.Ticket
	logs   []algolia.QueryLog
	err    error
}

type analyticsMsg struct {
	ticket state.Ticket
	index  string
	result algolia.Analytics
	err    error
}

type activityMsg struct {
	lines []string
	err   error
}

// Commands

func (m Model) actionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, m.timeout)
}

func (m Model) fetchRecordsCmd(index string, t state.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.actionContext()
		defer cancel()
		records, err := m.console.Records(ctx, index)
		return recordsMsg{ticket: t, index: index, records: records, err: err}
	}
}

func (m Model) deleteRecordCmd(index, objectID string, t state.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.actionContext()
		defer cancel()
		records, err := m.console.DeleteRecord(ctx, index, objectID)
		return deleteMsg{ticket: t, records: records, err: err}
	}
}

func (m Model) fetchSettingsCmd(index string, t state.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.actionContext()
		defer cancel()
		settings, err := m.console.Settings(ctx, index)
		return settingsMsg{ticket: t, index: index, settings: settings, err: err}
	}
}

func (m Model) updateSettingsCmd(index, text string, t state.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.actionContext()
		defer cancel()
		ack, err := m.console.UpdateSettings(ctx, index, text)
		return updateMsg{ticket: t, ack: ack, err: err}
	}
}

func (m Model) fetchUsageCmd(index string, t state.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.actionContext()
		defer cancel()
		rows, err := m.console.Usage(ctx, index)
		return usageMsg{ticket: t, index: index, rows: rows, err: err}
	}
}

func (m Model) fetchQueryLogsCmd(index string, t state.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.actionContext()
		defer cancel()
		logs, err := m.console.QueryLogs(ctx, index)
		return queryLogsMsg{ticket: t, logs: logs, err: err}
	}
}

func (m Model) fetchAnalyticsCmd(index string, t state.Ticket) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.actionContext()
		defer cancel()
		result, err := m.console.Analytics(ctx, index)
		return analyticsMsg{ticket: t, index: index, result: result, err: err}
	}
}

func readActivityCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, activityLines)
		return activityMsg{lines: lines, err: err}
	}
}
