package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap/zapcore"

	"github.com/five82/indexdeck/internal/logtail"
)

var activityLevels = []zapcore.Level{
	zapcore.DebugLevel,
	zapcore.InfoLevel,
	zapcore.WarnLevel,
	zapcore.ErrorLevel,
}

func (m Model) handleActivityKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		return m, readActivityCmd(m.logPath)
	case key.Matches(msg, m.keys.CycleLevel):
		m.activityLevel = nextLevel(m.activityLevel)
		m.syncActivity()
		return m, nil
	}
	var cmd tea.Cmd
	m.activityView, cmd = m.activityView.Update(msg)
	return m, cmd
}

func nextLevel(current zapcore.Level) zapcore.Level {
	for i, lvl := range activityLevels {
		if lvl == current {
			return activityLevels[(i+1)%len(activityLevels)]
		}
	}
	return zapcore.InfoLevel
}

func (m *Model) syncActivity() {
	styles := m.theme.Styles()
	if m.activityErr != nil {
		m.activityView.SetContent(styles.DangerText.Render("Unable to read log: " + m.activityErr.Error()))
		return
	}
	entries := logtail.Filter(logtail.ParseLines(m.activityRaw), m.activityLevel)
	if len(entries) == 0 {
		m.activityView.SetContent(styles.FaintText.Render("No activity at this level."))
		return
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, m.formatEntry(e))
	}
	m.activityView.SetContent(strings.Join(lines, "\n"))
	m.activityView.GotoBottom()
}

func (m Model) formatEntry(e logtail.Entry) string {
	styles := m.theme.Styles()
	ts := "--:--:--"
	if !e.Time.IsZero() {
		ts = e.Time.Local().Format("15:04:05")
	}

	levelStyle := styles.InfoText
	switch {
	case e.Level >= zapcore.ErrorLevel:
		levelStyle = styles.DangerText
	case e.Level == zapcore.WarnLevel:
		levelStyle = styles.WarningText
	case e.Level == zapcore.DebugLevel:
		levelStyle = styles.FaintText
	}

	line := styles.MutedText.Render(ts) + " " +
		levelStyle.Render(fmt.Sprintf("%-5s", e.Level.CapitalString())) + " " +
		styles.Text.Render(e.Message)
	if fields := e.FieldString(); fields != "" {
		line += " " + styles.FaintText.Render(truncate(fields, maxInt(m.width-len(e.Message)-18, 20)))
	}
	return line
}

func (m Model) renderActivity() string {
	styles := m.theme.Styles()
	path := m.logPath
	if path == "" {
		path = "stderr"
	}
	header := styles.MutedText.Render("Log ") + styles.Text.Render(truncateMiddle(path, 60)) +
		"  " + styles.MutedText.Render("level ") + styles.AccentText.Render(m.activityLevel.String()+"+")
	return header + "\n" + m.activityView.View()
}
