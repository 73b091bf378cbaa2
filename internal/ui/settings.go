package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/indexdeck/internal/console"
)

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.submit(ViewSettings)
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		m.focus = focusDraft
		cmd := m.draft.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.CopyDraft):
		if current, ok := m.settings.Snapshot(); ok {
			if text, err := console.FormatSettings(current); err == nil {
				m.draft.SetValue(text)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.SaveDraft):
		cmd := m.updateSettings()
		return m, cmd
	}
	var cmd tea.Cmd
	m.snapshotView, cmd = m.snapshotView.Update(msg)
	return m, cmd
}

func (m Model) handleDraftKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Blur):
		m.blur()
		return m, nil
	case key.Matches(msg, m.keys.SaveDraft):
		m.blur()
		cmd := m.updateSettings()
		return m, cmd
	}
	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(msg)
	return m, cmd
}

// updateSettings submits the draft as the index's full settings document.
func (m *Model) updateSettings() tea.Cmd {
	index := m.indexInputs[ViewSettings].Value()
	text := m.draft.Value()
	t, ok := m.settings.BeginUpdate()
	if !ok {
		return nil
	}
	m.settings.Index = index
	m.settings.Draft = text
	return tea.Batch(m.updateSettingsCmd(index, text, t), m.startSpinner())
}

func (m *Model) syncSnapshot() {
	current, ok := m.settings.Snapshot()
	if !ok {
		m.snapshotView.SetContent(m.theme.Styles().FaintText.Render("No settings fetched."))
		return
	}
	text, err := console.FormatSettings(current)
	if err != nil {
		text = err.Error()
	}
	m.snapshotView.SetContent(text)
}

func (m Model) renderSettings() string {
	styles := m.theme.Styles()

	var top strings.Builder
	top.WriteString(styles.MutedText.Render("Index "))
	top.WriteString(m.renderInput(m.indexInputs[ViewSettings].View(), m.focus == focusIndex))
	if ack, ok := m.settings.LastUpdate(); ok {
		top.WriteString("  ")
		top.WriteString(styles.FaintText.Render(fmt.Sprintf("last task %d at %s", ack.TaskID, ack.UpdatedAt)))
	}

	border := lipgloss.Color(m.theme.Border)
	draftBorder := border
	if m.focus == focusDraft {
		draftBorder = lipgloss.Color(m.theme.BorderFocus)
	}
	panel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())

	left := panel.BorderForeground(border).Render(
		styles.AccentText.Bold(true).Render("Current") + "\n" + m.snapshotView.View())
	right := panel.BorderForeground(draftBorder).Render(
		styles.AccentText.Bold(true).Render("New settings") + "\n" + m.draft.View())

	return top.String() + "\n" + lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}
