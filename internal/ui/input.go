package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/indexdeck/internal/prefs"
)

// handleKey routes a key press. Overlays and prompts come first, then the
// focused text widget, then global bindings, then the current view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Blur, m.keys.Quit) {
			m.showHelp = false
		}
		return m, nil
	}

	if m.confirmDelete != "" {
		id := m.confirmDelete
		m.confirmDelete = ""
		if key.Matches(msg, m.keys.Confirm) {
			cmd := m.deleteRecord(id)
			return m, cmd
		}
		return m, nil
	}

	switch m.focus {
	case focusIndex:
		return m.handleIndexKey(msg)
	case focusFilter:
		return m.handleFilterKey(msg)
	case focusDraft:
		return m.handleDraftKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Theme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.Records):
		return m.switchView(ViewRecords)
	case key.Matches(msg, m.keys.Settings):
		return m.switchView(ViewSettings)
	case key.Matches(msg, m.keys.Logs):
		return m.switchView(ViewLogs)
	case key.Matches(msg, m.keys.Analytics):
		return m.switchView(ViewAnalytics)
	case key.Matches(msg, m.keys.Activity):
		return m.switchView(ViewActivity)
	case key.Matches(msg, m.keys.NextView):
		return m.switchView((m.currentView + 1) % (ViewActivity + 1))
	case key.Matches(msg, m.keys.Index) && m.currentView < dataViews:
		cmd := m.focusIndexInput()
		return m, cmd
	}

	switch m.currentView {
	case ViewRecords:
		return m.handleRecordsKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	case ViewAnalytics:
		if key.Matches(msg, m.keys.Refresh, m.keys.Submit) {
			cmd := m.submit(ViewAnalytics)
			return m, cmd
		}
	case ViewActivity:
		return m.handleActivityKey(msg)
	}
	return m, nil
}

func (m Model) switchView(v View) (tea.Model, tea.Cmd) {
	m.currentView = v
	m.showDetail = false
	if v == ViewActivity {
		return m, readActivityCmd(m.logPath)
	}
	return m, nil
}

func (m *Model) focusIndexInput() tea.Cmd {
	m.focus = focusIndex
	return m.indexInputs[m.currentView].Focus()
}

func (m *Model) blur() {
	switch m.focus {
	case focusIndex:
		if m.currentView < dataViews {
			m.indexInputs[m.currentView].Blur()
		}
	case focusFilter:
		m.filterInput.Blur()
	case focusDraft:
		m.draft.Blur()
	}
	m.focus = focusNone
}

func (m Model) handleIndexKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Blur):
		m.blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.blur()
		cmd := m.submit(m.currentView)
		return m, cmd
	}
	var cmd tea.Cmd
	m.indexInputs[m.currentView], cmd = m.indexInputs[m.currentView].Update(msg)
	return m, cmd
}

// submit runs the fetch action of a data view for the index typed into its
// input.
func (m *Model) submit(v View) tea.Cmd {
	index := m.indexInputs[v].Value()
	switch v {
	case ViewRecords:
		t, ok := m.records.BeginFetch()
		if !ok {
			return nil
		}
		m.records.Index = index
		m.showDetail = false
		return tea.Batch(m.fetchRecordsCmd(index, t), m.startSpinner())
	case ViewSettings:
		t, ok := m.settings.BeginFetch()
		if !ok {
			return nil
		}
		m.settings.Index = index
		return tea.Batch(m.fetchSettingsCmd(index, t), m.startSpinner())
	case ViewLogs:
		usage, queries, ok := m.logs.BeginFetch()
		if !ok {
			return nil
		}
		m.logs.Index = index
		return tea.Batch(m.fetchUsageCmd(index, usage), m.fetchQueryLogsCmd(index, queries), m.startSpinner())
	case ViewAnalytics:
		t, ok := m.analytics.BeginFetch()
		if !ok {
			return nil
		}
		m.analytics.Index = index
		return tea.Batch(m.fetchAnalyticsCmd(index, t), m.startSpinner())
	}
	return nil
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.prefs.Theme = m.theme.Name
	name := m.theme.Name
	m.persist(func(p *prefs.Prefs) { p.Theme = name })
	m.applyTheme()
	m.syncSnapshot()
	m.syncActivity()
}

// rememberPageSize records a page size change in prefs.
func (m *Model) rememberPageSize(size int) {
	m.prefs.PageSize = size
	m.persist(func(p *prefs.Prefs) { p.PageSize = size })
}
