package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/indexdeck/internal/algolia"
	"github.com/five82/indexdeck/internal/console"
)

func recordColumns(width int) []table.Column {
	id := 18
	kind := 14
	name := maxInt((width-id-kind-8)/2, 16)
	cats := maxInt(width-id-kind-name-8, 12)
	return []table.Column{
		{Title: "Object ID", Width: id},
		{Title: "Name", Width: name},
		{Title: "Type", Width: kind},
		{Title: "Categories", Width: cats},
	}
}

func (m Model) handleRecordsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDetail {
		if key.Matches(msg, m.keys.Detail, m.keys.Blur) {
			m.showDetail = false
			return m, nil
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.submit(ViewRecords)
		return m, cmd
	case key.Matches(msg, m.keys.Filter):
		m.focus = focusFilter
		cmd := m.filterInput.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		if rec, ok := m.selectedRecord(); ok && rec.ObjectID != "" {
			m.confirmDelete = rec.ObjectID
		}
		return m, nil
	case key.Matches(msg, m.keys.Detail):
		if rec, ok := m.selectedRecord(); ok {
			m.openDetail(rec)
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPage):
		m.records.NextPage()
		m.syncRecordTable()
		return m, nil
	case key.Matches(msg, m.keys.PrevPage):
		m.records.PrevPage()
		m.syncRecordTable()
		return m, nil
	case key.Matches(msg, m.keys.PageSize):
		m.records.CycleSize()
		m.rememberPageSize(m.records.Pager.Size)
		m.syncRecordTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.recordTable, cmd = m.recordTable.Update(msg)
	return m, cmd
}

// handleFilterKey narrows the list on every keystroke. Enter applies the
// filter explicitly and leaves the input.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Blur):
		m.blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.blur()
		m.records.ApplyFilter()
		m.syncRecordTable()
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	if term := m.filterInput.Value(); term != m.records.Term {
		m.records.SetTerm(term)
		m.syncRecordTable()
	}
	return m, cmd
}

func (m *Model) deleteRecord(objectID string) tea.Cmd {
	index := m.records.Index
	t, ok := m.records.BeginDelete()
	if !ok {
		return nil
	}
	m.showDetail = false
	return tea.Batch(m.deleteRecordCmd(index, objectID, t), m.startSpinner())
}

func (m Model) selectedRecord() (algolia.Record, bool) {
	page := m.records.Page()
	i := m.recordTable.Cursor()
	if i < 0 || i >= len(page) {
		return algolia.Record{}, false
	}
	return page[i], true
}

func (m *Model) openDetail(rec algolia.Record) {
	body, err := console.FormatSettings(algolia.Settings(rec.Raw))
	if err != nil {
		body = err.Error()
	}
	m.detail.SetContent(body)
	m.detail.GotoTop()
	m.showDetail = true
}

func (m *Model) syncRecordTable() {
	page := m.records.Page()
	rows := make([]table.Row, 0, len(page))
	for _, rec := range page {
		rows = append(rows, table.Row{
			rec.ObjectID,
			rec.Name.Text(),
			rec.ProductType,
			strings.Join(rec.CategoryLabels(), ", "),
		})
	}
	m.recordTable.SetRows(rows)
	fitCursor(&m.recordTable)
}

// fitCursor moves the cursor back onto a row. An empty table parks its
// cursor at -1 and keeps it there when rows arrive, so it is fixed up here
// once rows exist.
func fitCursor(t *table.Model) {
	n := len(t.Rows())
	if n == 0 {
		return
	}
	if c := t.Cursor(); c < 0 || c >= n {
		t.SetCursor(min(max(c, 0), n-1))
	}
}

func (m Model) renderRecords() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("Index "))
	b.WriteString(m.renderInput(m.indexInputs[ViewRecords].View(), m.focus == focusIndex))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render("Filter "))
	b.WriteString(m.renderInput(m.filterInput.View(), m.focus == focusFilter))
	b.WriteString("  ")

	visible := len(m.records.Visible())
	p := m.records.Pager
	b.WriteString(styles.FaintText.Render(fmt.Sprintf("page %d/%d  %d of %d  size %d",
		p.Page, p.PageCount(visible), visible, len(m.records.All()), p.Size)))
	b.WriteString("\n")

	if m.showDetail {
		b.WriteString(m.detail.View())
		return b.String()
	}
	b.WriteString(m.recordTable.View())
	return b.String()
}

// renderInput underlines an input while it has focus.
func (m Model) renderInput(view string, focused bool) string {
	styles := m.theme.Styles()
	if focused {
		return styles.AccentText.Underline(true).Render(view)
	}
	return styles.Text.Render(view)
}
