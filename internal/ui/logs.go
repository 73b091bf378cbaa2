package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/indexdeck/internal/listing"
)

func usageColumns(width int) []table.Column {
	col := maxInt((width-12-10)/4, 10)
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Total records", Width: col},
		{Title: "Add ops", Width: col},
		{Title: "Delete ops", Width: col},
		{Title: "Browse ops", Width: col},
	}
}

func queryColumns(width int) []table.Column {
	url := maxInt(width-20-7-6-8-16-14, 20)
	return []table.Column{
		{Title: "Timestamp", Width: 20},
		{Title: "Method", Width: 7},
		{Title: "Code", Width: 6},
		{Title: "ms", Width: 8},
		{Title: "IP", Width: 16},
		{Title: "URL", Width: url},
	}
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		cmd := m.submit(ViewLogs)
		return m, cmd
	case key.Matches(msg, m.keys.SwapTable):
		m.logsFocus = 1 - m.logsFocus
		if m.logsFocus == 0 {
			m.usageTable.Focus()
			m.queryTable.Blur()
		} else {
			m.queryTable.Focus()
			m.usageTable.Blur()
		}
		return m, nil
	case key.Matches(msg, m.keys.NextPage, m.keys.PrevPage, m.keys.PageSize):
		m.moveLogsPager(msg)
		m.syncLogTables()
		return m, nil
	}

	var cmd tea.Cmd
	if m.logsFocus == 0 {
		m.usageTable, cmd = m.usageTable.Update(msg)
	} else {
		m.queryTable, cmd = m.queryTable.Update(msg)
	}
	return m, cmd
}

func (m *Model) moveLogsPager(msg tea.KeyMsg) {
	p, n := &m.logs.UsagePager, len(m.logs.UsageRows())
	if m.logsFocus == 1 {
		p, n = &m.logs.QueryPager, len(m.logs.QueryLogs())
	}
	switch {
	case key.Matches(msg, m.keys.NextPage):
		*p = p.Next(n)
	case key.Matches(msg, m.keys.PrevPage):
		*p = p.Prev(n)
	case key.Matches(msg, m.keys.PageSize):
		*p = p.CycleSize()
		m.rememberPageSize(p.Size)
	}
}

func (m *Model) syncLogTables() {
	usage := m.logs.UsagePage()
	rows := make([]table.Row, 0, len(usage))
	for _, u := range usage {
		rows = append(rows, table.Row{
			u.Date,
			formatCount(u.TotalRecords),
			formatCount(u.AddOps),
			formatCount(u.DeleteOps),
			formatCount(u.BrowseOps),
		})
	}
	m.usageTable.SetRows(rows)
	fitCursor(&m.usageTable)

	queries := m.logs.QueryPage()
	urlWidth := queryColumns(m.width)[5].Width
	rows = make([]table.Row, 0, len(queries))
	for _, q := range queries {
		ts := q.Timestamp
		if t := q.ParsedTime(); !t.IsZero() {
			ts = t.Local().Format("2006-01-02 15:04:05")
		}
		rows = append(rows, table.Row{
			ts,
			q.Method,
			q.AnswerCode,
			q.ProcessingTimeMS,
			q.IP,
			truncateMiddle(q.URL, urlWidth),
		})
	}
	m.queryTable.SetRows(rows)
	fitCursor(&m.queryTable)
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("Index "))
	b.WriteString(m.renderInput(m.indexInputs[ViewLogs].View(), m.focus == focusIndex))
	b.WriteString("\n")

	b.WriteString(m.tableTitle("Usage", m.logsFocus == 0, m.logs.UsagePager, len(m.logs.UsageRows())))
	b.WriteString("\n")
	b.WriteString(m.usageTable.View())
	b.WriteString("\n")
	b.WriteString(m.tableTitle("Query logs", m.logsFocus == 1, m.logs.QueryPager, len(m.logs.QueryLogs())))
	if summary := m.answerSummary(); summary != "" {
		b.WriteString("  ")
		b.WriteString(summary)
	}
	b.WriteString("\n")
	b.WriteString(m.queryTable.View())
	return b.String()
}

func (m Model) tableTitle(title string, focused bool, p listing.Pager, n int) string {
	styles := m.theme.Styles()
	label := styles.MutedText.Bold(true).Render(title)
	if focused {
		label = styles.AccentText.Bold(true).Render(title)
	}
	return label + "  " + styles.FaintText.Render(fmt.Sprintf("page %d/%d  %d rows  size %d", p.Page, p.PageCount(n), n, p.Size))
}

// answerSummary renders one badge per answer class present in the query log.
func (m Model) answerSummary() string {
	counts := make(map[string]int)
	for _, q := range m.logs.QueryLogs() {
		if class := answerClass(q.AnswerCode); class != "" {
			counts[class]++
		}
	}
	styles := m.theme.Styles()
	var parts []string
	for _, class := range []string{"2xx", "3xx", "4xx", "5xx"} {
		if n := counts[class]; n > 0 {
			parts = append(parts, styles.Badge(class).Render(fmt.Sprintf("%s %d", class, n)))
		}
	}
	return strings.Join(parts, " ")
}
