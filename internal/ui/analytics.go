package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

func (m Model) renderAnalytics() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("Index "))
	b.WriteString(m.renderInput(m.indexInputs[ViewAnalytics].View(), m.focus == focusIndex))
	b.WriteString("\n\n")

	result, ok := m.analytics.Result()
	if !ok {
		if !m.analytics.Loading() {
			b.WriteString(styles.FaintText.Render("Enter an index and press enter to load analytics."))
		}
		return b.String()
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 2)
	counter := func(label, value string) string {
		return card.Render(styles.MutedText.Render(label) + "\n" + styles.AccentText.Bold(true).Render(value))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		counter("Total searches", formatCount(result.TotalSearches)),
		" ",
		counter("Total users", formatCount(result.TotalUsers)),
		" ",
		counter("No result rate", fmt.Sprintf("%.2f%%", result.NoResultRate*100)),
	))
	b.WriteString("\n\n")

	b.WriteString(styles.AccentText.Bold(true).Render("Top searches"))
	b.WriteString("\n")
	if len(result.TopSearches) == 0 {
		b.WriteString(styles.FaintText.Render("No searches recorded."))
		return b.String()
	}

	rows := make([][]string, 0, len(result.TopSearches))
	for _, s := range result.TopSearches {
		search := s.Search
		if search == "" {
			search = "(empty query)"
		}
		rows = append(rows, []string{truncate(search, 48), formatCount(s.Count), formatCount(s.NbHits)})
	}
	header := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text)).Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))).
		Headers("Search", "Count", "Hits").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	b.WriteString(t.Render())
	return b.String()
}
