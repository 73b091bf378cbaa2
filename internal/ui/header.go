package ui

import (
	"fmt"

	"github.com/five82/indexdeck/internal/state"
)

// renderHeader renders the top bar: app, application ID, view tabs and the
// busy indicator.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bar := newBand(m.theme.Surface)

	parts := []string{bar.text("indexdeck", styles.Logo)}
	if m.appID != "" {
		parts = append(parts, bar.text("App:", styles.MutedText)+bar.gap(1)+bar.text(m.appID, styles.Text))
	}

	views := []View{ViewRecords, ViewSettings, ViewLogs, ViewAnalytics, ViewActivity}
	tabs := make([]string, 0, len(views))
	for i, v := range views {
		label := fmt.Sprintf("%d %s", i+1, v.title())
		if v == ViewActivity {
			label = "a " + v.title()
		}
		if v == m.currentView {
			tabs = append(tabs, bar.text(label, styles.AccentText.Bold(true)))
		} else {
			tabs = append(tabs, bar.text(label, styles.FaintText))
		}
	}
	parts = append(parts, bar.join(tabs, 2))

	if m.busy() {
		parts = append(parts, bar.text(m.spinner.View(), styles.AccentText)+bar.gap(1)+
			bar.text("working", styles.WarningText))
	}

	return bar.line(bar.join(parts, 2), m.width)
}

// renderCommandBar shows the key hints for the current view, or the delete
// confirmation prompt while one is pending.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	bar := newBand(m.theme.Background)

	if m.confirmDelete != "" {
		prompt := []string{
			bar.text("Delete", styles.DangerText),
			bar.text(truncate(m.confirmDelete, 40), styles.Text),
			bar.text("from", styles.MutedText),
			bar.text(m.records.Index, styles.Text) + bar.text("?", styles.MutedText),
			bar.gap(1) + bar.text("y", styles.WarningText),
			bar.text("confirm", styles.MutedText),
			bar.gap(1) + bar.text("any key", styles.WarningText),
			bar.text("cancel", styles.MutedText),
		}
		return bar.line(bar.join(prompt, 1), m.width)
	}

	h := m.help
	h.Width = m.width
	return bar.line(h.ShortHelpView(m.keys.shortHelp(m.currentView)), m.width)
}

// renderNotice renders the current view's notice line.
func (m Model) renderNotice() string {
	n := m.notice()
	if n.Empty() {
		return ""
	}
	styles := m.theme.Styles()
	badge := styles.Badge(n.Kind.String()).Render(noticeLabel(n.Kind))
	text := styles.Text.Render(truncate(n.Text, maxInt(m.width-12, 10)))
	if n.IsError() {
		text = styles.DangerText.Render(truncate(n.Text, maxInt(m.width-12, 10)))
	}
	return badge + " " + text
}

func (m Model) notice() state.Notice {
	switch m.currentView {
	case ViewRecords:
		return m.records.Notice
	case ViewSettings:
		return m.settings.Notice
	case ViewLogs:
		return m.logs.Notice
	case ViewAnalytics:
		return m.analytics.Notice
	default:
		return state.Notice{}
	}
}

func noticeLabel(k state.Kind) string {
	switch k {
	case state.KindSuccess:
		return "OK"
	case state.KindValidation, state.KindMalformed:
		return "INPUT"
	case state.KindRemote:
		return "ERROR"
	default:
		return "INFO"
	}
}
