package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// band paints one full-width bar on a solid background. A styled segment
// ends with an ANSI reset that also clears the background, so every word
// and every gap between segments carries the color itself.
type band struct {
	paint lipgloss.Style
}

func newBand(color string) band {
	return band{paint: lipgloss.NewStyle().Background(lipgloss.Color(color))}
}

// text renders s in style. Runs of spaces inside s keep the bar color.
func (b band) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	style = style.Inherit(b.paint)
	words := strings.Split(s, " ")
	for i, w := range words {
		if w != "" {
			words[i] = style.Render(w)
		}
	}
	return strings.Join(words, b.gap(1))
}

// gap returns n colored spaces.
func (b band) gap(n int) string {
	return b.paint.Render(strings.Repeat(" ", n))
}

// join places a colored gap of width n between parts.
func (b band) join(parts []string, n int) string {
	return strings.Join(parts, b.gap(n))
}

// line pads content with the bar color out to width.
func (b band) line(content string, width int) string {
	return b.paint.Width(width).Render(content)
}
