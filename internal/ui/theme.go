package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named palette. Colors are hex strings.
type Theme struct {
	Name string

	Background  string // command bar and help backdrop
	Surface     string // header bar
	Border      string
	BorderFocus string
	Selection   string // selected table row
	OnSelection string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string
	Danger  string
	Info    string

	// Badges maps a notice kind or an answer class ("2xx") to a badge color.
	Badges map[string]string
}

// Styles holds the text styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style
	Logo        lipgloss.Style
	Selected    lipgloss.Style

	badges   map[string]string
	badgeInk string
	fallback string
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),
		InfoText:    fg(t.Info),
		Logo:        fg(t.Warning).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Selection)).
			Foreground(lipgloss.Color(t.OnSelection)),
		badges:   t.Badges,
		badgeInk: t.Background,
		fallback: t.Muted,
	}
}

// Badge returns the badge style for key, falling back to the muted color for
// keys the theme does not name.
func (s Styles) Badge(key string) lipgloss.Style {
	color, ok := s.badges[key]
	if !ok {
		color = s.fallback
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.badgeInk)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// badgeSet fills the badge map from the theme's signal colors. Input
// problems share a color with 4xx answers, remote failures with 5xx.
func badgeSet(info, ok, input, malformed, failure string) map[string]string {
	return map[string]string{
		"info":       info,
		"success":    ok,
		"validation": input,
		"malformed":  malformed,
		"remote":     failure,
		"2xx":        ok,
		"3xx":        info,
		"4xx":        input,
		"5xx":        failure,
	}
}

// themes is the cycle order used by the T key. The first entry is the default.
var themes = []Theme{
	{
		// https://github.com/EdenEast/nightfox.nvim
		Name:        "Nightfox",
		Background:  "#131a24",
		Surface:     "#192330",
		Border:      "#39506d",
		BorderFocus: "#719cd6",
		Selection:   "#2b3b51",
		OnSelection: "#cdcecf",
		Text:        "#cdcecf",
		Muted:       "#738091",
		Faint:       "#71839b",
		Accent:      "#719cd6",
		Warning:     "#dbc074",
		Danger:      "#c94f6d",
		Info:        "#63cdcf",
		Badges:      badgeSet("#63cdcf", "#81b29a", "#dbc074", "#f4a261", "#c94f6d"),
	},
	{
		// https://github.com/rebelot/kanagawa.nvim
		Name:        "Kanagawa",
		Background:  "#16161D",
		Surface:     "#1F1F28",
		Border:      "#54546D",
		BorderFocus: "#7E9CD8",
		Selection:   "#2D4F67",
		OnSelection: "#DCD7BA",
		Text:        "#DCD7BA",
		Muted:       "#C8C093",
		Faint:       "#727169",
		Accent:      "#7E9CD8",
		Warning:     "#E6C384",
		Danger:      "#E46876",
		Info:        "#7FB4CA",
		Badges:      badgeSet("#7FB4CA", "#98BB6C", "#E6C384", "#FFA066", "#E46876"),
	},
	{
		// Tailwind slate and sky
		Name:        "Slate",
		Background:  "#020617",
		Surface:     "#0f172a",
		Border:      "#334155",
		BorderFocus: "#38bdf8",
		Selection:   "#0284c7",
		OnSelection: "#f8fafc",
		Text:        "#f1f5f9",
		Muted:       "#94a3b8",
		Faint:       "#64748b",
		Accent:      "#38bdf8",
		Warning:     "#f59e0b",
		Danger:      "#ef4444",
		Info:        "#06b6d4",
		Badges:      badgeSet("#38bdf8", "#22c55e", "#f59e0b", "#f97316", "#dc2626"),
	},
}

// GetTheme returns the named theme, or the default for an unknown name.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after current in the cycle.
func NextTheme(current string) string {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}
