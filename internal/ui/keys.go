package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the UI reacts to. Text widgets take precedence
// while focused; only Blur, Submit and Quit reach them through handleKey.
type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Theme     key.Binding
	Records   key.Binding
	Settings  key.Binding
	Logs      key.Binding
	Analytics key.Binding
	Activity  key.Binding
	NextView  key.Binding

	Index   key.Binding
	Submit  key.Binding
	Blur    key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding

	Filter   key.Binding
	Delete   key.Binding
	Confirm  key.Binding
	Detail   key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	PageSize key.Binding

	Edit       key.Binding
	CopyDraft  key.Binding
	SaveDraft  key.Binding
	SwapTable  key.Binding
	CycleLevel key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Theme:     key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "theme")),
		Records:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "records")),
		Settings:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "settings")),
		Logs:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "logs")),
		Analytics: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "analytics")),
		Activity:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "activity")),
		NextView:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),

		Index:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "index")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		Blur:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave input")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "move")),
		Down:    key.NewBinding(key.WithKeys("j", "down")),

		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Confirm:  key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		Detail:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		PrevPage: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
		NextPage: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
		PageSize: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "page size")),

		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit draft")),
		CopyDraft:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy current")),
		SaveDraft:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "update")),
		SwapTable:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "swap table")),
		CycleLevel: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "level")),
	}
}

// shortHelp returns the bindings shown in the command bar for a view.
func (k keyMap) shortHelp(v View) []key.Binding {
	switch v {
	case ViewRecords:
		return []key.Binding{k.Index, k.Refresh, k.Filter, k.Delete, k.Detail, k.PrevPage, k.NextPage, k.PageSize, k.Help}
	case ViewSettings:
		return []key.Binding{k.Index, k.Refresh, k.Edit, k.CopyDraft, k.SaveDraft, k.Help}
	case ViewLogs:
		return []key.Binding{k.Index, k.Refresh, k.SwapTable, k.PrevPage, k.NextPage, k.PageSize, k.Help}
	case ViewAnalytics:
		return []key.Binding{k.Index, k.Refresh, k.Help}
	case ViewActivity:
		return []key.Binding{k.Refresh, k.CycleLevel, k.Help}
	default:
		return []key.Binding{k.Help, k.Quit}
	}
}

// fullHelp groups every binding for the help overlay.
func (k keyMap) fullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Records, k.Settings, k.Logs, k.Analytics, k.Activity, k.NextView},
		{k.Index, k.Submit, k.Blur, k.Refresh, k.Up},
		{k.Filter, k.Delete, k.Confirm, k.Detail, k.PrevPage, k.NextPage, k.PageSize},
		{k.Edit, k.CopyDraft, k.SaveDraft, k.SwapTable, k.CycleLevel},
		{k.Theme, k.Help, k.Quit},
	}
}
