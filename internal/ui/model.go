package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/indexdeck/internal/algolia"
	"github.com/five82/indexdeck/internal/prefs"
	"github.com/five82/indexdeck/internal/state"
)

// Console is the set of operator actions the UI drives.
type Console interface {
	Records(ctx context.Context, index string) ([]algolia.Record, error)
	DeleteRecord(ctx context.Context, index, objectID string) ([]algolia.Record, error)
	Settings(ctx context.Context, index string) (algolia.Settings, error)
	UpdateSettings(ctx context.Context, index, text string) (algolia.SettingsUpdate, error)
	Usage(ctx context.Context, index string) ([]algolia.UsageRow, error)
	QueryLogs(ctx context.Context, index string) ([]algolia.QueryLog, error)
	Analytics(ctx context.Context, index string) (algolia.Analytics, error)
}

// View represents the current active view.
type View int

const (
	ViewRecords View = iota
	ViewSettings
	ViewLogs
	ViewAnalytics
	ViewActivity
)

const dataViews = 4

func (v View) title() string {
	switch v {
	case ViewRecords:
		return "Records"
	case ViewSettings:
		return "Settings"
	case ViewLogs:
		return "Logs"
	case ViewAnalytics:
		return "Analytics"
	case ViewActivity:
		return "Activity"
	default:
		return ""
	}
}

// focusTarget is the text widget currently receiving keystrokes.
type focusTarget int

const (
	focusNone focusTarget = iota
	focusIndex
	focusFilter
	focusDraft
)

const defaultTimeout = 30 * time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Console   Console
	AppID     string
	LogPath   string
	PrefsPath string // empty disables persistence
	Prefs     prefs.Prefs
	Timeout   time.Duration
	Log       *zap.Logger // nil discards
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	console   Console
	appID     string
	logPath   string
	prefsPath string
	prefs     prefs.Prefs
	timeout   time.Duration
	log       *zap.Logger

	// UI state
	theme       Theme
	keys        keyMap
	help        help.Model
	spinner     spinner.Model
	spinning    bool
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	focus       focusTarget

	// Screens
	records   *state.RecordsScreen
	settings  *state.SettingsScreen
	logs      *state.LogsScreen
	analytics *state.AnalyticsScreen

	// Widgets
	indexInputs  [dataViews]textinput.Model
	filterInput  textinput.Model
	draft        textarea.Model
	recordTable  table.Model
	usageTable   table.Model
	queryTable   table.Model
	detail       viewport.Model
	snapshotView viewport.Model
	activityView viewport.Model

	// Records state
	showDetail    bool
	confirmDelete string

	// Logs state
	logsFocus int // 0 = usage, 1 = query logs

	// Activity state
	activityLevel zapcore.Level
	activityRaw   []string
	activityErr   error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	p := opts.Prefs
	if p.Theme == "" {
		p = prefs.Defaults()
	}

	m := Model{
		ctx:           ctx,
		console:       opts.Console,
		appID:         opts.AppID,
		logPath:       opts.LogPath,
		prefsPath:     opts.PrefsPath,
		prefs:         p,
		timeout:       timeout,
		log:           log,
		theme:         GetTheme(p.Theme),
		keys:          defaultKeyMap(),
		help:          help.New(),
		currentView:   ViewRecords,
		records:       state.NewRecordsScreen(p.PageSize),
		settings:      &state.SettingsScreen{},
		logs:          state.NewLogsScreen(p.PageSize),
		analytics:     &state.AnalyticsScreen{},
		activityLevel: zapcore.InfoLevel,
	}

	for i := range m.indexInputs {
		in := textinput.New()
		in.Prompt = ""
		in.Placeholder = "index name"
		in.CharLimit = 256
		in.Width = 32
		in.SetValue(p.LastIndex)
		m.indexInputs[i] = in
	}

	m.filterInput = textinput.New()
	m.filterInput.Prompt = ""
	m.filterInput.Placeholder = "filter"
	m.filterInput.Width = 24

	m.draft = textarea.New()
	m.draft.Placeholder = `{"hitsPerPage": 20}`
	m.draft.ShowLineNumbers = true
	m.draft.CharLimit = 0

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.recordTable = table.New(table.WithColumns(recordColumns(80)), table.WithFocused(true))
	m.usageTable = table.New(table.WithColumns(usageColumns(80)), table.WithFocused(true))
	m.queryTable = table.New(table.WithColumns(queryColumns(80)))
	m.detail = viewport.New(80, 20)
	m.snapshotView = viewport.New(40, 20)
	m.activityView = viewport.New(80, 20)

	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case recordsMsg:
		m.records.FinishFetch(msg.ticket, msg.records, msg.err)
		m.rememberIndex(msg.err, msg.index)
		m.syncRecordTable()
		return m, nil

	case deleteMsg:
		m.records.FinishDelete(msg.ticket, msg.records, msg.err)
		m.syncRecordTable()
		return m, nil

	case settingsMsg:
		m.settings.FinishFetch(msg.ticket, msg.settings, msg.err)
		m.rememberIndex(msg.err, msg.index)
		m.syncSnapshot()
		return m, nil

	case updateMsg:
		if m.settings.FinishUpdate(msg.ticket, msg.ack, msg.err) {
			m.indexInputs[ViewSettings].SetValue("")
			m.draft.SetValue("")
		}
		m.syncSnapshot()
		return m, nil

	case usageMsg:
		m.logs.FinishUsage(msg.ticket, msg.rows, msg.err)
		m.rememberIndex(msg.err, msg.index)
		m.syncLogTables()
		return m, nil

	case queryLogsMsg:
		m.logs.FinishQueries(msg.ticket, msg.logs, msg.err)
		m.syncLogTables()
		return m, nil

	case analyticsMsg:
		m.analytics.Finish(msg.ticket, msg.result, msg.err)
		m.rememberIndex(msg.err, msg.index)
		return m, nil

	case activityMsg:
		m.activityRaw = msg.lines
		m.activityErr = msg.err
		m.syncActivity()
		return m, nil
	}

	cmd := m.updateFocused(msg)
	return m, cmd
}

// updateFocused forwards non-key messages, such as cursor blinks, to the
// focused text widget.
func (m *Model) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusIndex:
		if m.currentView < dataViews {
			m.indexInputs[m.currentView], cmd = m.indexInputs[m.currentView].Update(msg)
		}
	case focusFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
	case focusDraft:
		m.draft, cmd = m.draft.Update(msg)
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewRecords:
		return m.renderRecords()
	case ViewSettings:
		return m.renderSettings()
	case ViewLogs:
		return m.renderLogs()
	case ViewAnalytics:
		return m.renderAnalytics()
	case ViewActivity:
		return m.renderActivity()
	default:
		return ""
	}
}

// bodyHeight is the space left under the header, command bar and notice.
func (m Model) bodyHeight() int {
	return maxInt(m.height-3, 4)
}

func (m *Model) resize() {
	body := m.bodyHeight()
	m.help.Width = m.width

	m.recordTable.SetWidth(m.width)
	m.recordTable.SetColumns(recordColumns(m.width))
	m.recordTable.SetHeight(maxInt(body-2, 3))
	m.detail.Width = m.width
	m.detail.Height = maxInt(body-2, 3)

	half := maxInt(m.width/2-1, 20)
	m.snapshotView.Width = half
	m.snapshotView.Height = maxInt(body-3, 3)
	m.draft.SetWidth(half)
	m.draft.SetHeight(maxInt(body-3, 3))

	tableHeight := maxInt((body-4)/2, 3)
	m.usageTable.SetWidth(m.width)
	m.usageTable.SetColumns(usageColumns(m.width))
	m.usageTable.SetHeight(tableHeight)
	m.queryTable.SetWidth(m.width)
	m.queryTable.SetColumns(queryColumns(m.width))
	m.queryTable.SetHeight(tableHeight)

	m.activityView.Width = m.width
	m.activityView.Height = maxInt(body-1, 3)

	m.syncRecordTable()
	m.syncSnapshot()
	m.syncLogTables()
	m.syncActivity()
}

// applyTheme restyles every widget after a theme change.
func (m *Model) applyTheme() {
	styles := m.theme.Styles()

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(m.theme.Accent)).
		Bold(true)
	ts.Selected = styles.Selected.Bold(false)
	ts.Cell = ts.Cell.Foreground(lipgloss.Color(m.theme.Text))
	m.recordTable.SetStyles(ts)
	m.usageTable.SetStyles(ts)
	m.queryTable.SetStyles(ts)

	m.spinner.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.AccentText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullSeparator = styles.FaintText

	for i := range m.indexInputs {
		m.indexInputs[i].TextStyle = styles.Text
		m.indexInputs[i].PlaceholderStyle = styles.FaintText
	}
	m.filterInput.TextStyle = styles.Text
	m.filterInput.PlaceholderStyle = styles.FaintText
}

// busy reports whether any screen has a request in flight.
func (m Model) busy() bool {
	return m.records.Loading() || m.settings.Busy() || m.logs.Loading() || m.analytics.Loading()
}

// startSpinner returns a tick command unless the spinner is already running.
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

// rememberIndex stores the last successfully used index in prefs.
func (m *Model) rememberIndex(err error, index string) {
	if err != nil || index == "" || index == m.prefs.LastIndex {
		return
	}
	m.prefs.LastIndex = index
	m.persist(func(p *prefs.Prefs) { p.LastIndex = index })
}

func (m *Model) persist(fn func(*prefs.Prefs)) {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Update(m.prefsPath, fn); err != nil {
		m.log.Warn("failed to save preferences", zap.String("path", m.prefsPath), zap.Error(err))
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
