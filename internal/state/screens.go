package state

import (
	"errors"

	"github.com/five82/indexdeck/internal/algolia"
	"github.com/five82/indexdeck/internal/console"
	"github.com/five82/indexdeck/internal/listing"
)

// RecordsScreen holds the records browser: the fetched records, the live
// filter over them and the page being shown.
type RecordsScreen struct {
	Index  string
	Term   string
	Pager  listing.Pager
	Notice Notice

	records Resource[[]algolia.Record]
	visible []algolia.Record
}

// NewRecordsScreen returns an empty records screen paging by pageSize.
func NewRecordsScreen(pageSize int) *RecordsScreen {
	return &RecordsScreen{Pager: listing.NewPager(pageSize)}
}

// BeginFetch starts a fetch of the current index.
func (s *RecordsScreen) BeginFetch() (Ticket, bool) {
	return s.begin()
}

// FinishFetch applies the outcome of fetch t. A failed fetch empties the list.
func (s *RecordsScreen) FinishFetch(t Ticket, records []algolia.Record, err error) {
	switch {
	case err == nil:
		if !s.records.Succeed(t, records) {
			return
		}
		if len(records) == 0 {
			s.Notice = Info(MsgNoRecordsFound)
		}
	case console.IsValidation(err):
		if !s.records.Retain(t, err) {
			return
		}
		s.Notice = Describe(OpFetchRecords, err)
	default:
		if !s.records.Fail(t, err) {
			return
		}
		s.Notice = Describe(OpFetchRecords, err)
	}
	s.refilter()
}

// BeginDelete starts a delete. It shares the in-flight slot with fetches.
func (s *RecordsScreen) BeginDelete() (Ticket, bool) {
	return s.begin()
}

// FinishDelete applies the outcome of delete t. records is the refetched
// index. A rejected delete keeps the current list; a delete whose refetch
// failed behaves like a failed fetch.
func (s *RecordsScreen) FinishDelete(t Ticket, records []algolia.Record, err error) {
	var refetch *console.RefetchError
	switch {
	case err == nil:
		if !s.records.Succeed(t, records) {
			return
		}
		if len(records) == 0 {
			s.Notice = Info(MsgNoRecordsFound)
		}
	case errors.As(err, &refetch):
		if !s.records.Fail(t, err) {
			return
		}
		s.Notice = Describe(OpFetchRecords, refetch.Err)
	default:
		if !s.records.Retain(t, err) {
			return
		}
		s.Notice = Describe(OpDeleteRecord, err)
	}
	s.refilter()
}

func (s *RecordsScreen) begin() (Ticket, bool) {
	t, ok := s.records.Begin()
	if ok {
		s.Notice = Notice{}
	}
	return t, ok
}

// SetTerm changes the filter term and returns to the first page.
func (s *RecordsScreen) SetTerm(term string) {
	s.Term = term
	s.Pager = s.Pager.SetPage(1, 0)
	s.refilter()
}

// ApplyFilter recomputes the visible records for the current term.
func (s *RecordsScreen) ApplyFilter() {
	s.refilter()
}

func (s *RecordsScreen) refilter() {
	all, _ := s.records.Data()
	s.visible = listing.FilterRecords(all, s.Term)
	s.Pager = s.Pager.SetPage(s.Pager.Page, len(s.visible))
}

// All returns every fetched record.
func (s *RecordsScreen) All() []algolia.Record {
	all, _ := s.records.Data()
	return all
}

// Visible returns the records matching the filter.
func (s *RecordsScreen) Visible() []algolia.Record { return s.visible }

// Page returns the visible records on the current page.
func (s *RecordsScreen) Page() []algolia.Record { return listing.Slice(s.visible, s.Pager) }

// NextPage, PrevPage and CycleSize move the pager over the visible records.
func (s *RecordsScreen) NextPage() { s.Pager = s.Pager.Next(len(s.visible)) }

func (s *RecordsScreen) PrevPage() { s.Pager = s.Pager.Prev(len(s.visible)) }

func (s *RecordsScreen) CycleSize() { s.Pager = s.Pager.CycleSize() }

// Loading reports whether a fetch or delete is in flight.
func (s *RecordsScreen) Loading() bool { return s.records.Loading() }

// SettingsScreen holds the settings editor: the fetched snapshot and the
// operator's draft replacement.
type SettingsScreen struct {
	Index  string
	Draft  string
	Notice Notice

	current Resource[algolia.Settings]
	update  Resource[algolia.SettingsUpdate]
}

// Busy reports whether a fetch or update is in flight.
func (s *SettingsScreen) Busy() bool {
	return s.current.Loading() || s.update.Loading()
}

// BeginFetch starts fetching the current settings.
func (s *SettingsScreen) BeginFetch() (Ticket, bool) {
	if s.update.Loading() {
		return 0, false
	}
	t, ok := s.current.Begin()
	if ok {
		s.Notice = Notice{}
	}
	return t, ok
}

// FinishFetch applies the outcome of fetch t. A failed fetch drops the
// previous snapshot.
func (s *SettingsScreen) FinishFetch(t Ticket, settings algolia.Settings, err error) {
	switch {
	case err == nil:
		if s.current.Succeed(t, settings) {
			s.Notice = Success(MsgSettingsFetched)
		}
	case console.IsValidation(err):
		if s.current.Retain(t, err) {
			s.Notice = Describe(OpFetchSettings, err)
		}
	default:
		if s.current.Fail(t, err) {
			s.Notice = Describe(OpFetchSettings, err)
		}
	}
}

// BeginUpdate starts submitting the draft.
func (s *SettingsScreen) BeginUpdate() (Ticket, bool) {
	if s.current.Loading() {
		return 0, false
	}
	t, ok := s.update.Begin()
	if ok {
		s.Notice = Notice{}
	}
	return t, ok
}

// FinishUpdate applies the outcome of update t. Success clears the index,
// the draft and the snapshot and reports true; failure keeps all three.
func (s *SettingsScreen) FinishUpdate(t Ticket, ack algolia.SettingsUpdate, err error) bool {
	if err != nil {
		if s.update.Retain(t, err) {
			s.Notice = Describe(OpUpdateSettings, err)
		}
		return false
	}
	if !s.update.Succeed(t, ack) {
		return false
	}
	s.Notice = Success(MsgConfigUpdated)
	s.Index = ""
	s.Draft = ""
	s.current.Clear()
	return true
}

// Snapshot returns the last fetched settings.
func (s *SettingsScreen) Snapshot() (algolia.Settings, bool) { return s.current.Data() }

// LastUpdate returns the acknowledgement of the last successful update.
func (s *SettingsScreen) LastUpdate() (algolia.SettingsUpdate, bool) { return s.update.Data() }

// LogsScreen holds the usage table and the query log table, each with its
// own pager.
type LogsScreen struct {
	Index      string
	Notice     Notice
	UsagePager listing.Pager
	QueryPager listing.Pager

	usage   Resource[[]algolia.UsageRow]
	queries Resource[[]algolia.QueryLog]
}

// NewLogsScreen returns an empty logs screen paging both tables by pageSize.
func NewLogsScreen(pageSize int) *LogsScreen {
	return &LogsScreen{
		UsagePager: listing.NewPager(pageSize),
		QueryPager: listing.NewPager(pageSize),
	}
}

// Loading reports whether either table is being fetched.
func (s *LogsScreen) Loading() bool { return s.usage.Loading() || s.queries.Loading() }

// BeginFetch starts fetching both tables.
func (s *LogsScreen) BeginFetch() (usage, queries Ticket, ok bool) {
	if s.Loading() {
		return 0, 0, false
	}
	usage, _ = s.usage.Begin()
	queries, _ = s.queries.Begin()
	s.Notice = Notice{}
	return usage, queries, true
}

// FinishUsage applies the outcome of the usage fetch.
func (s *LogsScreen) FinishUsage(t Ticket, rows []algolia.UsageRow, err error) {
	switch {
	case err == nil:
		if s.usage.Succeed(t, rows) {
			s.UsagePager = s.UsagePager.SetPage(1, len(rows))
		}
	case console.IsValidation(err):
		if s.usage.Retain(t, err) {
			s.Notice = Describe(OpFetchUsage, err)
		}
	default:
		if s.usage.Fail(t, err) {
			s.Notice = Describe(OpFetchUsage, err)
		}
	}
}

// FinishQueries applies the outcome of the query log fetch.
func (s *LogsScreen) FinishQueries(t Ticket, logs []algolia.QueryLog, err error) {
	switch {
	case err == nil:
		if s.queries.Succeed(t, logs) {
			s.QueryPager = s.QueryPager.SetPage(1, len(logs))
		}
	case console.IsValidation(err):
		if s.queries.Retain(t, err) {
			s.Notice = Describe(OpFetchQueryLogs, err)
		}
	default:
		if s.queries.Fail(t, err) {
			s.Notice = Describe(OpFetchQueryLogs, err)
		}
	}
}

// UsageRows returns every usage row.
func (s *LogsScreen) UsageRows() []algolia.UsageRow {
	rows, _ := s.usage.Data()
	return rows
}

// QueryLogs returns every query log entry.
func (s *LogsScreen) QueryLogs() []algolia.QueryLog {
	logs, _ := s.queries.Data()
	return logs
}

// UsagePage and QueryPage return the rows on each table's current page.
func (s *LogsScreen) UsagePage() []algolia.UsageRow {
	return listing.Slice(s.UsageRows(), s.UsagePager)
}

func (s *LogsScreen) QueryPage() []algolia.QueryLog {
	return listing.Slice(s.QueryLogs(), s.QueryPager)
}

// AnalyticsScreen holds the combined analytics result.
type AnalyticsScreen struct {
	Index  string
	Notice Notice

	result Resource[algolia.Analytics]
}

// BeginFetch starts fetching analytics.
func (s *AnalyticsScreen) BeginFetch() (Ticket, bool) {
	t, ok := s.result.Begin()
	if ok {
		s.Notice = Notice{}
	}
	return t, ok
}

// Finish applies the outcome of fetch t. Any failure leaves no result.
func (s *AnalyticsScreen) Finish(t Ticket, result algolia.Analytics, err error) {
	switch {
	case err == nil:
		s.result.Succeed(t, result)
	case console.IsValidation(err):
		if s.result.Retain(t, err) {
			s.Notice = Describe(OpFetchAnalytics, err)
		}
	default:
		if s.result.Fail(t, err) {
			s.Notice = Describe(OpFetchAnalytics, err)
		}
	}
}

// Result returns the last successful analytics result.
func (s *AnalyticsScreen) Result() (algolia.Analytics, bool) { return s.result.Data() }

// Loading reports whether a fetch is in flight.
func (s *AnalyticsScreen) Loading() bool { return s.result.Loading() }
