// Package state holds the per-screen view state of indexdeck, independent of
// the terminal framework that renders it.
//
// # Overview
//
// Every screen follows the same shape: an operator supplies an index, starts
// an action, and the screen shows either the fetched data or exactly one
// notice explaining what went wrong. The UI owns one value of each screen
// type and drives it from Bubble Tea messages; nothing here blocks or
// performs I/O.
//
// # Core Types
//
// Resource[T]:
//   - One remotely fetched value plus the request producing it
//   - Begin refuses while a request is in flight
//   - Each request gets a Ticket; completions with an older ticket are dropped
//   - Fail clears data, Retain keeps it, Clear orphans the request
//
// Notice:
//   - The single message above a screen's content
//   - Info and Success for outcomes, Validation, Malformed and Remote for errors
//   - Built from errors by Describe
//
// # Lifecycle
//
//	BeginFetch()            → notice cleared, spinner on
//	FinishFetch(t, v, nil)  → data = v
//	FinishFetch(t, _, err)  → data dropped, notice = Describe(op, err)
//
// Validation failures never reach the network, so they keep whatever the
// screen was already showing.
//
// # Screens
//
// RecordsScreen:
//   - Records, filter term and pager
//   - The filter is recomputed whenever the term or the record set changes
//   - A rejected delete keeps the list; a successful one shows the refetch
//
// SettingsScreen:
//   - Fetched snapshot and the draft being edited
//   - A successful update clears index, draft and snapshot
//   - A failed update keeps all three
//
// LogsScreen:
//   - Usage rows and query logs, fetched together, paged separately
//
// AnalyticsScreen:
//   - All four counters or nothing
//
// # Concurrency Model
//
// Screens are plain values mutated only from the Bubble Tea update loop, so
// they carry no locks. Work started by a screen runs in a tea.Cmd goroutine
// and reports back through a message carrying its Ticket.
package state
