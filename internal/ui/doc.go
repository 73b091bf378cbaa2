// Package ui provides the terminal console for indexdeck.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model is the single root state; it owns
// one screen value per view (from package state) plus the bubbles widgets
// that render them. All network work runs in tea.Cmd closures that call the
// Console interface and report back as messages carrying the ticket handed
// out when the request began. Screens ignore messages whose ticket is stale.
//
// # Package Structure
//
//   - model.go: Model, New, Init, Update, View and Run
//   - commands.go: result messages and the commands that produce them
//   - input.go: key routing, focus handling and view switching
//   - keys.go: key bindings and help groups
//   - header.go: header bar, command bar and notice line
//   - records.go, settings.go, logs.go, analytics.go, activity.go: one file per view
//   - theme.go, style_helpers.go, strings.go: styling and text helpers
//
// # Views
//
//   - Records (1): browse an index, filter as you type, page, inspect and delete records
//   - Settings (2): fetch the current settings and replace them with a JSON draft
//   - Logs (3): daily usage counters and the provider's recent query log
//   - Analytics (4): search and user counts, no-result rate and top searches
//   - Activity (a): indexdeck's own JSON log, filtered by level
//
// Each data view has its own index input; press i to focus it and enter to
// fetch. A view refuses a second request while one is in flight.
//
// # Preferences
//
// Theme, page size and the last index that fetched successfully are written
// through package prefs when Options.PrefsPath is set.
package ui
