// Package logging builds the zap logger used across indexdeck.
//
// The terminal UI owns the screen, so interactive sessions log JSON lines to
// a file that the activity view tails. One-shot CLI commands may log to
// standard error instead.
package logging
