// Package console implements the operator actions shared by the terminal UI
// and the one-shot CLI commands.
//
// Each action validates its input before touching the network. A blank index
// or object ID yields a *ValidationError, and settings text that is not a JSON
// object yields ErrMalformedInput; in both cases no request is sent. Provider
// failures are returned unchanged so callers can inspect *algolia.APIError.
//
// Every action is logged with a fresh correlation ID under the action_id key.
package console
