// Package metrics exposes provider request counters and latencies over a
// Prometheus scrape endpoint.
//
// The API client reports every request to a Recorder. The endpoint itself is
// only served when an address is configured, since the console usually runs
// interactively.
package metrics
