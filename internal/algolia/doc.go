// Package algolia is a small REST client for the hosted search provider's
// admin, usage, log and analytics hosts.
//
// # Hosts and Keys
//
// The client is built once from config.Config and never mutates its
// credentials. Each call picks a host and key:
//
//   - search host, write key: browse, delete record, get/put settings
//   - usage host, usage key: usage series
//   - logs host, usage key: query logs
//   - analytics host, write key: searches, users, no-result rate, top searches
//
// Every request carries X-Algolia-Application-Id and X-Algolia-API-Key.
//
// # Responses
//
// Missing or null arrays decode to empty slices. Non-2xx responses are
// returned as *APIError, whose Message is the provider's own explanation when
// the body carried one. JSON goes through sonic in std-compatible mode.
//
// # Analytics
//
// FetchAnalytics runs its four requests in an errgroup. The combined result
// is returned only when all four succeed.
//
// # Usage
//
// MergeUsage joins the four usage series on timestamp. A timestamp present in
// any series yields one row; absent values are zero.
package algolia
