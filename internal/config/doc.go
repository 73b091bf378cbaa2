// Package config loads the credentials and endpoints indexdeck needs to talk
// to the hosted search provider.
//
// # Resolution Order
//
// Load builds a Config from three layers, later layers winning:
//
//  1. Built-in defaults (public provider hosts, start date 2024-10-20)
//  2. The TOML file at the given path, or ~/.config/indexdeck/config.toml
//  3. Process environment variables
//
// A missing config file is not an error. Credentials usually come from the
// environment:
//
//   - ALGOLIA_APP_ID
//   - ALGOLIA_WRITE_API_KEY (browse, delete, settings, analytics)
//   - ALGOLIA_SEARCH_API_KEY
//   - ALGOLIA_USAGE_API_KEY (usage series, query logs)
//
// The REACT_APP_-prefixed names injected by the old merchant shell are
// accepted when the plain name is unset.
//
// # TOML Format
//
//	app_id = "ABCDEF1234"
//	usage_host = "usage.algolia.com"
//	logs_host = "c8-uk-3.algolianet.com"
//	analytics_host = "analytics.de.algolia.com"
//	start_date = "2024-10-20"
//	log_length = 100
//	log_level = "info"
//	log_file = "~/.local/state/indexdeck/indexdeck.log"
//
// Hosts may include a scheme; bare hosts are reached over https. When
// search_host is empty it is derived from the application ID as
// <app_id>-dsn.algolia.net.
//
// # Immutability
//
// Config is a plain value. It is loaded once at startup and handed to the API
// client by the composition root; nothing reads credentials from globals.
package config
