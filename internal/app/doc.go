// Package app is the composition root for indexdeck.
//
// # Overview
//
// Setup turns a config path into a Runtime: the validated config, a zap
// logger, a Prometheus recorder, the Algolia client and the console service
// built on top of it. Both the TUI (Run) and the non-interactive CLI
// subcommands start from the same Runtime, so they share credentials,
// logging and metrics.
//
// # Startup
//
//	┌──────────────┐
//	│   Setup()    │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load() + Validate()   TOML file and environment
//	       ├─────> logging.New()                zap, file or stderr
//	       ├─────> metrics.New()                private registry
//	       ├─────> algolia.NewClient()          recorder attached
//	       └─────> console.New()                operator actions
//
//	Run():
//	  errgroup
//	   ├─> Recorder.Serve()   only with --metrics-listen
//	   └─> ui.Run()           blocks; cancels the group on exit
//
// # Error Handling
//
// Missing credentials, an unreadable config file and an unusable log file
// are fatal and returned from Setup. Everything after startup is reported
// inside the UI and never ends the process.
package app
