// Package app provides the orchestration layer for the Vitrine application.
//
// # Overview
//
// This package wires together configuration, logging, the local stores, the
// storefront gateway, the view-state coordinators and the UI. It is the
// composition root where all dependencies are initialized and connected.
//
// # Startup
//
//  1. Load config from ~/.config/vitrine/config.toml (.env and VITRINE_*
//     variables override it)
//  2. Open the log file in the data directory; the TUI owns the terminal
//  3. Open the prefs file and the favorites database
//  4. Build the storefront client (customer token read from prefs on every
//     request) and the shop gateway
//  5. Either run a one-shot wishlist command or start the coordinators and
//     the TUI, blocking until the user quits or the context is cancelled
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │ Initialize everything
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()          Read config + env overrides
//	       ├─────> logging.OpenFile()     zerolog to vitrine.log
//	       ├─────> prefs.Open()           cart id, dark mode, customer token
//	       ├─────> favorites.Open()       SQLite wishlist
//	       ├─────> shop.NewGateway()      GraphQL over storefront.Client
//	       └─────> ui.Run()               TUI (blocks)
//
//	Background:
//	┌─────────────────────────────────────────┐
//	│ Catalog.Start() goroutine               │
//	│  └─> favorites subscription             │
//	│      └─> liked flags on every list      │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run): unreadable config, missing endpoint,
// unopenable log file or favorites database. Everything that happens once the
// UI is up is reported through the coordinators as a message and logged.
//
// # Shutdown
//
// When the UI exits the coordinator context is cancelled, the favorites
// subscription ends, in-flight actions are awaited, and the database and log
// file are closed.
package app
