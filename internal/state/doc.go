// Package state holds the view-state coordinators the UI renders from.
//
// # Overview
//
// There are three coordinators:
//
//   - Catalog: product lists, search, collections, product detail, cart,
//     checkout URL and the wishlist-driven liked flags
//   - Auth: the sign-up / login / logout state machine and the customer
//   - Theme: the persisted dark mode preference
//
// # Concurrency Model
//
// Each coordinator wraps its state in a store guarded by a sync.RWMutex,
// like a snapshot cache between a producer and the UI:
//
//	Action goroutines:             Consumer (UI):
//	┌──────────────────┐          ┌────────────────────┐
//	│ gateway call     │          │ <-Subscribe()      │
//	│      ↓           │          │      ↓             │
//	│ store.update()   │─────────→│ Snapshot()         │
//	│      ↓           │ (signal) │      ↓             │
//	│ notify subs      │          │ render             │
//	└──────────────────┘          └────────────────────┘
//
// Actions are fire-and-forget: each runs on its own goroutine, and earlier
// actions are neither cancelled nor de-duplicated. Wait blocks until every
// started action has finished, which is what tests use.
//
// # Loading Policy
//
// Catalog actions clear the error and set Loading synchronously, before the
// goroutine starts. On completion exactly one of the data field or Error is
// written. Loading stays true while any action is still in flight.
//
// A failed action never overwrites data: the previous lists, cart and detail
// stay visible next to the error.
//
// # Subscriptions
//
// Subscribe returns a channel with a one-slot buffer. Every update tries a
// non-blocking send, so signals coalesce and a slow UI only ever renders the
// latest Snapshot.
//
// # Defensive Copying
//
// Snapshot clones every slice and pointer it returns; callers may mutate the
// copy freely.
package state
