// Package state provides the thread-safe data cache for the booktrack client.
//
// # Overview
//
// This package implements the cache that sits between the backend refresh
// commands and the UI. It holds the current book list and the server-computed
// aggregate statistics. The server is authoritative: every refresh replaces
// the cached copy wholesale, and nothing is ever merged or reconciled
// client-side.
//
// # Core Types
//
// Store:
//   - Thread-safe container for the latest book list and stats
//   - Uses sync.RWMutex; refresh commands run on background goroutines while
//     the UI reads snapshots on the event loop
//   - Safe to construct as a zero value
//
// Snapshot:
//   - Immutable view of the cache at a point in time
//   - Books are defensively cloned in both directions
//   - HasStats distinguishes "no stats yet" from an all-zero aggregate
//
// # Update Semantics
//
//	store.SetBooks(books)  // replace the list, never merge
//	store.SetStats(stats)  // replace the aggregate
//	store.Clear()          // logout drops everything
//
// Fetch failures never reach the store: a failed refresh leaves the previous
// (stale) data in place and the error is reported through the UI's message
// flow instead. A failed stats refresh is logged and swallowed entirely.
//
// # Design Rationale
//
// Full snapshot replacement is deliberately simple. The client tracks one
// user's shelf; cloning a few hundred small structs per refresh costs nothing
// and avoids every reconciliation question that a merge strategy would raise.
package state
