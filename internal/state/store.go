package state

import (
	"sync"
	"time"

	"github.com/ainamardhia/book-tracking-app/internal/tracker"
)

// Snapshot represents the latest cached server state available to the UI.
// The server is authoritative; every refresh replaces the cached copy
// wholesale rather than merging.
type Snapshot struct {
	Books       []tracker.Book
	Stats       tracker.Stats
	HasStats    bool
	LastUpdated time.Time
}

// Store coordinates concurrent updates to the snapshot. Refresh commands run
// on their own goroutines, so access is guarded.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// SetBooks replaces the cached book list.
func (s *Store) SetBooks(books []tracker.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Books = cloneBooks(books)
	s.snapshot.LastUpdated = time.Now()
}

// SetStats replaces the cached aggregate statistics.
func (s *Store) SetStats(stats tracker.Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Stats = stats
	s.snapshot.HasStats = true
	s.snapshot.LastUpdated = time.Now()
}

// Clear drops all cached data. Called on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = Snapshot{}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snapshot
	snap.Books = cloneBooks(s.snapshot.Books)
	return snap
}

func cloneBooks(books []tracker.Book) []tracker.Book {
	if len(books) == 0 {
		return nil
	}
	dup := make([]tracker.Book, len(books))
	copy(dup, books)
	return dup
}
