package catalog

import (
	"sync"

	"switchshop/core/events"
)

// Store is the shared, mutable game catalog. All access goes through
// its methods so the uniqueness invariant (at most one entry per
// absolute path) is enforced at the boundary rather than by caller
// discipline.
//
// The internal lock is held only for the duration of a single
// operation, never across I/O. Entry updates and removals are
// published on the event bus; batch operations are silent because the
// bulk scan reports its own progress events.
type Store struct {
	mu      sync.Mutex
	entries []Entry
	bus     *events.Bus
}

// NewStore creates an empty catalog publishing changes on bus.
func NewStore(bus *events.Bus) *Store {
	return &Store{bus: bus}
}

// Upsert inserts the entry, replacing any existing entry with the
// same path. An EntryUpdated event is published.
func (s *Store) Upsert(entry Entry) {
	s.mu.Lock()
	s.upsertLocked(entry)
	s.mu.Unlock()
	s.bus.Publish(events.EntryUpdated(entry))
}

// Remove deletes the entry with the given path and publishes an
// EntryRemoved event. Removing an unknown path is a no-op and
// publishes nothing.
func (s *Store) Remove(path string) bool {
	s.mu.Lock()
	removed := false
	for i, e := range s.entries {
		if e.Path == path {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()
	if removed {
		s.bus.Publish(events.EntryRemoved(path))
	}
	return removed
}

// ApplyBatch drains a scan batch into the catalog under a single lock
// acquisition. Entries replace same-path predecessors. No per-entry
// events are published.
func (s *Store) ApplyBatch(batch []Entry) {
	s.mu.Lock()
	for _, entry := range batch {
		s.upsertLocked(entry)
	}
	s.mu.Unlock()
}

// ReplaceAll swaps the entire catalog for the given entries (the
// manual-sync rescan path). Later duplicates of the same path win.
func (s *Store) ReplaceAll(entries []Entry) {
	s.mu.Lock()
	s.entries = s.entries[:0]
	for _, entry := range entries {
		s.upsertLocked(entry)
	}
	s.mu.Unlock()
}

// Snapshot returns a copy of the current catalog in discovery order.
func (s *Store) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of catalog entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) upsertLocked(entry Entry) {
	for i, e := range s.entries {
		if e.Path == entry.Path {
			s.entries[i] = entry
			return
		}
	}
	s.entries = append(s.entries, entry)
}
