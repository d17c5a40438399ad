// Package store holds the snapshot of exchanges currently on display.
package store

import (
	"sync"
	"time"

	"github.com/sonnes/chaukidar/core"
)

// Store exclusively owns the displayed snapshot. Replace is its only
// mutator; every other method is a read. Once closed, Replace is a no-op.
type Store struct {
	mu        sync.RWMutex
	snap      core.Snapshot
	loaded    bool
	updatedAt time.Time
	closed    bool
	subs      []func(core.Snapshot)

	// notifyMu serialises subscriber calls so renders never interleave.
	notifyMu sync.Mutex
	now      func() time.Time
}

// New returns an empty, open Store.
func New() *Store {
	return &Store{
		snap: core.Snapshot{},
		now:  time.Now,
	}
}

// Replace overwrites the snapshot with s and notifies subscribers. It
// reports whether the replacement was applied; after Close it does nothing
// and returns false. The store keeps its own copy of s.
func (st *Store) Replace(s core.Snapshot) bool {
	st.notifyMu.Lock()
	defer st.notifyMu.Unlock()

	st.mu.Lock()
	if st.closed {
		st.mu.Unlock()
		return false
	}
	st.snap = s.Clone()
	st.loaded = true
	st.updatedAt = st.now()
	view := st.snap.Clone()
	subs := make([]func(core.Snapshot), len(st.subs))
	copy(subs, st.subs)
	st.mu.Unlock()

	for _, fn := range subs {
		fn(view)
	}
	return true
}

// Snapshot returns a copy of the current snapshot. It is empty, not nil,
// before the first Replace.
func (st *Store) Snapshot() core.Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snap.Clone()
}

// Loaded reports whether any Replace has been applied. A successful fetch
// of zero exchanges still counts as loaded.
func (st *Store) Loaded() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.loaded
}

// UpdatedAt returns the time of the last applied Replace, or the zero time.
func (st *Store) UpdatedAt() time.Time {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.updatedAt
}

// Subscribe registers fn to be called with a copy of the snapshot after
// every applied Replace. Calls are serialised.
func (st *Store) Subscribe(fn func(core.Snapshot)) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.subs = append(st.subs, fn)
}

// Close marks the store as torn down. It waits for an in-progress Replace
// (including its subscriber calls) to finish, so no notification happens
// after Close returns. Close is idempotent.
func (st *Store) Close() {
	st.notifyMu.Lock()
	defer st.notifyMu.Unlock()

	st.mu.Lock()
	defer st.mu.Unlock()
	st.closed = true
}

// Closed reports whether Close has been called.
func (st *Store) Closed() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.closed
}
