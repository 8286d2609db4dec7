// Package session holds the per-run dedup state for a scrape session.
// Keeping the index on an explicit session object (instead of a process
// global) lets independent sessions and tests run in isolation.
package session

import (
	"sync"
	"time"
)

// Index is the set of note ids already captured in a session. It is safe
// for concurrent use; re-adding a seen id is a no-op, which makes capture
// passes idempotent.
type Index struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewIndex() *Index {
	return &Index{seen: make(map[string]struct{})}
}

// Add registers an id and reports whether it was new.
func (i *Index) Add(id string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.seen[id]; ok {
		return false
	}
	i.seen[id] = struct{}{}
	return true
}

// Seen reports whether an id has already been registered.
func (i *Index) Seen(id string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.seen[id]
	return ok
}

func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.seen)
}

// Session is one scrape run: its dedup index and start time. The index
// lives for the session only; nothing is persisted.
type Session struct {
	Index     *Index
	StartedAt time.Time
}

func New() *Session {
	return &Session{
		Index:     NewIndex(),
		StartedAt: time.Now(),
	}
}
