// Package sink receives capture batches: an in-memory table accumulates
// records for the session and an exporter dumps the table to a JSON file.
package sink

import (
	"context"
	"sync"

	"github.com/linqiu0199/xhs-collector/internal/models"
)

// Table is an ordered, id-keyed in-memory store of captured notes. It is
// the process-lifetime home of scraped data; nothing is persisted beyond
// what the exporter writes on demand.
type Table struct {
	mu    sync.RWMutex
	byID  map[string]models.NoteItem
	order []string
}

func NewTable() *Table {
	return &Table{byID: make(map[string]models.NoteItem)}
}

// Publish appends the batch in order. Records whose id is already present
// are ignored; rows are never mutated after insertion.
func (t *Table) Publish(_ context.Context, batch []models.NoteItem) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, note := range batch {
		if _, ok := t.byID[note.ID]; ok {
			continue
		}
		t.byID[note.ID] = note
		t.order = append(t.order, note.ID)
	}
	return nil
}

// Snapshot returns the stored records in insertion order.
func (t *Table) Snapshot() []models.NoteItem {
	t.mu.RLock()
	defer t.mu.RUnlock()
	notes := make([]models.NoteItem, 0, len(t.order))
	for _, id := range t.order {
		notes = append(notes, t.byID[id])
	}
	return notes
}

// Get returns a stored record by id.
func (t *Table) Get(id string) (models.NoteItem, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	note, ok := t.byID[id]
	return note, ok
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}
