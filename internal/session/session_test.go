package session

import (
	"fmt"
	"sync"
	"testing"
)

func TestIndex_AddAndSeen(t *testing.T) {
	idx := NewIndex()

	if idx.Seen("abc") {
		t.Error("fresh index should not have seen any id")
	}
	if !idx.Add("abc") {
		t.Error("first Add should report new")
	}
	if idx.Add("abc") {
		t.Error("second Add of the same id should report already seen")
	}
	if !idx.Seen("abc") {
		t.Error("Seen should report true after Add")
	}
	if idx.Len() != 1 {
		t.Errorf("expected Len 1, got %d", idx.Len())
	}
}

func TestIndex_ConcurrentAdd(t *testing.T) {
	idx := NewIndex()

	var wg sync.WaitGroup
	var mu sync.Mutex
	newCount := 0

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if idx.Add(fmt.Sprintf("note-%d", i)) {
					mu.Lock()
					newCount++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if newCount != 100 {
		t.Errorf("expected exactly 100 ids reported as new, got %d", newCount)
	}
	if idx.Len() != 100 {
		t.Errorf("expected 100 distinct ids, got %d", idx.Len())
	}
}

func TestNew_SessionsAreIsolated(t *testing.T) {
	a := New()
	b := New()

	a.Index.Add("abc")
	if b.Index.Seen("abc") {
		t.Error("sessions must not share dedup state")
	}
}
