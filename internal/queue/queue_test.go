package queue

import (
	"sync"
	"testing"
)

// testRow is a simple struct for testing the generic batch
type testRow struct {
	ID       int
	Callsign string
}

func TestBatch_New(t *testing.T) {
	b := NewBatch[testRow](3)
	if b == nil {
		t.Fatal("expected non-nil batch")
	}
	if b.Len() != 0 {
		t.Errorf("expected length 0, got %d", b.Len())
	}
	if b.Size() != 3 {
		t.Errorf("expected size 3, got %d", b.Size())
	}

	if NewBatch[testRow](0).Size() != 1 {
		t.Error("expected size to be clamped to 1")
	}
}

func TestBatch_Add(t *testing.T) {
	b := NewBatch[testRow](2)

	if full, ok := b.Add(testRow{ID: 1, Callsign: "SAS1"}); ok || full != nil {
		t.Fatalf("expected no batch after first add, got %v", full)
	}
	if b.Len() != 1 {
		t.Errorf("expected length 1, got %d", b.Len())
	}

	full, ok := b.Add(testRow{ID: 2})
	if !ok {
		t.Fatal("expected full batch")
	}
	if len(full) != 2 || full[0].ID != 1 || full[1].ID != 2 {
		t.Errorf("unexpected batch %+v", full)
	}
	if b.Len() != 0 {
		t.Errorf("expected buffer to start over, got length %d", b.Len())
	}

	// the handed-out batch is not shared with the buffer
	b.Add(testRow{ID: 3})
	if full[0].ID != 1 {
		t.Errorf("batch was overwritten: %+v", full)
	}
}

func TestBatch_Drain(t *testing.T) {
	b := NewBatch[testRow](10)

	if got := b.Drain(); len(got) != 0 {
		t.Errorf("expected empty drain, got %v", got)
	}

	b.Add(testRow{ID: 1})
	b.Add(testRow{ID: 2})
	got := b.Drain()
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if b.Len() != 0 {
		t.Errorf("expected empty buffer, got %d", b.Len())
	}
}

func TestBatch_Concurrent(t *testing.T) {
	b := NewBatch[testRow](7)

	var mu sync.Mutex
	flushed := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if full, ok := b.Add(testRow{ID: id}); ok {
				mu.Lock()
				flushed += len(full)
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if total := flushed + b.Len(); total != 100 {
		t.Errorf("expected 100 items across batches, got %d", total)
	}
	if flushed != 98 {
		t.Errorf("expected 14 full batches (98 items), got %d items", flushed)
	}
}
