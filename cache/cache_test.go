package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"giftsleuth/store"
)

// countingSource counts reads per tab and serves canned rows.
type countingSource struct {
	mu    sync.Mutex
	reads map[string]int
	rows  map[string][]store.Row
	err   error
}

func newCountingSource() *countingSource {
	return &countingSource{
		reads: make(map[string]int),
		rows: map[string][]store.Row{
			"posts":     {{"t1", "Alice", "clue"}},
			"app_state": {{"locked", "FALSE"}},
		},
	}
}

func (s *countingSource) ReadAll(tab string) ([]store.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.reads[tab]++
	return s.rows[tab], nil
}

func (s *countingSource) readCount(tab string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads[tab]
}

func TestFreshEntryServedFromCache(t *testing.T) {
	src := newCountingSource()
	c := New(src, time.Minute)

	for i := 0; i < 5; i++ {
		rows, err := c.ReadAll("posts")
		if err != nil {
			t.Fatalf("Failed to read: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(rows))
		}
	}

	if got := src.readCount("posts"); got != 1 {
		t.Errorf("Expected 1 source read, got %d", got)
	}
}

func TestTTLExpiryRereads(t *testing.T) {
	src := newCountingSource()
	c := New(src, 10*time.Millisecond)

	if _, err := c.ReadAll("posts"); err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	time.Sleep(25 * time.Millisecond)
	if _, err := c.ReadAll("posts"); err != nil {
		t.Fatalf("Failed to read after expiry: %v", err)
	}

	if got := src.readCount("posts"); got != 2 {
		t.Errorf("Expected 2 source reads after TTL expiry, got %d", got)
	}
}

func TestInvalidateForcesReread(t *testing.T) {
	src := newCountingSource()
	c := New(src, time.Minute)

	if _, err := c.ReadAll("posts"); err != nil {
		t.Fatalf("Failed to read: %v", err)
	}

	src.mu.Lock()
	src.rows["posts"] = append(src.rows["posts"], store.Row{"t2", "Bob", "newer clue"})
	src.mu.Unlock()

	// Still fresh: the write is not yet visible.
	rows, _ := c.ReadAll("posts")
	if len(rows) != 1 {
		t.Fatalf("Expected stale read of 1 row, got %d", len(rows))
	}

	c.Invalidate("posts")

	rows, err := c.ReadAll("posts")
	if err != nil {
		t.Fatalf("Failed to read after invalidate: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Expected 2 rows after invalidate, got %d", len(rows))
	}
}

func TestInvalidateIsPerTab(t *testing.T) {
	src := newCountingSource()
	c := New(src, time.Minute)

	if _, err := c.ReadAll("posts"); err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if _, err := c.ReadAll("app_state"); err != nil {
		t.Fatalf("Failed to read: %v", err)
	}

	c.Invalidate("posts")

	if _, err := c.ReadAll("app_state"); err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if got := src.readCount("app_state"); got != 1 {
		t.Errorf("Expected app_state untouched by posts invalidation, got %d reads", got)
	}

	if _, err := c.ReadAll("posts"); err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if got := src.readCount("posts"); got != 2 {
		t.Errorf("Expected posts re-read after invalidation, got %d reads", got)
	}
}

func TestInvalidateAll(t *testing.T) {
	src := newCountingSource()
	c := New(src, time.Minute)

	c.ReadAll("posts")
	c.ReadAll("app_state")
	c.InvalidateAll()
	c.ReadAll("posts")
	c.ReadAll("app_state")

	if got := src.readCount("posts"); got != 2 {
		t.Errorf("Expected 2 posts reads, got %d", got)
	}
	if got := src.readCount("app_state"); got != 2 {
		t.Errorf("Expected 2 app_state reads, got %d", got)
	}
}

func TestSourceErrorPropagates(t *testing.T) {
	src := newCountingSource()
	src.err = errors.New("store unreachable")
	c := New(src, time.Minute)

	if _, err := c.ReadAll("posts"); err == nil {
		t.Error("Expected source error to propagate")
	}
}

// slowSource blocks reads until released, to line up concurrent misses.
type slowSource struct {
	release chan struct{}
	calls   atomic.Int32
}

func (s *slowSource) ReadAll(tab string) ([]store.Row, error) {
	s.calls.Add(1)
	<-s.release
	return []store.Row{{"x"}}, nil
}

func TestConcurrentMissesCollapse(t *testing.T) {
	src := &slowSource{release: make(chan struct{})}
	c := New(src, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.ReadAll("posts"); err != nil {
				t.Errorf("Failed concurrent read: %v", err)
			}
		}()
	}

	// Give the goroutines time to pile onto the miss, then release.
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Errorf("Expected concurrent misses to collapse into 1 source call, got %d", got)
	}
}
