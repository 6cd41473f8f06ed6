package tasks

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hlieber45/harrisonlieber-site/internal/repositories"
	"github.com/hlieber45/harrisonlieber-site/internal/shared"
)

func discardLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

// mockCache is an in-memory [CoverCacher].
type mockCache struct {
	mu       sync.Mutex
	entries  map[string]repositories.CoverEntry
	writeErr error
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string]repositories.CoverEntry{}}
}

func (c *mockCache) CachedCover(kind, key string) (*repositories.CoverEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[kind+"/"+key]
	if !ok {
		return nil, false
	}
	return &e, true
}

func (c *mockCache) CacheCover(entry repositories.CoverEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.entries[entry.Kind+"/"+entry.Key] = entry
	return nil
}

func (c *mockCache) entry(kind, key string) repositories.CoverEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[kind+"/"+key]
}

func TestRunBatches(t *testing.T) {
	t.Run("Visits Every Index Once", func(t *testing.T) {
		var seen [7]atomic.Int32
		var batches []int
		err := runBatches(context.Background(), 7, 3, 0, func(batch, total int) {
			batches = append(batches, batch)
			if total != 3 {
				t.Errorf("expected 3 batches, got %d", total)
			}
		}, func(_ context.Context, i int) {
			seen[i].Add(1)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range seen {
			if got := seen[i].Load(); got != 1 {
				t.Errorf("index %d visited %d times", i, got)
			}
		}
		if len(batches) != 3 || batches[0] != 1 || batches[2] != 3 {
			t.Errorf("unexpected batch sequence %v", batches)
		}
	})

	t.Run("Runs Batch Concurrently", func(t *testing.T) {
		var inFlight, peak atomic.Int32
		err := runBatches(context.Background(), 4, 4, 0, nil, func(_ context.Context, _ int) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(20 * time.Millisecond)
			inFlight.Add(-1)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if peak.Load() < 2 {
			t.Errorf("expected concurrent calls, peak was %d", peak.Load())
		}
	})

	t.Run("Zero Size Runs One At A Time", func(t *testing.T) {
		var calls atomic.Int32
		var batches int
		err := runBatches(context.Background(), 3, 0, 0, func(_, total int) { batches = total }, func(_ context.Context, _ int) {
			calls.Add(1)
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls.Load() != 3 || batches != 3 {
			t.Errorf("expected 3 calls in 3 batches, got %d in %d", calls.Load(), batches)
		}
	})

	t.Run("Stops When Cancelled During Delay", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		var calls atomic.Int32
		err := runBatches(ctx, 4, 1, time.Hour, nil, func(_ context.Context, _ int) {
			calls.Add(1)
			cancel()
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if calls.Load() != 1 {
			t.Errorf("expected 1 call before cancellation, got %d", calls.Load())
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		called := false
		err := runBatches(context.Background(), 0, 3, time.Hour, func(int, int) { called = true }, func(context.Context, int) { called = true })
		if err != nil || called {
			t.Errorf("expected no calls and no error, got called=%v err=%v", called, err)
		}
	})
}

func TestSendProgress(t *testing.T) {
	t.Run("Nil Channel", func(t *testing.T) {
		sendProgress(nil, ProgressUpdate{Phase: Finished})
	})

	t.Run("Full Channel Does Not Block", func(t *testing.T) {
		ch := make(chan ProgressUpdate, 1)
		sendProgress(ch, ProgressUpdate{Phase: ApplyManual})
		sendProgress(ch, ProgressUpdate{Phase: Finished})

		if got := <-ch; got.Phase != ApplyManual {
			t.Errorf("expected first update to be kept, got %v", got.Phase)
		}
	})
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		ApplyManual:  "apply_manual",
		ReadCache:    "read_cache",
		SearchCovers: "search_covers",
		Finished:     "finished",
		Phase(99):    "",
	}
	for phase, want := range tests {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}

func TestOptsLimiter(t *testing.T) {
	t.Run("Unlimited", func(t *testing.T) {
		l := Opts{}.limiter()
		for range 100 {
			if !l.Allow() {
				t.Fatal("expected unlimited limiter to allow every call")
			}
		}
	})

	t.Run("Limited", func(t *testing.T) {
		l := Opts{RequestsPerSecond: 1}.limiter()
		if !l.Allow() {
			t.Fatal("expected first call to be allowed")
		}
		if l.Allow() {
			t.Error("expected second immediate call to be throttled")
		}
	})
}
