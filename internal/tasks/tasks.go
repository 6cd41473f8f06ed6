package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/hlieber45/harrisonlieber-site/internal/repositories"
	"golang.org/x/time/rate"
)

// CoverCacher persists resolved covers between runs. Album entries also carry the matched
// title and artist so a cache hit renames exactly like a search hit.
type CoverCacher interface {
	CachedCover(kind, key string) (*repositories.CoverEntry, bool)
	CacheCover(entry repositories.CoverEntry) error
}

// Result summarizes an enrichment pass.
type Result struct {
	Total   int      // Entries considered
	Found   int      // Covers resolved by the external service
	Manual  int      // Covers taken from the manual mapping
	Cached  int      // Covers taken from the cover cache
	Skipped int      // Entries that already had a cover
	Missing int      // Entries left without a cover
	Errors  int      // External lookups that failed
	Titles  []string // Entries left without a cover
}

// Opts tunes a pass.
type Opts struct {
	BatchSize         int           // Entries searched concurrently
	BatchDelay        time.Duration // Pause between batches
	RequestsPerSecond float64       // External call rate; zero or less is unlimited
}

func (o Opts) limiter() *rate.Limiter {
	if o.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(o.RequestsPerSecond), 1)
}

// runBatches calls fn for every index in [0, n), size at a time. Calls within a batch run
// concurrently; the next batch starts after the previous one finishes and delay elapses.
// It stops early when ctx is cancelled and returns ctx.Err().
func runBatches(ctx context.Context, n, size int, delay time.Duration, onBatch func(batch, batches int), fn func(ctx context.Context, i int)) error {
	if size <= 0 {
		size = 1
	}
	batches := (n + size - 1) / size

	for b := 0; b < batches; b++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if onBatch != nil {
			onBatch(b+1, batches)
		}

		var wg sync.WaitGroup
		for i := b * size; i < min(n, (b+1)*size); i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fn(ctx, i)
			}()
		}
		wg.Wait()

		if b < batches-1 && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return nil
}

// tally accumulates a [Result] from concurrent lookups.
type tally struct {
	mu sync.Mutex
	Result
}

func (t *tally) found() {
	t.mu.Lock()
	t.Found++
	t.mu.Unlock()
}

func (t *tally) missing(title string, failed bool) {
	t.mu.Lock()
	t.Missing++
	t.Titles = append(t.Titles, title)
	if failed {
		t.Errors++
	}
	t.mu.Unlock()
}
