package tasks

import "fmt"

// ProgressUpdate represents a progress event during an enrichment pass.
//
// Used to send real-time updates to the CLI for display.
type ProgressUpdate struct {
	Phase   Phase  // Pass phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
}

// Phase of an enrichment pass.
type Phase int

const (
	ApplyManual Phase = iota
	ReadCache
	SearchCovers
	Finished
)

func (p Phase) String() string {
	switch p {
	case ApplyManual:
		return "apply_manual"
	case ReadCache:
		return "read_cache"
	case SearchCovers:
		return "search_covers"
	case Finished:
		return "finished"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func manualUpdate(n int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ApplyManual,
		Step:    n,
		Total:   n,
		Message: fmt.Sprintf("Applied %d manual covers", n),
	}
}

func cacheUpdate(hits, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadCache,
		Step:    hits,
		Total:   total,
		Message: fmt.Sprintf("Resolved %d of %d from cache", hits, total),
	}
}

func batchUpdate(batch, batches int, source string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCovers,
		Step:    batch,
		Total:   batches,
		Message: fmt.Sprintf("[%d/%d] Searching %s...", batch, batches, source),
	}
}

func finishedUpdate(r Result) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Finished,
		Step:    r.Total,
		Total:   r.Total,
		Message: fmt.Sprintf("Found %d, manual %d, cached %d, missing %d", r.Found, r.Manual, r.Cached, r.Missing),
	}
}
