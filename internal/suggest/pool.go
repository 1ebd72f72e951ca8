package suggest

import (
	"context"
	"runtime"
	"sync"
)

// candidateJob is one (role, champion) evaluation unit submitted to
// the candidate pool.
type candidateJob struct {
	index int
	eval  func() (Suggestion, bool)
}

// candidateResult pairs a job's output with its original index so
// results can be reassembled in submission order regardless of which
// worker finished first.
type candidateResult struct {
	index int
	sugg  Suggestion
	ok    bool
}

// evaluateCandidates runs every job concurrently across
// min(runtime.NumCPU(), len(jobs)) workers and returns the successful
// suggestions. Mirrors the bounded worker-goroutine-plus-channel shape
// of the analytics worker pool, simplified to a one-shot parallel map
// since candidate evaluation has no retry or priority concept. Returns
// early (possibly partial) results if ctx is cancelled.
func evaluateCandidates(ctx context.Context, jobs []candidateJob) []Suggestion {
	if len(jobs) == 0 {
		return nil
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	jobCh := make(chan candidateJob, len(jobs))
	for _, j := range jobs {
		jobCh <- j
	}
	close(jobCh)

	results := make([]candidateResult, len(jobs))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				select {
				case <-ctx.Done():
					return
				default:
				}
				sugg, ok := job.eval()
				results[job.index] = candidateResult{index: job.index, sugg: sugg, ok: ok}
			}
		}()
	}
	wg.Wait()

	out := make([]Suggestion, 0, len(jobs))
	for _, r := range results {
		if r.ok {
			out = append(out, r.sugg)
		}
	}
	return out
}
