// Package batch implements the worker-pool fan-out (SPEC_FULL.md A7):
// one independent analysis per job, no shared mutable state between
// workers, input order preserved in the output regardless of
// completion order. Grounds spec.md §5's "trivially data-parallel...
// SHOULD support a worker-pool with no shared mutable state" callout.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/broomsday/porate/internal/annotate"
)

// Job is one unit of batch work: an opaque identity plus whatever a
// caller's analysis function needs, carried through Input.
type Job struct {
	// ID is a caller-assigned identity (e.g. a PDB id or file path),
	// used to label the matching Result and in log lines.
	ID string
	// Input is passed verbatim to the Run's fn for this job.
	Input any
}

// Result is one job's outcome, always present in Run's output slice at
// the job's original index.
type Result struct {
	JobID   string
	CorrID  string
	Annot   annotate.Annotation
	Err     error
	Elapsed time.Duration
}

// Run fans jobs out across a fixed-size goroutine pool, applying fn to
// each independently, and returns one Result per job in input order.
// workers <= 0 is treated as 1. A cancelled ctx stops dispatching new
// jobs; in-flight jobs still run to completion (the core has no
// cancellation semantics per spec.md §5) and jobs never dispatched get
// a Result whose Err is ctx.Err().
func Run(ctx context.Context, jobs []Job, workers int, fn func(Job) (annotate.Annotation, error)) []Result {
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(jobs))
	dispatched := make([]bool, len(jobs))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				job := jobs[i]
				corrID := uuid.NewString()
				start := time.Now()
				annot, err := fn(job)
				results[i] = Result{
					JobID:   job.ID,
					CorrID:  corrID,
					Annot:   annot,
					Err:     err,
					Elapsed: time.Since(start),
				}
			}
		}()
	}

	go func() {
		defer close(indices)
		for i := range jobs {
			select {
			case <-ctx.Done():
				return
			case indices <- i:
				dispatched[i] = true
			}
		}
	}()

	wg.Wait()

	for i, job := range jobs {
		if !dispatched[i] {
			results[i] = Result{JobID: job.ID, Err: ctx.Err()}
		}
	}

	return results
}
