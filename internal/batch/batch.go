// Package batch runs per-image work across a bounded worker pool.
package batch

import (
	"context"
	"sync"
)

// Skip records one image that was skipped with its reason.
type Skip struct {
	Path string
	Err  error
}

// Summary aggregates the outcome of a batch run.
type Summary struct {
	Processed int    // images written
	NoOp      int    // written images whose pixels did not change
	Skips     []Skip // skipped images with reasons
}

// Skipped returns the number of skipped images.
func (s *Summary) Skipped() int {
	return len(s.Skips)
}

// Func processes a single input file. noop reports that the output is
// visually identical to the input, a normal outcome counted separately.
type Func func(path string) (noop bool, err error)

// Run processes paths with the given number of workers. Images are
// independent, so there is no ordering guarantee and no shared mutable state
// beyond the summary. Cancelling ctx stops scheduling new images; in-flight
// images finish and their results are still counted. A per-image error is a
// skip, never fatal.
func Run(ctx context.Context, paths []string, workers int, fn Func) Summary {
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	jobs := make(chan string)
	var (
		mu      sync.Mutex
		summary Summary
		wg      sync.WaitGroup
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				noop, err := fn(path)

				mu.Lock()
				if err != nil {
					summary.Skips = append(summary.Skips, Skip{Path: path, Err: err})
				} else {
					summary.Processed++
					if noop {
						summary.NoOp++
					}
				}
				mu.Unlock()
			}
		}()
	}

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- path:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	return summary
}
