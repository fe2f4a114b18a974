// Package fanout runs one task per element of a collection across a bounded
// pool of goroutines while preserving input order in the results. A failing
// task never cancels its siblings; each slot carries its own outcome.
package fanout

import (
	"context"
	"sync"
)

// Result holds the outcome of a single task.
type Result[T any] struct {
	Value T
	Err   error
}

// Task produces a value for element i of the collection.
type Task[T any] func(ctx context.Context, i int) (T, error)

// Map executes task for indices [0, n) using at most workers goroutines.
// Results are returned indexed by input position regardless of completion
// order. workers <= 0 falls back to sequential execution.
func Map[T any](ctx context.Context, n, workers int, task Task[T]) []Result[T] {
	results := make([]Result[T], n)
	if n == 0 {
		return results
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	indices := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				value, err := task(ctx, i)
				results[i] = Result[T]{Value: value, Err: err}
			}
		}()
	}

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			for j := i; j < n; j++ {
				results[j] = Result[T]{Err: ctx.Err()}
			}
			close(indices)
			wg.Wait()
			return results
		case indices <- i:
		}
	}
	close(indices)
	wg.Wait()

	return results
}
