package pool

import (
	"context"
	"sync"
)

// WorkerFunc processes one item and returns its output.
type WorkerFunc[T, R any] func(ctx context.Context, item T) (R, error)

// Outcome is the output of a worker for the item at the same index.
type Outcome[R any] struct {
	Value R
	Err   error
}

// Map runs workerFunc over items with numWorkers goroutines. Outcomes keep the
// order of items; items never dispatched because ctx was cancelled carry ctx.Err().
// onDone, if not nil, is called once per processed item and must be safe for concurrent use.
func Map[T, R any](ctx context.Context, items []T, numWorkers int, workerFunc WorkerFunc[T, R], onDone func()) []Outcome[R] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	type task struct {
		idx  int
		item T
	}

	outcomes := make([]Outcome[R], len(items))
	dispatched := make([]bool, len(items))

	var wg sync.WaitGroup
	taskChan := make(chan task, numWorkers)

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range taskChan {
				select {
				case <-ctx.Done():
					outcomes[t.idx].Err = ctx.Err()
				default:
					v, err := workerFunc(ctx, t.item)
					outcomes[t.idx] = Outcome[R]{Value: v, Err: err}
				}
				if onDone != nil {
					onDone()
				}
			}
		}()
	}

OUT:
	for i, item := range items {
		select {
		case taskChan <- task{idx: i, item: item}:
			dispatched[i] = true
		case <-ctx.Done():
			// Stop feeding tasks if the context is cancelled
			break OUT
		}
	}
	close(taskChan)

	wg.Wait()

	for i := range items {
		if !dispatched[i] {
			outcomes[i].Err = ctx.Err()
		}
	}
	return outcomes
}

// Errors collects the non-nil errors of outcomes.
func Errors[R any](outcomes []Outcome[R]) []error {
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errs
}
