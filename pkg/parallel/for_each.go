package parallel

import (
	"errors"
	"fmt"
	"sync"
)

// ErrPoolClosed is returned when work is submitted to a closed pool
var ErrPoolClosed = errors.New("worker pool is closed")

// ForEach calls fn(i) for every i in [0, n) on the pool and waits for all
// calls to return. Callers write results into slot i of a pre-sized slice, so
// output order never depends on scheduling. The first error (or recovered
// panic) by index is returned.
func (wp *WorkerPool) ForEach(n int, fn func(i int) error) error {
	if n <= 0 {
		return nil
	}

	errs := make([]error, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		submitted := wp.Submit(func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("task %d panicked: %v", i, r)
				}
			}()
			errs[i] = fn(i)
		})
		if !submitted {
			wg.Done()
			errs[i] = ErrPoolClosed
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Run executes fn for every index, on a temporary pool of the given size when
// workers > 1 and inline otherwise.
func Run(workers, n int, fn func(i int) error) error {
	if workers <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	if workers > n {
		workers = n
	}
	pool, err := NewWorkerPool(workers, nil)
	if err != nil {
		return err
	}
	defer pool.Close()

	return pool.ForEach(n, fn)
}
