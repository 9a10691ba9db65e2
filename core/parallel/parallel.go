package parallel

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/YuminosukeSato/weaklearn/pkg/errors"
)

// ForEach runs fn(i) for every i in [0, tasks) on at most maxWorkers
// goroutines and waits for all of them. maxWorkers <= 0 means one worker per CPU.
// A panic inside fn is recovered into an *errors.PanicError for that task.
// The error of the lowest failing index is returned, so the result does not
// depend on scheduling.
func ForEach(tasks, maxWorkers int, fn func(i int) error) error {
	if tasks == 0 {
		return nil
	}

	numWorkers := maxWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > tasks {
		numWorkers = tasks
	}

	errs := make([]error, tasks)
	next := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				errs[i] = errors.SafeExecute(fmt.Sprintf("task %d", i), func() error {
					return fn(i)
				})
			}
		}()
	}

	for i := 0; i < tasks; i++ {
		next <- i
	}
	close(next)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ForEachWithThreshold runs sequentially in index order when tasks is at most
// threshold, and falls back to ForEach otherwise.
func ForEachWithThreshold(tasks, threshold, maxWorkers int, fn func(i int) error) error {
	if tasks <= threshold {
		for i := 0; i < tasks; i++ {
			if err := errors.SafeExecute(fmt.Sprintf("task %d", i), func() error { return fn(i) }); err != nil {
				return err
			}
		}
		return nil
	}
	return ForEach(tasks, maxWorkers, fn)
}
