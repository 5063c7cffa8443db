package model

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// BuildFunc produces one Geometry. It runs on a worker goroutine and must not touch GPU state.
type BuildFunc func() (Geometry, error)

// BuildAll runs the builders concurrently on a worker pool and returns their geometries in argument order.
// A WaitGroup joins the tasks; the pool's own Wait blocks until idle workers time out, which is far
// longer than a mesh build.
//
// Parameters:
//   - pool: the worker pool to submit to; nil creates a pool sized to the machine
//   - builders: the geometry builders
//
// Returns:
//   - []Geometry: one geometry per builder
//   - error: the first builder error; geometries built successfully are disposed in that case
func BuildAll(pool worker.DynamicWorkerPool, builders ...BuildFunc) ([]Geometry, error) {
	if len(builders) == 0 {
		return nil, nil
	}
	if pool == nil {
		pool = worker.NewDynamicWorkerPool(min(len(builders), runtime.NumCPU()), 256, time.Second)
	}

	out := make([]Geometry, len(builders))
	errs := make([]error, len(builders))

	var wg sync.WaitGroup
	for i, build := range builders {
		wg.Add(1)
		idx, fn := i, build
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				g, err := fn()
				out[idx] = g
				errs[idx] = err
				return g, err
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			for _, g := range out {
				if g != nil {
					g.Dispose()
				}
			}
			return nil, fmt.Errorf("geometry %d: %w", i, err)
		}
	}
	return out, nil
}
