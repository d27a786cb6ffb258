package loader

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/sablegfx/sable"
	"github.com/sablegfx/sable/common"
)

// Result pairs one decoded asset with the path it came from. Err is non-nil
// when that asset failed to decode; the rest of the batch is unaffected.
type Result struct {
	Path string
	Data common.TextureStagingData
	Err  error
}

type loader struct {
	workers int
	pool    worker.DynamicWorkerPool
}

// Loader decodes image assets into BGRA8 staging data ready for texture
// upload, fanning a batch out across a reusable worker pool.
type Loader interface {
	// DecodeAll decodes every path in the batch concurrently and returns one
	// Result per path, in input order. Individual decode failures are
	// reported on their Result; DecodeAll itself only fails on an empty
	// batch.
	//
	// Parameters:
	//   - paths: image file paths to decode
	//
	// Returns:
	//   - []Result: one entry per input path, in order
	//   - error: an error if the batch is empty
	DecodeAll(paths []string) ([]Result, error)

	// Close drains the worker pool, blocking until its workers have
	// idle-exited. The loader is unusable afterwards.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a loader with a dynamic worker pool sized to the CPU
// count unless overridden.
//
// Parameters:
//   - options: optional configuration overrides
//
// Returns:
//   - Loader: the configured loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers: runtime.NumCPU(),
	}
	for _, opt := range options {
		opt(l)
	}

	l.pool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)

	return l
}

func (l *loader) DecodeAll(paths []string) ([]Result, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to decode")
	}

	results := make([]Result, len(paths))

	// A WaitGroup provides batch barrier sync since pool.Wait() blocks until
	// workers idle-exit, which would stall every call by the idle timeout.
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		idx := i // capture for closure
		p := path
		l.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()

				data, err := common.DecodeImageFile(p)
				results[idx] = Result{Path: p, Data: data, Err: err}
				if err != nil {
					sable.Logger().Warn("asset decode failed", "path", p, "error", err)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	return results, nil
}

func (l *loader) Close() {
	if l.pool != nil {
		l.pool.Wait()
	}
}
