// Package resource governs the memory, worker and IO budget shared by
// extinction runs.
//
//   - Memory: per-worker accumulators reserve len(sources)*8 bytes before they
//     are allocated. WaitMemory blocks until the budget frees up; a single
//     reservation larger than the whole budget fails fast with
//     ErrMemoryLimitExceeded.
//   - Workers: a process-wide cap on worker goroutines across concurrent runs.
//   - IO: a token bucket throttling result persistence.
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	    MaxWorkers:       8,
//	})
//
//	if err := rc.WaitMemory(ctx, n*8); err != nil {
//	    return err
//	}
//	defer rc.ReleaseMemory(n * 8)
//
// All methods are safe for concurrent use, and a nil *Controller is a valid
// controller with no limits.
package resource
