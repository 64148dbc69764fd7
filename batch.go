package slicec

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// CompileBatch runs each of opts independently (no shared arena, scope
// table, or reporter crosses a compilation boundary, per spec §5) with at
// most maxParallelism running concurrently. Results are returned in the
// same order as opts. A cancelled ctx stops launching new compilations but
// lets in-flight ones finish; cancellation is cooperative, not preemptive,
// matching the core's synchronous-per-compilation contract.
func CompileBatch(ctx context.Context, opts []Options, maxParallelism int) []CompilationState {
	if maxParallelism < 1 {
		maxParallelism = 1
	}

	results := make([]CompilationState, len(opts))
	sem := semaphore.NewWeighted(int64(maxParallelism))
	done := make(chan int, len(opts))

	launched := 0
	for i, o := range opts {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		launched++
		go func(i int, o Options) {
			defer sem.Release(1)
			defer func() { done <- i }()
			results[i] = CompileFromOptions(o)
		}(i, o)
	}

	for n := 0; n < launched; n++ {
		<-done
	}
	return results
}
