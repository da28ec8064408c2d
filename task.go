package sculpt

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// TLS is the thread-local scratch context handed to every task invocation.
// Thread identifies the worker goroutine and seeds per-thread brush noise.
type TLS struct {
	Thread int
}

// Settings controls ParallelRange execution.
type Settings struct {
	UseThreading bool
	// Workers caps the worker pool size. Zero means GOMAXPROCS.
	Workers int
}

// RangeSettings returns dispatch settings for a stroke step over totalNodes
// node batches. A single batch is not worth fanning out.
func RangeSettings(totalNodes int) Settings {
	return Settings{
		UseThreading: totalNodes > 1,
		Workers:      runtime.GOMAXPROCS(0),
	}
}

// ParallelRange executes fn for every index in [0, n), fanning the indices
// out over a fixed pool of workers when the settings ask for threading.
// Tasks must only touch disjoint data; the engine's node batches guarantee
// that for vertex writes. ParallelRange returns once all tasks completed,
// so consecutive calls form the barriers between smoothing passes.
func ParallelRange(n int, st Settings, fn func(i int, tls *TLS)) {
	if n <= 0 {
		return
	}
	workers := st.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if !st.UseThreading || workers == 1 {
		tls := TLS{}
		for i := 0; i < n; i++ {
			fn(i, &tls)
		}
		return
	}
	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(thread int) {
			defer wg.Done()
			tls := TLS{Thread: thread}
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				fn(i, &tls)
			}
		}(w)
	}
	wg.Wait()
}
