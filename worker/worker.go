package worker

import (
	"runtime"
	"sync"

	"github.com/getsentry/sentry-go"
)

// Pool runs CPU bound work split into contiguous partitions over a fixed set of goroutines.
type Pool struct {
	jobs chan func()
	size int

	closeOnce sync.Once
}

// New starts a pool of size goroutines. A size below 1 uses one goroutine per CPU.
func New(size int) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pool{jobs: make(chan func(), size), size: size}
	for i := 0; i < size; i++ {
		go p.work()
	}
	return p
}

func (p *Pool) work() {
	for f := range p.jobs {
		f()
	}
}

// Size returns the number of goroutines in the pool.
func (p *Pool) Size() int {
	return p.size
}

// Run splits [0, n) into at most Size contiguous partitions and calls f once per partition,
// returning when all partitions are done. No two calls of f share an index. A panic in f is
// reported to Sentry and raised again on the calling goroutine once every partition finished.
func (p *Pool) Run(n int, f func(start, end int)) {
	if n <= 0 {
		return
	}
	parts := min(p.size, n)
	if parts == 1 {
		f(0, n)
		return
	}

	var (
		wg      sync.WaitGroup
		once    sync.Once
		failure any
	)
	chunk := (n + parts - 1) / parts
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.jobs <- func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					sentry.CurrentHub().Recover(r)
					once.Do(func() { failure = r })
				}
			}()
			f(start, end)
		}
	}
	wg.Wait()

	if failure != nil {
		panic(failure)
	}
}

// Close stops the goroutines of the pool. Run must not be called after Close.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
	})
}
