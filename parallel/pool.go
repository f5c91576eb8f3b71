package parallel

import (
	"runtime"
	"sync"
)

// Pool runs jobs on a fixed number of goroutines. With a single worker jobs
// run synchronously inside Do.
type Pool struct {
	wg    sync.WaitGroup
	work  chan func()
	close func()
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait stops accepting jobs and returns once every queued job finished.
func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
