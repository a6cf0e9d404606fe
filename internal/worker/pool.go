package worker

import (
	"sync"

	"github.com/baharkarakas/inkwell/internal/metrics"
)

type task func()

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				metrics.WorkerQueueDepth.Dec()
				job()
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f func()) {
	metrics.WorkerQueueDepth.Inc()
	p.jobs <- f
}

// Stop waits for queued tasks to finish. Submit must not be called afterwards.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
