// Package parallel runs batches of independent tasks on a fixed set of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines, each with its own queue.
// Idle workers steal from the other queues so uneven tasks still balance.
//
// Pool is safe for concurrent use.
type Pool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewPool starts a pool with the given number of workers.
// Zero or negative selects GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			fn()
		default:
			if fn := p.steal(id); fn != nil {
				fn()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case fn := <-own:
				fn()
			}
		}
	}
}

func (p *Pool) drain(queue chan func()) {
	for {
		select {
		case fn := <-queue:
			fn()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// ExecuteAll runs every task and waits for all of them. Tasks are handed
// out round-robin. It is a no-op on a closed pool.
func (p *Pool) ExecuteAll(work []func()) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(work))
	for i, fn := range work {
		task := func() {
			defer wg.Done()
			fn()
		}
		select {
		case p.queues[i%p.workers] <- task:
		case <-p.done:
			wg.Done()
		}
	}
	wg.Wait()
}

// Range splits [0, n) into chunks of at most size elements and calls fn for
// each chunk on the pool, waiting for all of them.
func (p *Pool) Range(n, size int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if size <= 0 {
		size = n
	}
	work := make([]func(), 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		work = append(work, func() { fn(lo, hi) })
	}
	p.ExecuteAll(work)
}

// Close stops the pool after queued work has run. It is safe to call more
// than once.
func (p *Pool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts work.
func (p *Pool) IsRunning() bool {
	return p.running.Load()
}
