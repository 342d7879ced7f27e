package sim

import "sync"

// Pool is a fixed set of goroutines that run one job per generation. Run
// wakes every worker and returns once all of them have finished, so a single
// pool serves every frame of a run without spawning.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	gen     int
	pending int
	job     func(worker int)
	closed  bool
	workers int
	wg      sync.WaitGroup
}

func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{workers: workers}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.loop(i)
	}
	return p
}

func (p *Pool) Workers() int { return p.workers }

// Run calls job(i) once for every worker index i and blocks until all calls
// return. It must not be called concurrently. After Close the calls run on the
// caller's goroutine.
func (p *Pool) Run(job func(worker int)) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		for i := 0; i < p.workers; i++ {
			job(i)
		}
		return
	}

	p.job = job
	p.pending = p.workers
	p.gen++
	p.cond.Broadcast()
	for p.pending > 0 {
		p.cond.Wait()
	}
	p.job = nil
	p.mu.Unlock()
}

// Close stops the workers and waits for them to exit. It is safe to call more
// than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) loop(index int) {
	defer p.wg.Done()

	last := 0
	p.mu.Lock()
	for {
		for p.gen == last && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		last = p.gen
		job := p.job
		p.mu.Unlock()

		job(index)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.cond.Broadcast()
		}
	}
}
