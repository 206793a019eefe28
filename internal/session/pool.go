package session

import (
	"log/slog"
	"sync"
)

// Pool runs trigger callbacks off the hotkey event loop. Submission never
// blocks: when the queue is full the job is dropped, matching the
// drop-not-queue policy for triggers that arrive mid-transcription.
type Pool struct {
	jobs   chan func()
	wg     sync.WaitGroup
	logger *slog.Logger
}

// NewPool starts workers goroutines draining a queue of the given depth.
func NewPool(workers, depth int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if depth < 1 {
		depth = 1
	}

	p := &Pool{
		jobs:   make(chan func(), depth),
		logger: logger,
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit enqueues one job, reporting whether it was accepted.
func (p *Pool) Submit(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case p.jobs <- fn:
		return true
	default:
		if p.logger != nil {
			p.logger.Warn("worker queue full; dropping trigger")
		}
		return false
	}
}

// Close stops accepting jobs and waits for in-flight work to finish.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for fn := range p.jobs {
		p.runJob(fn)
	}
}

func (p *Pool) runJob(fn func()) {
	defer func() {
		if r := recover(); r != nil && p.logger != nil {
			p.logger.Error("worker job panicked", "panic", r)
		}
	}()
	fn()
}
