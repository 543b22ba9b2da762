package classifier

import (
	"context"
	"sync"

	"ai-tagging-be/pkg/tagging"
)

type task struct {
	ctx    context.Context
	text   string
	labels []string
	result chan<- taskResult
}

type taskResult struct {
	scores []tagging.ScoredLabel
	err    error
}

// Pool runs classification calls on a fixed set of workers so that slow model
// inference never runs on more goroutines than the backend can serve.
type Pool struct {
	backend ZeroShotClassifier
	tasks   chan task

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ ZeroShotClassifier = &Pool{}

func NewPool(backend ZeroShotClassifier, workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	p := &Pool{
		backend: backend,
		tasks:   make(chan task, queueSize),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.runWorker()
	}
	return p
}

func (p *Pool) runWorker() {
	defer p.wg.Done()

	for t := range p.tasks {
		// caller gave up while the task was queued
		if err := t.ctx.Err(); err != nil {
			t.result <- taskResult{err: err}
			continue
		}
		scores, err := p.backend.Classify(t.ctx, t.text, t.labels)
		t.result <- taskResult{scores: scores, err: err}
	}
}

// Classify queues the call and waits for a worker to finish it or for ctx to end.
func (p *Pool) Classify(ctx context.Context, text string, labels []string) ([]tagging.ScoredLabel, error) {
	result := make(chan taskResult, 1)

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return nil, ErrPoolClosed
	}
	select {
	case p.tasks <- task{ctx: ctx, text: text, labels: labels, result: result}:
		p.mu.RUnlock()
	case <-ctx.Done():
		p.mu.RUnlock()
		return nil, ctx.Err()
	}

	select {
	case res := <-result:
		return res.scores, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting work and waits for queued tasks to finish.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}
