// Package workerpool runs submitted tasks on a fixed set of goroutines,
// pulling from a blocking priority deque instead of an ordinary FIFO
// channel: urgent work submitted with a higher priority overtakes everything
// already queued.
package workerpool

import (
	"context"
	"errors"
	"sync"

	"github.com/lucasgdosr/prioritydeque"
)

// DefaultPriority is the rank Submit enqueues at.
const DefaultPriority = 0

// ErrStopped is returned by Submit and SubmitPriority after Stop.
var ErrStopped = errors.New("worker pool is stopped")

// Task is a unit of work. The supplied context is cancelled when the pool
// stops; long-running tasks should honor it.
type Task func(ctx context.Context)

// job is the queued unit. Tasks are funcs and funcs are not comparable, so
// the deque stores one pointer per submission instead.
type job struct {
	run Task
}

// Pool executes tasks on a fixed number of worker goroutines. Workers block
// on the queue when idle and always receive the highest-priority pending
// task; submissions of equal priority run in submission order.
type Pool struct {
	queue  *prioritydeque.Blocking[int, *job]
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	stopped bool
}

// Make starts a pool of the given number of workers. Fewer than one worker
// is rounded up to one.
func Make(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		queue:  prioritydeque.MakeBlocking(prioritydeque.MakeSparse[int, *job](), DefaultPriority),
		ctx:    ctx,
		cancel: cancel,
	}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		j, err := p.queue.Take(p.ctx)
		if err != nil {
			return
		}
		// Take still pops when the queue is non-empty under a cancelled
		// context; a stopping pool abandons that job instead of running it.
		if p.ctx.Err() != nil {
			return
		}
		j.run(p.ctx)
	}
}

// Submit enqueues fn at DefaultPriority.
func (p *Pool) Submit(fn Task) error {
	return p.SubmitPriority(fn, DefaultPriority)
}

// SubmitPriority enqueues fn with the given rank; higher runs first. It
// never blocks: the queue is unbounded.
func (p *Pool) SubmitPriority(fn Task, priority int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return ErrStopped
	}
	p.queue.Add(&job{run: fn}, priority)
	return nil
}

// Pending reports how many submitted tasks have not yet been picked up by a
// worker.
func (p *Pool) Pending() int { return p.queue.Len() }

// Stop rejects further submissions, cancels the workers' context, and waits
// for them to exit. Tasks still queued are abandoned; Drain first to
// collect them. Stop is idempotent.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

// Drain removes and returns every task not yet started, in priority order.
func (p *Pool) Drain() []Task {
	jobs := p.queue.Drain()
	tasks := make([]Task, len(jobs))
	for i, j := range jobs {
		tasks[i] = j.run
	}
	return tasks
}
