package workerpool

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestPoolRunsSubmittedTasks(t *testing.T) {
	p := Make(4)
	defer p.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ran := 0
	for range 20 {
		wg.Add(1)
		err := p.Submit(func(context.Context) {
			mu.Lock()
			ran++
			mu.Unlock()
			wg.Done()
		})
		if err != nil {
			t.Fatalf("Submit = %v", err)
		}
	}
	wg.Wait()
	if ran != 20 {
		t.Errorf("ran %d tasks, want 20", ran)
	}
}

func TestPoolPriorityOrdering(t *testing.T) {
	p := Make(1)
	defer p.Stop()

	// Occupy the single worker so the later submissions queue up.
	gate := make(chan struct{})
	started := make(chan struct{})
	p.Submit(func(context.Context) {
		close(started)
		<-gate
	})
	<-started

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	submit := func(id, priority int) {
		wg.Add(1)
		p.SubmitPriority(func(context.Context) {
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
			wg.Done()
		}, priority)
	}
	submit(1, 1)
	submit(5, 5)
	submit(3, 3)
	submit(6, 5) // same rank as 5, runs after it

	close(gate)
	wg.Wait()

	want := []int{5, 6, 3, 1}
	mu.Lock()
	defer mu.Unlock()
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("execution order = %v, want %v", order, want)
		}
	}
}

func TestPoolSubmitAfterStop(t *testing.T) {
	p := Make(2)
	p.Stop()
	if err := p.Submit(func(context.Context) {}); !errors.Is(err, ErrStopped) {
		t.Errorf("Submit after Stop = %v, want ErrStopped", err)
	}
	p.Stop() // idempotent
}

func TestPoolStopWaitsForRunningTask(t *testing.T) {
	p := Make(1)

	finished := false
	started := make(chan struct{})
	p.Submit(func(context.Context) {
		close(started)
		time.Sleep(50 * time.Millisecond)
		finished = true
	})
	<-started
	p.Stop()

	if !finished {
		t.Error("Stop returned before the in-flight task finished")
	}
}

func TestPoolDrainReturnsPendingInPriorityOrder(t *testing.T) {
	p := Make(1)
	defer p.Stop()

	gate := make(chan struct{})
	started := make(chan struct{})
	p.Submit(func(context.Context) {
		close(started)
		<-gate
	})
	<-started

	var order []int
	mark := func(id int) Task {
		return func(context.Context) { order = append(order, id) }
	}
	p.SubmitPriority(mark(2), 2)
	p.SubmitPriority(mark(9), 9)
	p.Submit(mark(0))

	if got := p.Pending(); got != 3 {
		t.Fatalf("Pending = %d, want 3", got)
	}
	tasks := p.Drain()
	close(gate)
	if len(tasks) != 3 || p.Pending() != 0 {
		t.Fatalf("Drain returned %d tasks, Pending = %d", len(tasks), p.Pending())
	}
	for _, fn := range tasks {
		fn(context.Background())
	}
	want := []int{9, 2, 0}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("drained order = %v, want %v", order, want)
		}
	}
}

func TestPoolStopAbandonsQueuedTasks(t *testing.T) {
	p := Make(1)

	// Hold the single worker until Stop cancels the task context.
	started := make(chan struct{})
	p.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
	})
	<-started

	var mu sync.Mutex
	ran := 0
	for range 3 {
		p.Submit(func(context.Context) {
			mu.Lock()
			ran++
			mu.Unlock()
		})
	}

	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	if ran != 0 {
		t.Errorf("%d queued tasks ran after Stop, want 0", ran)
	}
}

func TestPoolTaskContextCancelledOnStop(t *testing.T) {
	p := Make(1)

	observed := make(chan error, 1)
	started := make(chan struct{})
	p.Submit(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		observed <- ctx.Err()
	})
	<-started
	p.Stop()

	select {
	case err := <-observed:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("task context error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("task never observed cancellation")
	}
}
