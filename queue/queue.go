package queue

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Queue represents a queue where requests to forget
// samples can be pushed and pulled. The idea is a
// worker will use the Pull method to obtain a task.
// It will start processing it and will then either
// complete it or drop it halfway.
//
// All its methods have a context.Context as first
// parameter that implementations may use to allow
// timeouts and cancellations on the Queue operations.
type Queue interface {
	// Push takes a task and stores it in the queue or
	// returns an error. The task will count as pending.
	// Pushing a task with the ID of a task already in
	// the queue is an error.
	Push(context.Context, *Task) error
	// Pull returns a task and a context that may have
	// a timeout or allow its cancellation, or an error.
	// The pulled task will be counted as running from
	// then on.
	// If there are no tasks to pull, implementations
	// should not return an error, but 3 nil values.
	// In case of cancellation, workers should still
	// drop the task.
	Pull(context.Context) (*Task, context.Context, error)
	// Drop takes the ID for a task and makes it available
	// for pulling from the Queue again. The dropped task
	// should be counted by implementations as pending
	// again, unless it has been previously completed.
	// Workers should use this to return to the queue
	// tasks they have not completed.
	Drop(context.Context, string) error
	// Complete takes the ID for a task. Implementations
	// should remove the task from the queue.
	Complete(context.Context, string) error
	// Count returns the number of pending and running
	// tasks in the queue or an error.
	Count(context.Context) (int, int, error)
	// Stop stops the queue. Implementations should use
	// the call to free resources and even cancel pulled
	// contexts.
	Stop(context.Context) error
}

type memQueue struct {
	pending   []*Task
	running   map[string]*Task
	ids       map[string]bool
	lock      *sync.RWMutex
	ctx       context.Context
	ctxCancel context.CancelFunc
}

// New returns a queue backed only by the process memory
func New() Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &memQueue{
		running:   make(map[string]*Task),
		ids:       make(map[string]bool),
		lock:      &sync.RWMutex{},
		ctx:       ctx,
		ctxCancel: cancel,
	}
}

// WaitFor takes a context and a queue and waits for
// all its tasks to have been processed, that is, for
// the given queue's Count method to return 0, 0, nil.
// It will return a non-nil error if the given context
// times out or is cancelled, or if the queue's Count
// operation returns an error.
// Use this function to wait for forget requests to be
// processed once you have pushed them and have workers
// pulling them.
func WaitFor(ctx context.Context, q Queue, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		pending, running, err := q.Count(ctx)
		if err != nil {
			return err
		}
		if pending+running == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	return mq.withLock(ctx, func(ctx context.Context) error {
		if mq.ids[t.ID] {
			return fmt.Errorf("pushing task %s to queue: task already queued", t.ID)
		}
		mq.ids[t.ID] = true
		mq.pending = append(mq.pending, t)
		return nil
	})
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, context.Context, error) {
	var task *Task
	err := mq.withLock(ctx, func(ctx context.Context) error {
		if len(mq.pending) == 0 {
			return nil
		}
		task = mq.pending[0]
		mq.pending[0] = nil
		mq.pending = mq.pending[1:]
		mq.running[task.ID] = task
		return nil
	})
	if err != nil || task == nil {
		return nil, nil, err
	}
	return task, mq.ctx, nil
}

func (mq *memQueue) Drop(ctx context.Context, id string) error {
	return mq.withLock(ctx, func(ctx context.Context) error {
		t, ok := mq.running[id]
		if !ok {
			return nil
		}
		delete(mq.running, id)
		mq.pending = append(mq.pending, t)
		return nil
	})
}

func (mq *memQueue) Complete(ctx context.Context, id string) error {
	return mq.withLock(ctx, func(ctx context.Context) error {
		if _, ok := mq.running[id]; !ok {
			return nil
		}
		delete(mq.running, id)
		delete(mq.ids, id)
		return nil
	})
}

func (mq *memQueue) Count(ctx context.Context) (int, int, error) {
	var pending, running int
	err := mq.withRLock(ctx, func(ctx context.Context) error {
		pending = len(mq.pending)
		running = len(mq.running)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return pending, running, nil
}

func (mq *memQueue) Stop(ctx context.Context) error {
	mq.ctxCancel()
	return nil
}

func (mq *memQueue) String() string {
	mq.lock.RLock()
	defer mq.lock.RUnlock()
	return fmt.Sprintf("{Queue pending: %d running: %d}", len(mq.pending), len(mq.running))
}

func (mq *memQueue) withLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		mq.lock.Lock()
		select {
		case <-ctx.Done():
			mq.lock.Unlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer mq.lock.Unlock()
	}
	return f(ctx)
}

func (mq *memQueue) withRLock(ctx context.Context, f func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gotLock := make(chan struct{})
	go func() {
		mq.lock.RLock()
		select {
		case <-ctx.Done():
			mq.lock.RUnlock()
		case gotLock <- struct{}{}:
		}
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-gotLock:
		defer mq.lock.RUnlock()
	}
	return f(ctx)
}
