package hedgecut

import (
	"context"
	"fmt"
	"time"

	"github.com/pbanos/hedgecut/dataset"
	"github.com/pbanos/hedgecut/queue"
	"github.com/pbanos/hedgecut/tree"
)

// Enqueue takes a context, a queue and a slice of rows
// and pushes a request to forget each row to the queue.
// It returns the pushed tasks or an error if a push
// fails, in which case the tasks pushed before remain
// in the queue.
func Enqueue(ctx context.Context, q queue.Queue, rows []*dataset.Row) ([]*queue.Task, error) {
	tasks := make([]*queue.Task, 0, len(rows))
	for i, r := range rows {
		t := queue.NewTask(r)
		if err := q.Push(ctx, t); err != nil {
			return tasks, fmt.Errorf("enqueuing row %d: %v", i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

// Work takes a context, an ensemble, a queue, an
// emptyQueueSleep duration and a follow boolean and
// enters a loop in which it:
//   - pulls a forget request from the queue,
//   - makes the ensemble forget its row,
//   - marks the task as completed on the queue
//
// If at some point no task can be pulled from the queue
// and the sum of tasks running and pending on the queue is
// 0, the worker ends returning nil unless follow is true.
// Otherwise the worker sleeps for the given emptyQueueSleep
// duration and then retries.
//
// The given report function, when not nil, is called with
// every processed task along with the report of forgetting
// its row or the error that prevented it. Rows the ensemble
// refuses to forget, such as those lacking a value for a
// feature, would be refused again on every retry: their
// tasks are completed and the ensemble is left untouched.
//
// Work will return a non-nil error if the given context
// times out or is cancelled or if an operation with the
// given queue returns a non-nil error.
func Work(ctx context.Context, e *Ensemble, q queue.Queue, emptyQueueSleep time.Duration, follow bool, report func(*queue.Task, *tree.ForgetReport, error)) error {
	for {
		task, tctx, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			p, r, err := q.Count(ctx)
			if err != nil {
				return err
			}
			if p+r == 0 && !follow {
				break
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(emptyQueueSleep):
			}
			continue
		}
		mctx, cancel := mergeCtxCancel(tctx, ctx)
		err = workTask(mctx, task, e, q, report)
		cancel()
		if err != nil {
			return err
		}
		err = ctx.Err()
		if err != nil {
			return err
		}
	}
	return nil
}

func workTask(ctx context.Context, task *queue.Task, e *Ensemble, q queue.Queue, report func(*queue.Task, *tree.ForgetReport, error)) error {
	if err := ctx.Err(); err != nil {
		q.Drop(context.Background(), task.ID)
		return err
	}
	r, err := e.Forget(task.Row, task.Row.Label())
	if err != nil {
		forgetRequestsTotal.WithLabelValues("rejected").Inc()
		err = fmt.Errorf("forgetting row of task %s: %v", task.ID, err)
		e.logger.Warn("forget request rejected", "task", task.ID, "error", err)
		if report != nil {
			report(task, nil, err)
		}
		return q.Complete(ctx, task.ID)
	}
	if r.Clean() {
		forgetRequestsTotal.WithLabelValues("clean").Inc()
	} else {
		forgetRequestsTotal.WithLabelValues("anomalies").Inc()
	}
	e.logger.Debug("forget request processed", "task", task.ID, "report", r)
	if report != nil {
		report(task, r, nil)
	}
	return q.Complete(ctx, task.ID)
}

func mergeCtxCancel(ctx1, ctx2 context.Context) (context.Context, context.CancelFunc) {
	mctx, cancel := context.WithCancel(ctx1)
	go func() {
		select {
		case <-mctx.Done():
		case <-ctx2.Done():
			cancel()
		}
	}()
	return mctx, cancel
}
