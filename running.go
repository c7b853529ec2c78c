package twocaptcha

import (
	"context"
	"log/slog"
	"time"
)

// RunningTask is an ephemeral handle for a task that has been created but
// not yet resolved. It is bound to exactly one task ID and the client that
// created it.
type RunningTask struct {
	client *Client
	task   Task
}

// TaskID returns the identifier assigned by the service at creation.
func (rt *RunningTask) TaskID() int64 {
	return rt.task.TaskID
}

// Task returns the task state as of the /createTask response.
func (rt *RunningTask) Task() Task {
	return rt.task
}

// WaitUntilCompleted polls the service until the task reaches a terminal
// state. It returns the ready task, or the first error from the service or
// transport. Between polls it waits the client's poll interval; both the
// wait and every network call honor ctx cancellation. If the client was
// configured with a solve timeout, the whole wait is bounded by it.
//
// A task stuck in an unrecognized status keeps being polled — the service
// treats anything that is not ready or errored as still running.
func (rt *RunningTask) WaitUntilCompleted(ctx context.Context) (*Task, error) {
	if d := rt.client.cfg.SolveTimeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	for {
		task, err := rt.client.GetTaskResult(ctx, rt.task.TaskID)
		if err != nil {
			return nil, err
		}
		if task.IsReady() {
			slog.Debug("captcha solved", slog.Int64("taskId", task.TaskID))
			return task, nil
		}

		select {
		case <-time.After(rt.client.cfg.PollInterval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
