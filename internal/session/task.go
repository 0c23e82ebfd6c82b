package session

import (
	"context"
	"sync"
)

// Task tracks one content generation started by StartSession or Retry.
type Task struct {
	token uint64
	done  chan struct{}

	once    sync.Once
	applied bool
	err     error
}

func newTask(token uint64) *Task {
	return &Task{token: token, done: make(chan struct{})}
}

// Token is the generation token the task was issued with.
func (t *Task) Token() uint64 { return t.token }

// Done is closed once the generation has finished and its result has been
// applied or discarded.
func (t *Task) Done() <-chan struct{} { return t.done }

// Wait blocks until the task finishes or ctx ends. It returns the
// generation error, if any, even when the result was discarded.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Applied reports whether the result reached the session. It is false
// while the task runs and when a newer generation superseded it.
func (t *Task) Applied() bool {
	select {
	case <-t.done:
		return t.applied
	default:
		return false
	}
}

func (t *Task) finish(applied bool, err error) {
	t.once.Do(func() {
		t.applied = applied
		t.err = err
		close(t.done)
	})
}
