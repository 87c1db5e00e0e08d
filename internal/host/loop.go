package host

import "context"

// Loop is a Dispatcher for headless runs: posted functions execute on the
// goroutine that calls Run.
type Loop struct {
	tasks chan func()
	done  chan struct{}
}

// NewLoop creates a loop with a buffered task queue.
func NewLoop() *Loop {
	return &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
}

// Post queues fn. It blocks while the queue is full and drops fn once
// the loop has quit.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// Quit stops Run after the current task. Safe to call more than once.
func (l *Loop) Quit() {
	select {
	case <-l.done:
	default:
		close(l.done)
	}
}

// Run executes posted tasks until Quit is called or ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}
