package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Loop serializes work onto a single goroutine. It implements Clock: timer
// callbacks are posted to the loop and checked against the timer's state
// on the loop goroutine, so a Stop on the loop always wins over an expiry
// that is already queued.
type Loop struct {
	tasks chan func()
	done  chan struct{}

	running  atomic.Bool
	stopOnce sync.Once
}

// NewLoop creates a loop with the given task queue size.
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Loop{
		tasks: make(chan func(), queueSize),
		done:  make(chan struct{}),
	}
}

// Now returns the wall clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post queues fn to run on the loop goroutine. It blocks while the queue is
// full and returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// TryPost queues fn without blocking. It returns false if the queue is
// full or the loop has stopped.
func (l *Loop) TryPost(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	default:
		return false
	}
}

// Run processes queued tasks until ctx is cancelled. Tasks still queued
// when the loop stops are dropped.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			fn()
		}
	}
}

// Stop stops the loop. Subsequent posts fail.
func (l *Loop) Stop() {
	l.stop()
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

// AfterFunc schedules fn on the loop goroutine after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.active.Store(true)
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			if t.active.CompareAndSwap(true, false) {
				fn()
			}
		})
	})
	return t
}

type loopTimer struct {
	timer  *time.Timer
	active atomic.Bool
}

func (t *loopTimer) Stop() bool {
	t.timer.Stop()
	return t.active.CompareAndSwap(true, false)
}

func (t *loopTimer) Active() bool {
	return t.active.Load()
}
