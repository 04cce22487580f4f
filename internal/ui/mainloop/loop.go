// Package mainloop provides a serial task loop and helpers that post onto it.
package mainloop

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/tabmover/internal/logging"
)

// Loop runs posted tasks one at a time, in post order, on its own goroutine.
// A task posted while another runs executes only after everything queued
// before it has finished.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	wake    chan struct{}
	stopped bool
	done    chan struct{}
	log     *zerolog.Logger
}

// New creates a loop. Call Start to begin draining it.
func New(ctx context.Context) *Loop {
	ctx = logging.WithComponent(ctx, "mainloop")
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		log:  logging.FromContext(ctx),
	}
}

// Start launches the loop goroutine.
func (l *Loop) Start() {
	go l.run()
}

// Post implements port.Deferrer. It never blocks.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}

	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Stop rejects new tasks, lets queued ones finish and waits for the loop to exit.
// The loop must have been started.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.stopped {
		l.stopped = true
		select {
		case l.wake <- struct{}{}:
		default:
		}
	}
	l.mu.Unlock()

	<-l.done
}

func (l *Loop) run() {
	defer close(l.done)

	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			stopped := l.stopped
			l.mu.Unlock()
			if stopped {
				return
			}
			<-l.wake
			continue
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		l.runTask(fn)
	}
}

func (l *Loop) runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("main loop task panicked")
		}
	}()
	fn()
}
