// Package placement keeps new tabs right after the pinned ones by listening
// to the host's tab-created notifications.
package placement

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/tabmover/internal/application/port"
	"github.com/bnema/tabmover/internal/application/usecase"
	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/logging"
)

var (
	// ErrAlreadyStarted is returned by Start on a running listener.
	ErrAlreadyStarted = errors.New("placement listener already started")
	// ErrStopped is returned by Start once the listener has been stopped.
	ErrStopped = errors.New("placement listener stopped")
)

// Placer evaluates one created tab.
type Placer interface {
	Execute(ctx context.Context, input usecase.PlaceNewTabInput) *usecase.PlaceNewTabOutput
}

// PlacedFunc observes the outcome of each evaluation.
type PlacedFunc func(tab entity.Tab, out *usecase.PlaceNewTabOutput)

// Listener is the process-wide subscription to tab-created events.
// Each event is deferred onto the deferrer and then evaluated on its own
// goroutine; evaluations are not serialized against each other.
type Listener struct {
	events   port.TabEvents
	deferrer port.Deferrer
	placer   Placer

	mu       sync.Mutex
	ctx      context.Context
	sub      port.TabSubscription
	started  bool
	stopped  bool
	onPlaced PlacedFunc

	pumpDone chan struct{}
	inflight sync.WaitGroup
}

// NewListener creates a listener. Nothing is subscribed until Start.
func NewListener(events port.TabEvents, deferrer port.Deferrer, placer Placer) *Listener {
	return &Listener{
		events:   events,
		deferrer: deferrer,
		placer:   placer,
		pumpDone: make(chan struct{}),
	}
}

// OnPlaced registers a callback run after every evaluation.
func (l *Listener) OnPlaced(fn PlacedFunc) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onPlaced = fn
}

// Start subscribes to the host and begins handling created tabs.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return ErrStopped
	}
	if l.started {
		return ErrAlreadyStarted
	}

	ctx = logging.WithComponent(ctx, "placement")
	sub, err := l.events.SubscribeCreated(ctx)
	if err != nil {
		return fmt.Errorf("subscribe to created tabs: %w", err)
	}

	l.ctx = ctx
	l.sub = sub
	l.started = true
	go l.pump(sub)

	logging.FromContext(ctx).Info().Msg("listening for tab creation events")
	return nil
}

// Stop closes the subscription and waits for in-flight evaluations.
// It is safe to call more than once.
func (l *Listener) Stop() error {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return nil
	}
	l.stopped = true
	sub := l.sub
	started := l.started
	l.mu.Unlock()

	if !started {
		return nil
	}

	err := sub.Close()
	<-l.pumpDone
	l.inflight.Wait()

	logging.FromContext(l.ctx).Info().Msg("placement listener stopped")
	return err
}

// Wait blocks until the host ends the subscription or Stop is called.
func (l *Listener) Wait() {
	<-l.pumpDone
}

func (l *Listener) pump(sub port.TabSubscription) {
	defer close(l.pumpDone)
	for tab := range sub.Created() {
		l.HandleCreated(tab)
	}
	logging.FromContext(l.ctx).Debug().Msg("tab creation subscription ended")
}

// HandleCreated defers evaluation of one created-tab snapshot. It never runs
// the evaluation synchronously so the host can settle the tab first.
func (l *Listener) HandleCreated(tab entity.Tab) {
	l.mu.Lock()
	if !l.started || l.stopped {
		l.mu.Unlock()
		return
	}
	ctx := l.ctx
	onPlaced := l.onPlaced
	// Registered under the lock so Stop cannot start waiting in between.
	l.inflight.Add(1)
	l.mu.Unlock()

	log := logging.FromContext(ctx)
	log.Debug().Int("tab_id", int(tab.ID)).Int("index", tab.Index).Msg("tab created")

	posted := l.deferrer.Post(func() {
		go func() {
			defer l.inflight.Done()
			out := l.placer.Execute(ctx, usecase.PlaceNewTabInput{Tab: tab})
			if onPlaced != nil {
				onPlaced(tab, out)
			}
		}()
	})
	if !posted {
		l.inflight.Done()
		log.Warn().Int("tab_id", int(tab.ID)).Msg("deferrer rejected tab placement")
	}
}
