// Package host holds pieces shared by the tab host adapters.
package host

import (
	"sync"

	"github.com/bnema/tabmover/internal/domain/entity"
)

// Broadcaster fans created-tab snapshots out to every live subscription.
// Publish never blocks on a slow subscriber.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	closed bool
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a new subscription. On a closed broadcaster the
// returned subscription is already ended.
func (b *Broadcaster) Subscribe() *Subscription {
	s := &Subscription{
		wake:   make(chan struct{}, 1),
		closed: make(chan struct{}),
		out:    make(chan entity.Tab),
		owner:  b,
	}
	go s.run()

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		s.end()
		return s
	}
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Publish queues tab on every subscription.
func (b *Broadcaster) Publish(tab entity.Tab) {
	b.mu.Lock()
	subs := make([]*Subscription, 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		s.push(tab)
	}
}

// Len returns the number of live subscriptions.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close ends every subscription and rejects future ones.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	b.closed = true
	subs := b.subs
	b.subs = make(map[*Subscription]struct{})
	b.mu.Unlock()

	for s := range subs {
		s.end()
	}
}

func (b *Broadcaster) remove(s *Subscription) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
}

// Subscription implements port.TabSubscription on top of an unbounded queue.
type Subscription struct {
	mu     sync.Mutex
	queue  []entity.Tab
	wake   chan struct{}
	closed chan struct{}
	once   sync.Once
	out    chan entity.Tab
	owner  *Broadcaster
}

// Created implements port.TabSubscription.
func (s *Subscription) Created() <-chan entity.Tab {
	return s.out
}

// Close implements port.TabSubscription.
func (s *Subscription) Close() error {
	s.owner.remove(s)
	s.end()
	return nil
}

func (s *Subscription) end() {
	s.once.Do(func() { close(s.closed) })
}

func (s *Subscription) push(tab entity.Tab) {
	s.mu.Lock()
	s.queue = append(s.queue, tab)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) run() {
	defer close(s.out)

	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-s.closed:
				return
			}
		}
		tab := s.queue[0]
		s.queue = s.queue[1:]
		s.mu.Unlock()

		select {
		case s.out <- tab:
		case <-s.closed:
			return
		}
	}
}
