package core

import "sync"

// subscription is an idempotent cancellation handle. The teardown
// function runs exactly once no matter how many times Unsubscribe is
// called.
type subscription struct {
	once     sync.Once
	teardown func()
}

// NewSubscription wraps a teardown function into the Subscription
// contract. A nil teardown yields a no-op handle, useful for producers
// that hold no external resources.
func NewSubscription(teardown func()) Subscription {
	return &subscription{teardown: teardown}
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.teardown != nil {
			s.teardown()
		}
	})
}

// Group owns a set of child subscriptions and cancels them together.
// Adding to a group that has already been unsubscribed cancels the
// child immediately, which closes the race between a synchronous
// emission tearing the group down and Subscribe still returning its
// handle.
type Group struct {
	mu     sync.Mutex
	closed bool
	subs   []Subscription
}

func NewGroup() *Group {
	return &Group{}
}

// Add registers a child subscription with the group.
func (g *Group) Add(s Subscription) {
	if s == nil {
		return
	}
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		s.Unsubscribe()
		return
	}
	g.subs = append(g.subs, s)
	g.mu.Unlock()
}

// Unsubscribe cancels every child. Idempotent.
func (g *Group) Unsubscribe() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	subs := g.subs
	g.subs = nil
	g.mu.Unlock()

	for _, s := range subs {
		s.Unsubscribe()
	}
}
