package core

import (
	"sync"
	"sync/atomic"
)

// Sink is the callback triple through which a stream delivers its
// signals. Next delivers a value; Error delivers a failure value and is
// terminal; Complete signals normal termination and is terminal. Any
// field may be nil, in which case that signal is dropped silently.
type Sink[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

// activation is the live instance created by one Subscribe call. It
// guards the subscriber's callbacks: signals arriving after a terminal
// signal or after cancellation are dropped, at most one terminal signal
// is delivered, and nil callbacks are safe.
//
// Deliveries are serialized through a queue drained by whichever
// goroutine finds it idle, so multiple sources feeding one consumer
// (Merge, Combine) never run its callbacks concurrently. The mutex is
// never held while a callback runs: a signal arriving re-entrantly —
// a producer teardown delivering Complete from inside the very Next
// that triggered the unsubscription — is enqueued and picked up when
// the active drain resumes, instead of deadlocking on a lock its own
// goroutine holds.
//
// Terminal signals and cancellation both close the intake: nothing is
// accepted afterwards. Signals accepted before the close still drain
// in order, which is what lets a producer teardown deliver its final
// Complete even while a tick is in flight on another goroutine.
type activation[T any] struct {
	mu       sync.Mutex
	queue    []func()
	draining bool
	done     atomic.Bool // terminal accepted or cancelled: intake closed
	target   Sink[T]
}

func newActivation[T any](target Sink[T]) *activation[T] {
	return &activation[T]{target: target}
}

// sink returns the guarded callback triple handed to the producer.
func (a *activation[T]) sink() Sink[T] {
	return Sink[T]{
		Next:     a.next,
		Error:    a.error,
		Complete: a.complete,
	}
}

// stop cancels delivery without signalling the subscriber.
func (a *activation[T]) stop() {
	a.done.Store(true)
}

func (a *activation[T]) next(v T) {
	fn := a.target.Next
	a.deliver(func() {
		if fn != nil {
			fn(v)
		}
	}, false)
}

func (a *activation[T]) error(err error) {
	fn := a.target.Error
	a.deliver(func() {
		if fn != nil {
			fn(err)
		}
	}, true)
}

func (a *activation[T]) complete() {
	fn := a.target.Complete
	a.deliver(func() {
		if fn != nil {
			fn()
		}
	}, true)
}

// deliver enqueues one callback invocation and, unless a drain is
// already in progress, drains the queue. A terminal signal closes the
// intake at enqueue time, so nothing arriving after it is accepted
// while signals already queued ahead of it still deliver in order.
func (a *activation[T]) deliver(fn func(), terminal bool) {
	if a.done.Load() {
		return
	}
	a.mu.Lock()
	if a.done.Load() {
		a.mu.Unlock()
		return
	}
	if terminal {
		a.done.Store(true)
	}
	a.queue = append(a.queue, fn)
	if a.draining {
		a.mu.Unlock()
		return
	}
	a.draining = true
	for len(a.queue) > 0 {
		head := a.queue[0]
		a.queue = a.queue[1:]
		a.mu.Unlock()
		head()
		a.mu.Lock()
	}
	a.draining = false
	a.mu.Unlock()
}
