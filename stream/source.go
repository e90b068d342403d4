package stream

import (
	"time"

	"github.com/ottonascarella/pipes/stream/core"
)

// From creates a Stream that emits each element from the given slice in
// order, followed by a completion signal. Emission is deferred to a
// fresh continuation: subscribing never delivers synchronously inside
// the Subscribe call. Unsubscribing before the continuation starts
// suppresses all emissions and the completion signal; once it has
// started, the activation guard drops anything emitted after
// Unsubscribe returns.
func From[T any](items []T) Stream[T] {
	return core.New(func(sink Sink[T]) Subscription {
		go func() {
			for _, item := range items {
				sink.Next(item)
			}
			sink.Complete()
		}()
		return core.NewSubscription(nil)
	})
}

// Of creates a Stream that emits the given values in order, then
// completes. Sugar for From.
func Of[T any](items ...T) Stream[T] {
	return From(items)
}

// Just creates a Stream that emits a single value and then completes.
func Just[T any](value T) Stream[T] {
	return From([]T{value})
}

// Empty creates a Stream that emits no values and completes immediately.
func Empty[T any]() Stream[T] {
	return core.New(func(sink Sink[T]) Subscription {
		sink.Complete()
		return core.NewSubscription(nil)
	})
}

// Never creates a Stream that never emits and never completes.
// It only terminates through unsubscription.
func Never[T any]() Stream[T] {
	return core.New(func(Sink[T]) Subscription {
		return core.NewSubscription(nil)
	})
}

// Defer creates a Stream lazily, calling the factory function each time
// the stream is subscribed to. This allows for late binding of stream
// creation. A panicking factory delivers an error instead.
func Defer[T any](factory func() Stream[T]) Stream[T] {
	return core.New(func(sink Sink[T]) Subscription {
		var s Stream[T]
		if !core.Guard(sink.Error, func() { s = factory() }) {
			return core.NewSubscription(nil)
		}
		return s.Subscribe(Sink[T]{
			Next:     sink.Next,
			Error:    sink.Error,
			Complete: sink.Complete,
		})
	})
}

// FromChannel creates a Stream that emits values received from the
// given channel and completes when the channel is closed. The caller is
// responsible for closing the input channel.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return core.New(func(sink Sink[T]) Subscription {
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-done:
					return
				case v, ok := <-ch:
					if !ok {
						sink.Complete()
						return
					}
					sink.Next(v)
				}
			}
		}()
		return core.NewSubscription(func() {
			close(done)
		})
	})
}

// Interval creates a Stream that emits an increasing integer counter,
// starting at 0, on a recurring fixed-period timer. It never completes
// on its own; Unsubscribe stops the timer and then fires Complete.
func Interval(period time.Duration) Stream[int] {
	return core.New(func(sink Sink[int]) Subscription {
		ticker := time.NewTicker(period)
		done := make(chan struct{})
		go func() {
			i := 0
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					sink.Next(i)
					i++
				}
			}
		}()
		return core.NewSubscription(func() {
			ticker.Stop()
			close(done)
			sink.Complete()
		})
	})
}

// Timer creates a Stream that emits a single value (0) after the
// specified delay, then completes.
func Timer(delay time.Duration) Stream[int] {
	return core.New(func(sink Sink[int]) Subscription {
		t := time.AfterFunc(delay, func() {
			sink.Next(0)
			sink.Complete()
		})
		return core.NewSubscription(func() {
			t.Stop()
		})
	})
}

// FromEvent creates a Stream that forwards every occurrence of the
// named event on target. The stream never completes on its own;
// Unsubscribe removes the listener and, only then, fires Complete —
// unsubscription is the completion trigger for this producer.
func FromEvent[T any](name string, target EventTarget[T]) Stream[T] {
	return core.New(func(sink Sink[T]) Subscription {
		remove := target.AddEventListener(name, func(v T) {
			sink.Next(v)
		})
		return core.NewSubscription(func() {
			remove()
			sink.Complete()
		})
	})
}
