package transform

import (
	"sync"

	"github.com/ottonascarella/pipes/stream/core"
)

// Take creates an Operator that forwards the first n values, then
// completes and cancels the upstream subscription. Take(0) completes
// on activation without subscribing upstream.
func Take[T any](n int) core.Operator[T, T] {
	return core.OperatorFunc[T, T](func(src core.Stream[T]) core.Stream[T] {
		return core.New(func(sink core.Sink[T]) core.Subscription {
			group := core.NewGroup()
			if n <= 0 {
				sink.Complete()
				return group
			}
			var mu sync.Mutex
			remaining := n
			group.Add(src.Subscribe(core.Sink[T]{
				Next: func(v T) {
					mu.Lock()
					if remaining == 0 {
						mu.Unlock()
						return
					}
					remaining--
					last := remaining == 0
					mu.Unlock()
					sink.Next(v)
					if last {
						sink.Complete()
						group.Unsubscribe()
					}
				},
				Error:    sink.Error,
				Complete: sink.Complete,
			}))
			return group
		})
	})
}

// TakeUntil creates an Operator that forwards upstream values until the
// notifier stream emits, at which point the result completes and both
// subscriptions are cancelled. Any terminal signal — a notifier error,
// or the source completing or erroring — likewise cancels both sides.
func TakeUntil[T, U any](notifier core.Stream[U]) core.Operator[T, T] {
	return core.OperatorFunc[T, T](func(src core.Stream[T]) core.Stream[T] {
		return core.New(func(sink core.Sink[T]) core.Subscription {
			group := core.NewGroup()
			fail := func(err error) {
				sink.Error(err)
				group.Unsubscribe()
			}
			group.Add(notifier.Subscribe(core.Sink[U]{
				Next: func(U) {
					sink.Complete()
					group.Unsubscribe()
				},
				Error: fail,
			}))
			group.Add(src.Subscribe(core.Sink[T]{
				Next:  sink.Next,
				Error: fail,
				Complete: func() {
					sink.Complete()
					group.Unsubscribe()
				},
			}))
			return group
		})
	})
}
