// Package transform provides the unary operators of the stream engine:
// elementwise transforms, predicate gates, stateful folds and seeding.
// Every consumer-supplied function runs inside core.Guard, so a panic
// becomes an error signal instead of escaping the push call stack.
package transform

import (
	"github.com/ottonascarella/pipes/stream/core"
)

// Map creates an Operator that forwards fn(value) for every upstream
// value. Error and Complete are forwarded unchanged.
func Map[IN, OUT any](fn func(IN) OUT) core.Operator[IN, OUT] {
	return core.OperatorFunc[IN, OUT](func(src core.Stream[IN]) core.Stream[OUT] {
		return core.New(func(sink core.Sink[OUT]) core.Subscription {
			return src.Subscribe(core.Sink[IN]{
				Next: func(v IN) {
					var out OUT
					if !core.Guard(sink.Error, func() { out = fn(v) }) {
						return
					}
					sink.Next(out)
				},
				Error:    sink.Error,
				Complete: sink.Complete,
			})
		})
	})
}

// MapErr creates an Operator from a transformation that can fail.
// A returned error is routed to the error callback and terminates the
// activation.
func MapErr[IN, OUT any](fn func(IN) (OUT, error)) core.Operator[IN, OUT] {
	return core.OperatorFunc[IN, OUT](func(src core.Stream[IN]) core.Stream[OUT] {
		return core.New(func(sink core.Sink[OUT]) core.Subscription {
			return src.Subscribe(core.Sink[IN]{
				Next: func(v IN) {
					var out OUT
					var err error
					if !core.Guard(sink.Error, func() { out, err = fn(v) }) {
						return
					}
					if err != nil {
						sink.Error(err)
						return
					}
					sink.Next(out)
				},
				Error:    sink.Error,
				Complete: sink.Complete,
			})
		})
	})
}

// Filter creates an Operator that forwards a value only if the
// predicate reports true. Error and Complete are forwarded unchanged.
func Filter[T any](predicate func(T) bool) core.Operator[T, T] {
	return core.OperatorFunc[T, T](func(src core.Stream[T]) core.Stream[T] {
		return core.New(func(sink core.Sink[T]) core.Subscription {
			return src.Subscribe(core.Sink[T]{
				Next: func(v T) {
					keep := false
					if !core.Guard(sink.Error, func() { keep = predicate(v) }) {
						return
					}
					if keep {
						sink.Next(v)
					}
				},
				Error:    sink.Error,
				Complete: sink.Complete,
			})
		})
	})
}

// Scan creates an Operator that maintains a running accumulator,
// updated as acc = fn(acc, value) on every upstream value, emitting the
// new accumulator each time. The accumulator lives inside the producer
// closure, which runs per Subscribe call, so two activations of the
// same stream never share fold state.
func Scan[T, A any](fn func(A, T) A, seed A) core.Operator[T, A] {
	return core.OperatorFunc[T, A](func(src core.Stream[T]) core.Stream[A] {
		return core.New(func(sink core.Sink[A]) core.Subscription {
			acc := seed
			return src.Subscribe(core.Sink[T]{
				Next: func(v T) {
					var next A
					if !core.Guard(sink.Error, func() { next = fn(acc, v) }) {
						return
					}
					acc = next
					sink.Next(acc)
				},
				Error:    sink.Error,
				Complete: sink.Complete,
			})
		})
	})
}

// StartWith creates an Operator that emits the given values
// synchronously on activation, before subscribing upstream, then
// forwards the upstream's signals unchanged. The seeds reach the
// consumer before any upstream value even when upstream is synchronous.
func StartWith[T any](values ...T) core.Operator[T, T] {
	return core.OperatorFunc[T, T](func(src core.Stream[T]) core.Stream[T] {
		return core.New(func(sink core.Sink[T]) core.Subscription {
			for _, v := range values {
				sink.Next(v)
			}
			return src.Subscribe(core.Sink[T]{
				Next:     sink.Next,
				Error:    sink.Error,
				Complete: sink.Complete,
			})
		})
	})
}

// Tap creates an Operator that runs fn on every value for side effects,
// forwarding all signals unchanged. A panicking fn is routed to the
// error callback.
func Tap[T any](fn func(T)) core.Operator[T, T] {
	return core.OperatorFunc[T, T](func(src core.Stream[T]) core.Stream[T] {
		return core.New(func(sink core.Sink[T]) core.Subscription {
			return src.Subscribe(core.Sink[T]{
				Next: func(v T) {
					if !core.Guard(sink.Error, func() { fn(v) }) {
						return
					}
					sink.Next(v)
				},
				Error:    sink.Error,
				Complete: sink.Complete,
			})
		})
	})
}
