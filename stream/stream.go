// Package stream provides a push-based reactive stream engine for
// building declarative pipelines over discrete, time-ordered event
// sequences.
//
// This package is the primary user-facing API. Most users should only
// need to import this package. The stream/core subpackage contains
// low-level abstractions that are rarely needed directly.
package stream

import (
	"github.com/ottonascarella/pipes/stream/combine"
	"github.com/ottonascarella/pipes/stream/core"
	"github.com/ottonascarella/pipes/stream/transform"
)

// Type aliases for core stream abstractions.
// These allow users to work with the engine without importing core directly.
type (
	// Stream represents a cold, push-based flow of data. Nothing
	// executes until Subscribe is called.
	Stream[T any] = core.Stream[T]

	// Sink is the (next, error, complete) callback triple through which
	// a stream delivers its signals.
	Sink[T any] = core.Sink[T]

	// Subscription is the cancellation handle for one activation.
	Subscription = core.Subscription

	// Operator transforms a Stream of type IN into a Stream of type OUT.
	Operator[IN, OUT any] = core.Operator[IN, OUT]

	// Producer is the activation constructor of a stream and implements Stream.
	Producer[T any] = core.Producer[T]
)

// New wraps a raw producer function into the Stream contract.
// The producer runs fresh on every Subscribe call and receives a
// guarded sink whose callbacks are never nil.
func New[T any](producer Producer[T]) Stream[T] {
	return core.New(producer)
}

// NewSubscription wraps a teardown function into an idempotent Subscription.
func NewSubscription(teardown func()) Subscription {
	return core.NewSubscription(teardown)
}

// Operator constructors - wrappers around transform functions.

// Map creates an Operator that forwards fn(value) for every upstream value.
func Map[IN, OUT any](fn func(IN) OUT) Operator[IN, OUT] {
	return transform.Map(fn)
}

// MapErr creates an Operator from a transformation that can fail;
// returned errors are routed to the error callback.
func MapErr[IN, OUT any](fn func(IN) (OUT, error)) Operator[IN, OUT] {
	return transform.MapErr(fn)
}

// Filter creates an Operator that forwards only values matching the predicate.
func Filter[T any](predicate func(T) bool) Operator[T, T] {
	return transform.Filter(predicate)
}

// Scan creates an Operator that folds upstream values into a running
// accumulator, emitting every intermediate result.
func Scan[T, A any](fn func(A, T) A, seed A) Operator[T, A] {
	return transform.Scan(fn, seed)
}

// StartWith creates an Operator that prepends values before the source stream.
func StartWith[T any](values ...T) Operator[T, T] {
	return transform.StartWith(values...)
}

// Chain creates a switch-latest flat-map Operator.
func Chain[T, U any](fn func(T) Stream[U]) Operator[T, U] {
	return transform.Chain(fn)
}

// Tap creates an Operator that runs fn on every value for side effects.
func Tap[T any](fn func(T)) Operator[T, T] {
	return transform.Tap(fn)
}

// Take creates an Operator that forwards the first n values then completes.
func Take[T any](n int) Operator[T, T] {
	return transform.Take[T](n)
}

// Combinator constructors - wrappers around combine functions.

// Merge fans in multiple streams, interleaving their values.
func Merge[T any](streams ...Stream[T]) Stream[T] {
	return combine.Merge(streams...)
}

// Combine fans in multiple streams with latest-value-tuple semantics.
func Combine[T any](streams ...Stream[T]) Stream[[]T] {
	return combine.Combine(streams...)
}
