// package core defines the core abstractions for push-based stream
// processing: streams, sinks, subscriptions, and operators. It provides
// the foundational building blocks for composing reactive pipelines in
// a modular manner.
//
// NOTE: this package should have no dependencies outside the standard
// library, including other stream packages.
package core

// Stream represents a push-based flow of data. A Stream is an inert
// blueprint: nothing executes until Subscribe is called. Each Subscribe
// call constructs an independent activation with its own private state,
// so two subscriptions to the same Stream never share state (cold
// semantics).
// Stream answers the question: "What operations will produce the stream's data?".
type Stream[T any] interface {
	// Subscribe activates the stream and begins delivery into sink.
	// The returned Subscription cancels this activation only.
	Subscribe(sink Sink[T]) Subscription
}

// Subscription is the cancellation handle for one activation.
// Unsubscribe releases every resource the activation holds (timers,
// listeners, nested subscriptions) and is safe to call more than once
// and after the stream has terminated naturally.
type Subscription interface {
	Unsubscribe()
}

// Operator represents a processing unit that transforms a Stream of
// type IN into a Stream of type OUT. Operators hold no state of their
// own: any mutable state must be allocated inside the producer closure
// so that it is re-derived per activation.
// They answer the question: "What operations are being applied to the stream's data?".
type Operator[IN, OUT any] interface {
	Apply(Stream[IN]) Stream[OUT]
}

// OperatorFunc adapts a plain function to the Operator interface.
type OperatorFunc[IN, OUT any] func(Stream[IN]) Stream[OUT]

func (f OperatorFunc[IN, OUT]) Apply(s Stream[IN]) Stream[OUT] {
	return f(s)
}

// Producer represents the activation constructor of a stream: a function
// that begins pushing into sink and returns the handle that stops it.
// It is a level of abstraction just under Stream. Producers answer the
// question: "How is the stream's data produced?".
//
// The sink handed to a Producer is always fully populated: its Next,
// Error and Complete callbacks are non-nil, drop every signal after a
// terminal signal or cancellation, and deliver at most one terminal
// signal per activation.
type Producer[T any] func(sink Sink[T]) Subscription

// New wraps a raw producer function into the Stream contract.
// The producer is invoked fresh on every Subscribe call.
func New[T any](producer Producer[T]) Stream[T] {
	return producer
}

func (p Producer[T]) Subscribe(sink Sink[T]) Subscription {
	act := newActivation(sink)
	inner := p(act.sink())
	return NewSubscription(func() {
		// Producer teardown runs first so that producers which treat
		// unsubscription as their completion trigger (Interval,
		// FromEvent) can still deliver Complete through the guard.
		if inner != nil {
			inner.Unsubscribe()
		}
		act.stop()
	})
}
