// Package observe provides observability operators for monitoring and
// debugging streams without altering their signals.
package observe

import (
	"context"
	"sync/atomic"

	"go.opentelemetry.io/otel/metric"

	"github.com/ottonascarella/pipes/stream/core"
)

// Kind indicates which signal a Signal describes.
type Kind int

const (
	KindValue Kind = iota
	KindError
	KindComplete
)

// Signal is a materialized stream event, letting an inspector treat
// all three signal kinds uniformly.
type Signal[T any] struct {
	Kind  Kind
	Value T
	Err   error
}

// Spy creates an Operator that lets the inspector observe every signal
// (values, the error, completion) without modifying the stream.
func Spy[T any](inspector func(Signal[T])) core.Operator[T, T] {
	return core.OperatorFunc[T, T](func(src core.Stream[T]) core.Stream[T] {
		return core.New(func(sink core.Sink[T]) core.Subscription {
			return src.Subscribe(core.Sink[T]{
				Next: func(v T) {
					inspector(Signal[T]{Kind: KindValue, Value: v})
					sink.Next(v)
				},
				Error: func(err error) {
					inspector(Signal[T]{Kind: KindError, Err: err})
					sink.Error(err)
				},
				Complete: func() {
					inspector(Signal[T]{Kind: KindComplete})
					sink.Complete()
				},
			})
		})
	})
}

// Counter provides thread-safe counting of stream signals.
type Counter struct {
	values      atomic.Int64
	errors      atomic.Int64
	completions atomic.Int64
}

// Values returns the count of values delivered.
func (c *Counter) Values() int64 { return c.values.Load() }

// Errors returns the count of error signals.
func (c *Counter) Errors() int64 { return c.errors.Load() }

// Completions returns the count of completion signals.
func (c *Counter) Completions() int64 { return c.completions.Load() }

// Count creates an Operator that updates the counter for every signal
// passing through, forwarding all signals unchanged.
func Count[T any](c *Counter) core.Operator[T, T] {
	return core.OperatorFunc[T, T](func(src core.Stream[T]) core.Stream[T] {
		return core.New(func(sink core.Sink[T]) core.Subscription {
			return src.Subscribe(core.Sink[T]{
				Next: func(v T) {
					c.values.Add(1)
					sink.Next(v)
				},
				Error: func(err error) {
					c.errors.Add(1)
					sink.Error(err)
				},
				Complete: func() {
					c.completions.Add(1)
					sink.Complete()
				},
			})
		})
	})
}

// Metered creates an Operator that records per-signal counts to
// OpenTelemetry instruments created on the given meter: <name>.values,
// <name>.errors and <name>.completions. Signals pass through unchanged.
func Metered[T any](meter metric.Meter, name string) (core.Operator[T, T], error) {
	values, err := meter.Int64Counter(name+".values", metric.WithDescription("count of values delivered"))
	if err != nil {
		return nil, err
	}
	errs, err := meter.Int64Counter(name+".errors", metric.WithDescription("count of error signals"))
	if err != nil {
		return nil, err
	}
	completions, err := meter.Int64Counter(name+".completions", metric.WithDescription("count of completion signals"))
	if err != nil {
		return nil, err
	}

	return core.OperatorFunc[T, T](func(src core.Stream[T]) core.Stream[T] {
		return core.New(func(sink core.Sink[T]) core.Subscription {
			ctx := context.Background()
			return src.Subscribe(core.Sink[T]{
				Next: func(v T) {
					values.Add(ctx, 1)
					sink.Next(v)
				},
				Error: func(err error) {
					errs.Add(ctx, 1)
					sink.Error(err)
				},
				Complete: func() {
					completions.Add(ctx, 1)
					sink.Complete()
				},
			})
		})
	}), nil
}
