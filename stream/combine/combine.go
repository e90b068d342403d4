// Package combine provides the n-ary combinators of the stream engine:
// operators that fan several upstream streams into one, with distinct
// completion and emission policies.
package combine

import (
	"sync"
	"sync/atomic"

	"github.com/ottonascarella/pipes/stream/core"
)

// Merge combines multiple streams into a single stream. Values are
// forwarded as they arrive from any source (interleaved); emissions
// from the same source preserve their source order, relative order
// across sources is whichever source fires first. Completion counts
// down from the number of inputs: the result completes only after every
// input has completed. An error from any input propagates immediately,
// not gated by the countdown, and cancels the remaining input
// subscriptions. Unsubscribing cancels every input subscription. Zero
// inputs complete immediately.
func Merge[T any](streams ...core.Stream[T]) core.Stream[T] {
	return core.New(func(sink core.Sink[T]) core.Subscription {
		group := core.NewGroup()
		if len(streams) == 0 {
			sink.Complete()
			return group
		}

		var pending atomic.Int64
		pending.Store(int64(len(streams)))

		for _, s := range streams {
			group.Add(s.Subscribe(core.Sink[T]{
				Next: sink.Next,
				Error: func(err error) {
					// Forward before cancelling so a sibling teardown
					// cannot slip a Complete in first.
					sink.Error(err)
					group.Unsubscribe()
				},
				Complete: func() {
					if pending.Add(-1) == 0 {
						sink.Complete()
					}
				},
			}))
		}
		return group
	})
}

// Combine fans in multiple streams with combine-latest semantics: it
// maintains one slot per input and emits a snapshot of all slots each
// time any input emits, but only once every slot has been filled at
// least once. Per-slot filled flags distinguish "never emitted" from
// any legitimate value, including zero values. Completion and error
// policies match Merge. Unsubscribing cancels every input subscription.
func Combine[T any](streams ...core.Stream[T]) core.Stream[[]T] {
	return core.New(func(sink core.Sink[[]T]) core.Subscription {
		group := core.NewGroup()
		n := len(streams)
		if n == 0 {
			sink.Complete()
			return group
		}

		var mu sync.Mutex
		latest := make([]T, n)
		filled := make([]bool, n)
		missing := n
		pending := n

		for i, s := range streams {
			group.Add(s.Subscribe(core.Sink[T]{
				Next: func(v T) {
					mu.Lock()
					if !filled[i] {
						filled[i] = true
						missing--
					}
					latest[i] = v
					var snapshot []T
					if missing == 0 {
						snapshot = make([]T, n)
						copy(snapshot, latest)
					}
					mu.Unlock()
					if snapshot != nil {
						sink.Next(snapshot)
					}
				},
				Error: func(err error) {
					sink.Error(err)
					group.Unsubscribe()
				},
				Complete: func() {
					mu.Lock()
					pending--
					done := pending == 0
					mu.Unlock()
					if done {
						sink.Complete()
					}
				},
			}))
		}
		return group
	})
}

// Pair holds the latest values of a two-stream combination.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Combine2 is the typed two-stream form of Combine.
func Combine2[A, B any](a core.Stream[A], b core.Stream[B]) core.Stream[Pair[A, B]] {
	return core.New(func(sink core.Sink[Pair[A, B]]) core.Subscription {
		group := core.NewGroup()

		var mu sync.Mutex
		var latest Pair[A, B]
		var hasA, hasB bool
		pending := 2

		emit := func() {
			mu.Lock()
			ready := hasA && hasB
			snapshot := latest
			mu.Unlock()
			if ready {
				sink.Next(snapshot)
			}
		}
		complete := func() {
			mu.Lock()
			pending--
			done := pending == 0
			mu.Unlock()
			if done {
				sink.Complete()
			}
		}
		fail := func(err error) {
			sink.Error(err)
			group.Unsubscribe()
		}

		group.Add(a.Subscribe(core.Sink[A]{
			Next: func(v A) {
				mu.Lock()
				latest.First = v
				hasA = true
				mu.Unlock()
				emit()
			},
			Error:    fail,
			Complete: complete,
		}))
		group.Add(b.Subscribe(core.Sink[B]{
			Next: func(v B) {
				mu.Lock()
				latest.Second = v
				hasB = true
				mu.Unlock()
				emit()
			},
			Error:    fail,
			Complete: complete,
		}))
		return group
	})
}
