package transform

import (
	"sync"

	"github.com/ottonascarella/pipes/stream/core"
)

// Chain creates a switch-latest flat-map Operator: for each upstream
// value, fn yields an inner stream whose values are forwarded to the
// consumer. If the outer stream emits again before the current inner
// stream completes, the current inner subscription is cancelled and
// replaced. Unsubscribing the result cancels both the active inner
// subscription and the outer one.
//
// Inner signal policy: an inner Error propagates to the consumer and
// tears the whole activation down, outer subscription included; an
// inner Complete is ignored until the next outer value arrives, since
// switching streams is the operator's completion model. The outer
// stream's Error and Complete are forwarded to the consumer and tear
// down the active inner subscription.
func Chain[T, U any](fn func(T) core.Stream[U]) core.Operator[T, U] {
	return core.OperatorFunc[T, U](func(src core.Stream[T]) core.Stream[U] {
		return core.New(func(sink core.Sink[U]) core.Subscription {
			var mu sync.Mutex
			var inner, outer core.Subscription
			closed := false

			swap := func(next core.Subscription) (prev core.Subscription, ok bool) {
				mu.Lock()
				defer mu.Unlock()
				if closed {
					return next, false
				}
				prev = inner
				inner = next
				return prev, true
			}

			// terminate closes the activation and detaches both
			// subscriptions so the caller can cancel them.
			terminate := func() (innerSub, outerSub core.Subscription) {
				mu.Lock()
				defer mu.Unlock()
				closed = true
				innerSub, outerSub = inner, outer
				inner, outer = nil, nil
				return
			}

			teardown := func() {
				innerSub, outerSub := terminate()
				if innerSub != nil {
					innerSub.Unsubscribe()
				}
				if outerSub != nil {
					outerSub.Unsubscribe()
				}
			}

			fail := func(err error) {
				sink.Error(err)
				teardown()
			}

			outerSub := src.Subscribe(core.Sink[T]{
				Next: func(v T) {
					var s core.Stream[U]
					if !core.Guard(fail, func() { s = fn(v) }) {
						return
					}
					// Cancel the previous inner before activating the
					// next so its tail emissions cannot interleave.
					prev, ok := swap(nil)
					if !ok {
						return
					}
					if prev != nil {
						prev.Unsubscribe()
					}
					sub := s.Subscribe(core.Sink[U]{
						Next:  sink.Next,
						Error: fail,
						// Inner Complete intentionally not forwarded.
					})
					if _, ok := swap(sub); !ok {
						sub.Unsubscribe()
					}
				},
				Error: fail,
				Complete: func() {
					sink.Complete()
					teardown()
				},
			})

			// A synchronous outer terminal may have closed the
			// activation before Subscribe returned.
			mu.Lock()
			if closed {
				mu.Unlock()
				outerSub.Unsubscribe()
			} else {
				outer = outerSub
				mu.Unlock()
			}

			return core.NewSubscription(teardown)
		})
	})
}
