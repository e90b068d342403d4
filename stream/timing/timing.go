// Package timing provides timer-backed operators for temporal control
// of streams. Timing primitives are hard-wired to the standard library
// clock; there is no pluggable scheduler.
package timing

import (
	"sync"
	"time"

	"github.com/ottonascarella/pipes/stream/core"
)

// Delay creates an Operator that shifts each value later by d.
// Errors are forwarded immediately; Complete is held until every
// pending value has been delivered. Unsubscribing stops all pending
// timers.
func Delay[T any](d time.Duration) core.Operator[T, T] {
	return core.OperatorFunc[T, T](func(src core.Stream[T]) core.Stream[T] {
		return core.New(func(sink core.Sink[T]) core.Subscription {
			var mu sync.Mutex
			pending := make(map[*time.Timer]struct{})
			completed := false

			upstream := src.Subscribe(core.Sink[T]{
				Next: func(v T) {
					mu.Lock()
					var t *time.Timer
					t = time.AfterFunc(d, func() {
						sink.Next(v)
						mu.Lock()
						delete(pending, t)
						flush := completed && len(pending) == 0
						mu.Unlock()
						if flush {
							sink.Complete()
						}
					})
					pending[t] = struct{}{}
					mu.Unlock()
				},
				Error: sink.Error,
				Complete: func() {
					mu.Lock()
					completed = true
					flush := len(pending) == 0
					mu.Unlock()
					if flush {
						sink.Complete()
					}
				},
			})

			return core.NewSubscription(func() {
				mu.Lock()
				for t := range pending {
					t.Stop()
				}
				pending = make(map[*time.Timer]struct{})
				mu.Unlock()
				upstream.Unsubscribe()
			})
		})
	})
}

// Debounce creates an Operator that emits the most recent upstream
// value once d has elapsed without a newer one. A trailing value still
// waiting when the upstream completes is flushed before Complete.
func Debounce[T any](d time.Duration) core.Operator[T, T] {
	return core.OperatorFunc[T, T](func(src core.Stream[T]) core.Stream[T] {
		return core.New(func(sink core.Sink[T]) core.Subscription {
			var mu sync.Mutex
			var timer *time.Timer
			var latest T
			var waiting bool

			upstream := src.Subscribe(core.Sink[T]{
				Next: func(v T) {
					mu.Lock()
					latest = v
					waiting = true
					if timer != nil {
						timer.Stop()
					}
					timer = time.AfterFunc(d, func() {
						mu.Lock()
						fire := waiting
						v := latest
						waiting = false
						mu.Unlock()
						if fire {
							sink.Next(v)
						}
					})
					mu.Unlock()
				},
				Error: sink.Error,
				Complete: func() {
					mu.Lock()
					if timer != nil {
						timer.Stop()
					}
					fire := waiting
					v := latest
					waiting = false
					mu.Unlock()
					if fire {
						sink.Next(v)
					}
					sink.Complete()
				},
			})

			return core.NewSubscription(func() {
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				waiting = false
				mu.Unlock()
				upstream.Unsubscribe()
			})
		})
	})
}
