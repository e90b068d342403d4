package transform_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ottonascarella/pipes/stream"
	"github.com/ottonascarella/pipes/stream/core"
	"github.com/ottonascarella/pipes/stream/transform"
)

func TestTakeForwardsFirstNThenCompletes(t *testing.T) {
	rec := newRecorder[int]()
	transform.Take[int](3).Apply(stream.Of(1, 2, 3, 4, 5)).Subscribe(rec.sink())
	rec.wait(t)

	values, err, complete := rec.snapshot()
	assertValues(t, values, []int{1, 2, 3})
	if err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if !complete {
		t.Error("expected completion after the third value")
	}
}

func TestTakeCancelsUpstream(t *testing.T) {
	hub := stream.NewHub[int]()

	var values []int
	transform.Take[int](2).Apply(stream.FromEvent[int]("tick", hub)).Subscribe(core.Sink[int]{
		Next: func(v int) { values = append(values, v) },
	})

	hub.Dispatch("tick", 1)
	hub.Dispatch("tick", 2)
	hub.Dispatch("tick", 3)

	assertValues(t, values, []int{1, 2})
	if n := hub.ListenerCount("tick"); n != 0 {
		t.Errorf("expected upstream cancelled after the limit, %d listeners left", n)
	}
}

func TestTakeCompletesOverTicker(t *testing.T) {
	// The limit is reached inside the ticker goroutine's own delivery;
	// cancelling the upstream from there must not wedge it.
	rec := newRecorder[int]()
	transform.Take[int](2).
		Apply(stream.Interval(10 * time.Millisecond)).
		Subscribe(rec.sink())
	rec.wait(t)

	values, _, complete := rec.snapshot()
	assertValues(t, values, []int{0, 1})
	if !complete {
		t.Error("expected completion after the second tick")
	}
}

func TestTakeZeroCompletesWithoutSubscribing(t *testing.T) {
	hub := stream.NewHub[int]()

	complete := false
	transform.Take[int](0).Apply(stream.FromEvent[int]("tick", hub)).Subscribe(core.Sink[int]{
		Complete: func() { complete = true },
	})

	if !complete {
		t.Error("expected immediate completion")
	}
	if n := hub.ListenerCount("tick"); n != 0 {
		t.Errorf("expected no upstream subscription, got %d listeners", n)
	}
}

func TestTakeShortUpstreamCompletesNaturally(t *testing.T) {
	rec := newRecorder[int]()
	transform.Take[int](5).Apply(stream.Of(1, 2)).Subscribe(rec.sink())
	rec.wait(t)

	values, _, complete := rec.snapshot()
	assertValues(t, values, []int{1, 2})
	if !complete {
		t.Error("expected upstream completion to be forwarded")
	}
}

func TestTakeUntilCompletesOnNotifier(t *testing.T) {
	src := stream.NewHub[int]()
	stop := stream.NewHub[struct{}]()

	var values []int
	complete := false
	transform.TakeUntil[int, struct{}](stream.FromEvent[struct{}]("stop", stop)).
		Apply(stream.FromEvent[int]("v", src)).
		Subscribe(core.Sink[int]{
			Next:     func(v int) { values = append(values, v) },
			Complete: func() { complete = true },
		})

	src.Dispatch("v", 1)
	src.Dispatch("v", 2)
	stop.Dispatch("stop", struct{}{})
	src.Dispatch("v", 3)

	assertValues(t, values, []int{1, 2})
	if !complete {
		t.Error("expected completion when the notifier fired")
	}
	if n := src.ListenerCount("v"); n != 0 {
		t.Errorf("expected source cancelled, %d listeners left", n)
	}
	if n := stop.ListenerCount("stop"); n != 0 {
		t.Errorf("expected notifier cancelled, %d listeners left", n)
	}
}

func TestTakeUntilSourceCompletionCancelsNotifier(t *testing.T) {
	stop := stream.NewHub[struct{}]()

	rec := newRecorder[int]()
	transform.TakeUntil[int, struct{}](stream.FromEvent[struct{}]("stop", stop)).
		Apply(stream.Of(1, 2)).
		Subscribe(rec.sink())
	rec.wait(t)

	values, _, complete := rec.snapshot()
	assertValues(t, values, []int{1, 2})
	if !complete {
		t.Error("expected the source completion to be forwarded")
	}
	if n := stop.ListenerCount("stop"); n != 0 {
		t.Errorf("source completion left the notifier subscribed: %d listeners", n)
	}
}

func TestTakeUntilNotifierErrorCancelsSource(t *testing.T) {
	src := stream.NewHub[int]()
	boom := errors.New("boom")
	notifier := core.New(func(sink core.Sink[int]) core.Subscription {
		sink.Error(boom)
		return core.NewSubscription(nil)
	})

	var got error
	transform.TakeUntil[int, int](notifier).
		Apply(stream.FromEvent[int]("v", src)).
		Subscribe(core.Sink[int]{
			Error: func(err error) { got = err },
		})

	if !errors.Is(got, boom) {
		t.Fatalf("expected the notifier error to propagate, got %v", got)
	}
	if n := src.ListenerCount("v"); n != 0 {
		t.Errorf("notifier error left the source subscribed: %d listeners", n)
	}
}

func TestTakeUntilUnsubscribeCancelsBoth(t *testing.T) {
	src := stream.NewHub[int]()
	stop := stream.NewHub[int]()

	sub := transform.TakeUntil[int, int](stream.FromEvent[int]("stop", stop)).
		Apply(stream.FromEvent[int]("v", src)).
		Subscribe(core.Sink[int]{})
	sub.Unsubscribe()

	if n := src.ListenerCount("v"); n != 0 {
		t.Errorf("expected source cancelled, %d listeners left", n)
	}
	if n := stop.ListenerCount("stop"); n != 0 {
		t.Errorf("expected notifier cancelled, %d listeners left", n)
	}
}
